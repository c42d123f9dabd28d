// Package httpapi exposes the feed service over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/feed"
	"github.com/Big-jpg/swipehire/internal/store"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Deps struct {
	Feed   *feed.Service
	Store  *store.Store
	Auth   *Authenticator
	Logger *zap.Logger
}

type Server struct {
	cfg    Config
	feed   *feed.Service
	store  *store.Store
	auth   *Authenticator
	logger *zap.Logger
	engine *gin.Engine
}

func New(cfg *Config, deps *Deps) *Server {
	s := &Server{
		feed:   deps.Feed,
		store:  deps.Store,
		auth:   deps.Auth,
		logger: deps.Logger,
	}
	if cfg != nil {
		s.cfg = *cfg
	}
	if s.cfg.Addr == "" {
		s.cfg.Addr = defaultAddr
	}
	if s.cfg.ReadTimeout <= 0 {
		s.cfg.ReadTimeout = defaultReadTimeout
	}
	if s.cfg.WriteTimeout <= 0 {
		s.cfg.WriteTimeout = defaultWriteTimeout
	}
	if s.cfg.ShutdownTimeout <= 0 {
		s.cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), gin.Recovery())

	r.GET("/healthz", healthz(s.store))

	api := r.Group("/api", s.authenticate())
	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.putProfile)
	api.GET("/resume", s.getResume)
	api.PUT("/resume", s.putResume)

	api.GET("/feed/next", s.nextJob)
	api.POST("/feed/decisions", s.recordDecision)
	api.POST("/feed/undo", s.undoLast)

	api.GET("/history/swipes", s.swipeHistory)
	api.GET("/history/applications", s.applications)

	admin := api.Group("/admin", s.requireAdmin())
	admin.POST("/jobs", s.createJob)
	admin.GET("/jobs", s.listJobs)
	admin.GET("/jobs/:id", s.getJob)
	admin.POST("/applications/:id/submitted", s.markSubmitted)
	admin.POST("/applications/:id/failed", s.markFailed)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
