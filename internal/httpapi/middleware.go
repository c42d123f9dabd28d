package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/feed"
	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxUser         = "user"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if user, ok := currentUser(c); ok {
			fields = append(fields, zap.Uint(logger.FieldUserID, user.ID))
		}
		requestLogger(c, log).Info("http request", fields...)
	}
}

func requestLogger(c *gin.Context, log *zap.Logger) *zap.Logger {
	id := c.GetString(ctxRequestID)
	if id == "" {
		return logger.WithFields(log)
	}
	return logger.WithFields(log, logger.RequestID(id))
}

// authenticate resolves the bearer token to a stored user.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			s.abortWithError(c, feed.ErrUnauthorized)
			return
		}

		userID, err := s.auth.Verify(strings.TrimSpace(raw))
		if err != nil {
			requestLogger(c, s.logger).Debug("token rejected", zap.Error(err))
			s.abortWithError(c, feed.ErrUnauthorized)
			return
		}

		user, err := s.store.GetUser(c.Request.Context(), userID)
		if errors.Is(err, store.ErrNotFound) {
			s.abortWithError(c, feed.ErrUnauthorized)
			return
		}
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		c.Set(ctxUser, user)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := currentUser(c); !ok || !user.IsAdmin() {
			s.abortWithError(c, feed.ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func userID(c *gin.Context) uint {
	if user, ok := currentUser(c); ok {
		return user.ID
	}
	return 0
}

func healthz(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
