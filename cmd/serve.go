package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the feed HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := bootstrap()
	defer logger.Sync()

	logger.Info("starting swipehire", zap.String("version", version))

	st, err := openStore(ctx, config.Database, logger, config.Database.AutoMigrate)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer st.Close()

	svc, err := newFeed(ctx, config, st, logger)
	if err != nil {
		logger.Fatal("preparing the feed", zap.Error(err))
	}

	auth, err := newAuthenticator(config.Auth)
	if err != nil {
		logger.Fatal("preparing authentication", zap.Error(err))
	}

	server := httpapi.New(&httpapi.Config{
		Addr:            config.HTTP.Addr,
		ReadTimeout:     config.HTTP.ReadTimeout,
		WriteTimeout:    config.HTTP.WriteTimeout,
		ShutdownTimeout: config.HTTP.ShutdownTimeout,
	}, &httpapi.Deps{
		Feed:   svc,
		Store:  st,
		Auth:   auth,
		Logger: logger.Named("http"),
	})

	if err := server.Run(ctx); err != nil {
		logger.Error("http server stopped", zap.Error(err))
		return
	}
	logger.Info("exiting", zap.String("reason", "shutdown requested"))
}
