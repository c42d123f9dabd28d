package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/ai"
	"github.com/Big-jpg/swipehire/internal/ai/gemini"
	"github.com/Big-jpg/swipehire/internal/feed"
	"github.com/Big-jpg/swipehire/internal/httpapi"
	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/secrets"
	"github.com/Big-jpg/swipehire/internal/store"
)

func openStore(ctx context.Context, cfg DatabaseConfig, log *zap.Logger, migrate bool) (*store.Store, error) {
	dsn, err := secrets.Load(secrets.Source{
		Name:  "database dsn",
		Value: cfg.DSN,
		File:  cfg.DSNFile,
		Env:   "DATABASE_URL",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set database.dsn, database.dsn-file or DATABASE_URL)", err)
	}

	st, err := store.Open(&store.Config{Driver: cfg.Driver, DSN: dsn, LogSQL: cfg.LogSQL}, log.Named("store"))
	if err != nil {
		return nil, err
	}
	log.Info("database opened", zap.String("driver", st.Driver()), zap.Bool("auto_migrate", migrate))

	if migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
	}
	return st, nil
}

func newAuthenticator(cfg AuthConfig) (*httpapi.Authenticator, error) {
	secret, err := secrets.Load(secrets.Source{
		Name:  "jwt secret",
		Value: cfg.JWTSecret,
		File:  cfg.JWTSecretFile,
		Env:   "JWT_SECRET",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set auth.jwt-secret, auth.jwt-secret-file or JWT_SECRET)", err)
	}
	return httpapi.NewAuthenticator(secret, cfg.TokenTTL)
}

// newQualifier returns the configured provider, or ai.Unconfigured when AI
// is disabled so that every verdict falls back.
func newQualifier(ctx context.Context, cfg AIConfig, log *zap.Logger) (ai.Qualifier, error) {
	if !cfg.Enabled {
		log.Info("qualification disabled", zap.String("hint", "set ai.enabled to true to score jobs"))
		return ai.Unconfigured{}, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.ProviderName {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.GeneratorConfig{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, logger.WithAIFields(log, gemini.ProviderName, cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	))
	if err != nil {
		return nil, err
	}

	matcherLogger := logger.WithAIFields(log, gemini.ProviderName, generator.Model())
	return gemini.NewMatcher(generator, cfg.Gemini.MaxLogLength, matcherLogger), nil
}

func newFeed(ctx context.Context, config *Config, st *store.Store, log *zap.Logger) (*feed.Service, error) {
	qualifier, err := newQualifier(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}

	return feed.New(&feed.Config{OracleTimeout: config.Feed.OracleTimeout}, &feed.Deps{
		Store:     st,
		Qualifier: qualifier,
		Logger:    log.Named("feed"),
	}), nil
}
