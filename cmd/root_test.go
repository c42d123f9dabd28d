package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/ai"
)

func TestDecodeConfigDefaults(t *testing.T) {
	v := viper.New()
	configureViper(v)

	config, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Database.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", config.Database.Driver)
	}
	if config.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", config.HTTP.Addr)
	}
	if config.Feed.OracleTimeout != 20*time.Second {
		t.Fatalf("expected 20s oracle timeout, got %s", config.Feed.OracleTimeout)
	}
	if config.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", config.Auth.TokenTTL)
	}
	if config.AI.Enabled {
		t.Fatal("ai must be disabled by default")
	}
	if config.AI.Gemini.MaxRetries != 3 {
		t.Fatalf("expected 3 retries, got %d", config.AI.Gemini.MaxRetries)
	}
}

func TestDecodeConfigEnvironment(t *testing.T) {
	t.Setenv("SWIPEHIRE_FEED_ORACLE_TIMEOUT", "5s")
	t.Setenv("SWIPEHIRE_DATABASE_DRIVER", "sqlite")
	t.Setenv("SWIPEHIRE_AI_GEMINI_MAX_LOG_LENGTH", "50")

	v := viper.New()
	configureViper(v)

	config, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Feed.OracleTimeout != 5*time.Second {
		t.Fatalf("expected 5s, got %s", config.Feed.OracleTimeout)
	}
	if config.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite, got %q", config.Database.Driver)
	}
	if config.AI.Gemini.MaxLogLength != 50 {
		t.Fatalf("expected 50, got %d", config.AI.Gemini.MaxLogLength)
	}
}

func TestDecodeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swipehire.yaml")
	content := `
database:
  driver: sqlite
  dsn: file:test.db
http:
  addr: 127.0.0.1:9000
ai:
  enabled: true
  gemini:
    model: gemini-2.5-pro
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v := viper.New()
	configureViper(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	config, err := decodeConfig(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Database.DSN != "file:test.db" {
		t.Fatalf("unexpected dsn %q", config.Database.DSN)
	}
	if config.HTTP.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", config.HTTP.Addr)
	}
	if !config.AI.Enabled || config.AI.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("unexpected ai config %+v", config.AI)
	}
	if config.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("defaults must survive a partial file, got %s", config.HTTP.ShutdownTimeout)
	}
}

func TestNewQualifier(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		q, err := newQualifier(context.Background(), AIConfig{}, zap.NewNop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := q.(ai.Unconfigured); !ok {
			t.Fatalf("expected ai.Unconfigured, got %T", q)
		}
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := newQualifier(context.Background(), AIConfig{Enabled: true, Provider: "openai"}, zap.NewNop())
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		_, err := newQualifier(context.Background(), AIConfig{Enabled: true, Provider: "gemini"}, zap.NewNop())
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCatalogue(t *testing.T) {
	jobs, err := catalogue("")
	if err != nil {
		t.Fatalf("sample catalogue: %v", err)
	}
	if len(jobs) == 0 {
		t.Fatal("expected sample jobs")
	}

	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `[{"external_id":"x-1","title":"Go Engineer","company_name":"Initech"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}

	jobs, err = catalogue(path)
	if err != nil {
		t.Fatalf("file catalogue: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go Engineer" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}

	if _, err := catalogue(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
