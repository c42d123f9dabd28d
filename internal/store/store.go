package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Big-jpg/swipehire/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting state")
)

type Config struct {
	Driver string
	DSN    string
	LogSQL bool
}

// Store is the gorm-backed persistence for users, profiles, resumes, the job
// catalogue, the swipe ledger and the application tracker. A Store obtained
// inside WithinTx is bound to that transaction.
type Store struct {
	db     *gorm.DB
	driver string
	logger *zap.Logger
}

func Open(cfg *Config, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("database configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var dialector gorm.Dialector
	switch driver {
	case "", DriverPostgres:
		driver = DriverPostgres
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	level := gormlogger.Silent
	if cfg.LogSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer; one connection keeps transactions from
		// tripping over "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Debug("database opened", zap.String("driver", driver))

	return &Store{db: db, driver: driver, logger: logger}, nil
}

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Profile{},
		&models.Resume{},
		&models.Swipe{},
		&models.Application{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	s.logger.Info("database schema migrated", zap.String("driver", s.driver))
	return nil
}

// WithinTx runs fn in a single transaction. fn receives a Store bound to it;
// any returned error (or a cancelled ctx) rolls everything back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, driver: s.driver, logger: s.logger})
	})
}

func (s *Store) Driver() string { return s.driver }

// DB exposes the underlying handle for maintenance commands and tests.
func (s *Store) DB() *gorm.DB { return s.db }

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
