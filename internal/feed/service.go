// Package feed orchestrates the swipe feed: picking the next job for a user,
// attaching a qualification verdict, and recording or undoing decisions.
package feed

import (
	"time"

	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/ai"
	"github.com/Big-jpg/swipehire/internal/store"
)

const DefaultOracleTimeout = 20 * time.Second

type Config struct {
	// OracleTimeout bounds one qualification call.
	OracleTimeout time.Duration
}

type Deps struct {
	Store     *store.Store
	Qualifier ai.Qualifier
	Logger    *zap.Logger
	// Now is used for undo timestamps; time.Now when nil.
	Now func() time.Time
}

type Service struct {
	store         *store.Store
	qualifier     ai.Qualifier
	logger        *zap.Logger
	oracleTimeout time.Duration
	now           func() time.Time
	locks         *userLocks
}

func New(cfg *Config, deps *Deps) *Service {
	timeout := DefaultOracleTimeout
	if cfg != nil && cfg.OracleTimeout > 0 {
		timeout = cfg.OracleTimeout
	}

	s := &Service{
		store:         deps.Store,
		qualifier:     deps.Qualifier,
		logger:        deps.Logger,
		oracleTimeout: timeout,
		now:           deps.Now,
		locks:         newUserLocks(),
	}
	if s.qualifier == nil {
		s.qualifier = ai.Unconfigured{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}
