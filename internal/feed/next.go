package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/ai"
	"github.com/Big-jpg/swipehire/internal/filtering"
	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

// NextJob returns the next job the user has not decided on, with a verdict.
// An exhausted feed is a result with no job, not an error.
func (s *Service) NextJob(ctx context.Context, userID uint) (*NextResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	log := logger.ForUser(s.logger, userID)

	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProfileRequired
	}
	if err != nil {
		return nil, classify(err, "load profile")
	}

	decided, err := s.store.DecidedJobIDs(ctx, userID)
	if err != nil {
		return nil, classify(err, "load decisions")
	}

	job, err := filtering.Next(ctx, s.store, filtering.Default(profile, decided), log)
	if err != nil {
		return nil, classify(err, "select job")
	}
	if job == nil {
		log.Info("feed exhausted", zap.Int("decided", len(decided)))
		return &NextResult{}, nil
	}

	resume, err := s.store.GetResume(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, classify(err, "load resume")
	}

	verdict := s.qualify(ctx, log.With(logger.JobID(job.ID)), resume.Text(), profile, job)
	return &NextResult{Job: Summarize(job), Verdict: verdict}, nil
}

// qualify never fails: a missing resume or any provider problem yields a
// negative verdict with a fixed reason.
func (s *Service) qualify(ctx context.Context, log *zap.Logger, resumeText string, profile *models.Profile, job *models.Job) *Verdict {
	if strings.TrimSpace(resumeText) == "" {
		return &Verdict{Qualified: false, Reason: ReasonResumeRequired}
	}

	ctx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	type outcome struct {
		verdict *ai.Verdict
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := s.qualifier.Qualify(ctx, resumeText, profile, job)
		done <- outcome{verdict: v, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = fmt.Errorf("qualification timed out after %s: %w", s.oracleTimeout, ctx.Err())
	}
	if res.err == nil && res.verdict == nil {
		res.err = errors.New("qualifier returned no verdict")
	}
	if res.err != nil {
		log.Warn("qualification failed, using fallback verdict", zap.Error(res.err))
		return &Verdict{Qualified: false, Reason: ReasonTechnicalError}
	}

	log.Debug("qualification verdict", zap.Bool("qualified", res.verdict.Qualified))
	return &Verdict{Qualified: res.verdict.Qualified, Reason: res.verdict.Reason}
}
