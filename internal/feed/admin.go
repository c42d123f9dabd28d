package feed

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

// Operator-side catalogue and application fulfilment. Role checks are the
// transport's job.

func (s *Service) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job == nil {
		return nil, invalid("job is required")
	}
	if err := job.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, invalid("salary min is greater than salary max")
	}

	job.ID = 0
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, classify(err, "create job")
	}
	s.logger.Info("job created", logger.JobID(job.ID), zap.String("title", job.Title))
	return job, nil
}

func (s *Service) Job(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, classify(err, "load job")
	}
	return job, nil
}

func (s *Service) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	jobs, err := s.store.ListJobs(ctx, limit)
	if err != nil {
		return nil, classify(err, "list jobs")
	}
	return jobs, nil
}

// MarkSubmitted moves a queued application to submitted.
func (s *Service) MarkSubmitted(ctx context.Context, applicationID uint) (*models.Application, error) {
	app, err := s.store.MarkApplicationSubmitted(ctx, applicationID, s.now())
	if err != nil {
		return nil, s.applicationError(err, "submit application")
	}
	s.logger.Info("application submitted", zap.Uint("application_id", app.ID), logger.JobID(app.JobID))
	return app, nil
}

// MarkFailed moves a queued application to failed with reason.
func (s *Service) MarkFailed(ctx context.Context, applicationID uint, reason string) (*models.Application, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid("failure reason is required")
	}
	app, err := s.store.MarkApplicationFailed(ctx, applicationID, reason)
	if err != nil {
		return nil, s.applicationError(err, "fail application")
	}
	s.logger.Info("application failed", zap.Uint("application_id", app.ID), zap.String("reason", reason))
	return app, nil
}

func (s *Service) applicationError(err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound("application not found")
	}
	return classify(err, op)
}
