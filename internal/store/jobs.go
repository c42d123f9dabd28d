package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Big-jpg/swipehire/internal/models"
)

const defaultJobsLimit = 100

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("job with external id already exists: %w", ErrConflict)
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, notFound(err, "job")
	}
	return &job, nil
}

// ListJobs returns the newest jobs first.
func (s *Store) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = defaultJobsLimit
	}

	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// NextEligible returns the oldest job matching every scope, or nil when the
// catalogue is exhausted for these scopes.
func (s *Store) NextEligible(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (*models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Model(&models.Job{}).
		Scopes(scopes...).
		Order("jobs.created_at ASC").
		Order("jobs.id ASC").
		Limit(1).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("select eligible job: %w", err)
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return &jobs[0], nil
}

// SeedJobs inserts jobs whose external id is not yet known and reports how
// many were created.
func (s *Store) SeedJobs(ctx context.Context, jobs []models.Job) (int, error) {
	created := 0
	err := s.WithinTx(ctx, func(tx *Store) error {
		for i := range jobs {
			job := jobs[i]
			if err := job.Validate(); err != nil {
				return fmt.Errorf("seed job %q: %w", job.Title, err)
			}
			if job.ExternalID == nil {
				return fmt.Errorf("seed job %q: external id is required", job.Title)
			}

			var existing int64
			err := tx.db.WithContext(ctx).
				Model(&models.Job{}).
				Where("external_id = ?", *job.ExternalID).
				Count(&existing).Error
			if err != nil {
				return fmt.Errorf("seed job %q: %w", *job.ExternalID, err)
			}
			if existing > 0 {
				continue
			}

			if err := tx.db.WithContext(ctx).Create(&job).Error; err != nil {
				return fmt.Errorf("seed job %q: %w", *job.ExternalID, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
