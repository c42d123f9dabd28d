package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Big-jpg/swipehire/internal/models"
)

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationQueued
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, notFound(err, "application")
	}
	return &app, nil
}

// FailApplicationsForSwipe moves every application spawned by the swipe to
// failed with the given reason. Submission timestamps are left as they are.
func (s *Store) FailApplicationsForSwipe(ctx context.Context, swipeID uint, reason string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("swipe_id = ?", swipeID).
		Updates(map[string]any{
			"status":         models.ApplicationFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("fail applications of swipe %d: %w", swipeID, result.Error)
	}
	return result.RowsAffected, nil
}

// ListApplications returns the user's applications, newest first, with jobs loaded.
func (s *Store) ListApplications(ctx context.Context, userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// MarkApplicationSubmitted records external fulfilment of a queued application.
func (s *Store) MarkApplicationSubmitted(ctx context.Context, id uint, at time.Time) (*models.Application, error) {
	return s.transitionQueued(ctx, id, map[string]any{
		"status":       models.ApplicationSubmitted,
		"submitted_at": at,
		"updated_at":   time.Now(),
	})
}

// MarkApplicationFailed records an external failure of a queued application.
func (s *Store) MarkApplicationFailed(ctx context.Context, id uint, reason string) (*models.Application, error) {
	if reason == "" {
		return nil, errors.New("failure reason is required")
	}
	return s.transitionQueued(ctx, id, map[string]any{
		"status":         models.ApplicationFailed,
		"failure_reason": reason,
		"updated_at":     time.Now(),
	})
}

func (s *Store) transitionQueued(ctx context.Context, id uint, updates map[string]any) (*models.Application, error) {
	var app *models.Application
	err := s.WithinTx(ctx, func(tx *Store) error {
		result := tx.db.WithContext(ctx).
			Model(&models.Application{}).
			Where("id = ? AND status = ?", id, models.ApplicationQueued).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("update application %d: %w", id, result.Error)
		}

		current, err := tx.GetApplication(ctx, id)
		if err != nil {
			return err
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("application %d is %s, not queued: %w", id, current.Status, ErrConflict)
		}
		app = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}
