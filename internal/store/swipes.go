package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Big-jpg/swipehire/internal/models"
)

// AppendSwipe adds a decision to the ledger.
func (s *Store) AppendSwipe(ctx context.Context, swipe *models.Swipe) error {
	if err := s.db.WithContext(ctx).Create(swipe).Error; err != nil {
		return fmt.Errorf("append swipe: %w", err)
	}
	return nil
}

// LatestActiveSwipe returns the most recent swipe of the user that is not
// undone. Equal timestamps are broken by the higher id.
func (s *Store) LatestActiveSwipe(ctx context.Context, userID uint) (*models.Swipe, error) {
	var swipe models.Swipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND undone_at IS NULL", userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&swipe).Error
	if err != nil {
		return nil, notFound(err, "swipe")
	}
	return &swipe, nil
}

// MarkSwipeUndone closes an active swipe. It reports ErrConflict when the
// swipe is already undone or does not exist.
func (s *Store) MarkSwipeUndone(ctx context.Context, swipeID uint, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("id = ? AND undone_at IS NULL", swipeID).
		Update("undone_at", at)
	if result.Error != nil {
		return fmt.Errorf("mark swipe %d undone: %w", swipeID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("swipe %d is not active: %w", swipeID, ErrConflict)
	}
	return nil
}

// DecidedJobIDs lists the jobs the user holds a non-undone swipe on.
func (s *Store) DecidedJobIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("user_id = ? AND undone_at IS NULL", userID).
		Distinct().
		Order("job_id").
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("decided jobs: %w", err)
	}
	return ids, nil
}

// SwipeHistory returns active swipes, newest first, with their jobs loaded.
// A nil decision returns both likes and dislikes.
func (s *Store) SwipeHistory(ctx context.Context, userID uint, decision *models.Decision) ([]models.Swipe, error) {
	q := s.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ? AND undone_at IS NULL", userID)
	if decision != nil {
		q = q.Where("decision = ?", *decision)
	}

	var swipes []models.Swipe
	if err := q.Order("created_at DESC").Order("id DESC").Find(&swipes).Error; err != nil {
		return nil, fmt.Errorf("swipe history: %w", err)
	}
	return swipes, nil
}
