package feed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

// RecordDecision appends a swipe and, for a like, a queued application in one
// transaction.
func (s *Service) RecordDecision(ctx context.Context, userID uint, in DecisionInput) (*DecisionResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	decision, err := models.ParseDecision(string(in.Decision))
	if err != nil {
		return nil, invalid("decision must be %q or %q", models.DecisionLike, models.DecisionDislike)
	}
	if in.JobID == 0 {
		return nil, invalid("job id is required")
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	result := &DecisionResult{OK: true}
	err = s.store.WithinTx(ctx, func(tx *store.Store) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthorized
			}
			return err
		}

		if _, err := tx.GetJob(ctx, in.JobID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrJobNotFound
			}
			return err
		}

		swipe := &models.Swipe{
			UserID:   userID,
			JobID:    in.JobID,
			Decision: decision,
			Verdict:  in.Verdict.snapshot(),
		}
		if err := tx.AppendSwipe(ctx, swipe); err != nil {
			return err
		}
		result.SwipeID = swipe.ID

		if decision != models.DecisionLike {
			return nil
		}

		app := &models.Application{
			UserID:  userID,
			JobID:   in.JobID,
			SwipeID: &swipe.ID,
			Status:  models.ApplicationQueued,
		}
		if err := tx.CreateApplication(ctx, app); err != nil {
			return err
		}
		result.ApplicationID = &app.ID
		return nil
	})
	if err != nil {
		return nil, classify(err, "record decision")
	}

	fields := []zap.Field{logger.JobID(in.JobID), logger.SwipeID(result.SwipeID), zap.String("decision", string(decision))}
	if result.ApplicationID != nil {
		fields = append(fields, zap.Uint("application_id", *result.ApplicationID))
	}
	logger.ForUser(s.logger, userID).Info("decision recorded", fields...)

	return result, nil
}

// UndoLastDecision reverts the user's most recent active swipe and fails the
// applications it produced. Only one level of undo exists.
func (s *Service) UndoLastDecision(ctx context.Context, userID uint) (*UndoResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	result := &UndoResult{OK: true}
	err := s.store.WithinTx(ctx, func(tx *store.Store) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthorized
			}
			return err
		}

		swipe, err := tx.LatestActiveSwipe(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNothingToUndo
		}
		if err != nil {
			return err
		}

		if err := tx.MarkSwipeUndone(ctx, swipe.ID, s.now()); err != nil {
			return err
		}

		failed, err := tx.FailApplicationsForSwipe(ctx, swipe.ID, models.FailureReasonUndone)
		if err != nil {
			return err
		}

		result.SwipeID = swipe.ID
		result.FailedApplications = failed
		return nil
	})
	if err != nil {
		return nil, classify(err, "undo decision")
	}

	logger.ForUser(s.logger, userID).Info("decision undone",
		logger.SwipeID(result.SwipeID),
		zap.Int64("failed_applications", result.FailedApplications),
	)
	return result, nil
}
