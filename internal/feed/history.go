package feed

import (
	"context"

	"github.com/Big-jpg/swipehire/internal/models"
)

// ListSwipeHistory returns active swipes, newest first. A nil decision
// returns likes and dislikes.
func (s *Service) ListSwipeHistory(ctx context.Context, userID uint, decision *models.Decision) ([]SwipeEntry, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if decision != nil {
		if _, err := models.ParseDecision(string(*decision)); err != nil {
			return nil, invalid("decision filter must be %q or %q", models.DecisionLike, models.DecisionDislike)
		}
	}

	swipes, err := s.store.SwipeHistory(ctx, userID, decision)
	if err != nil {
		return nil, classify(err, "load swipe history")
	}

	entries := make([]SwipeEntry, 0, len(swipes))
	for _, swipe := range swipes {
		job := swipe.Job
		swipe.Job = nil
		entries = append(entries, SwipeEntry{Swipe: swipe, Job: Summarize(job)})
	}
	return entries, nil
}

// ListApplications returns every application of the user, newest first.
func (s *Service) ListApplications(ctx context.Context, userID uint) ([]ApplicationEntry, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	apps, err := s.store.ListApplications(ctx, userID)
	if err != nil {
		return nil, classify(err, "load applications")
	}

	entries := make([]ApplicationEntry, 0, len(apps))
	for _, app := range apps {
		job := app.Job
		app.Job = nil
		entries = append(entries, ApplicationEntry{Application: app, Job: Summarize(job)})
	}
	return entries, nil
}
