package feed

import (
	"context"
	"errors"
	"strings"

	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

func (s *Service) Profile(ctx context.Context, userID uint) (*models.Profile, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("profile not found")
	}
	if err != nil {
		return nil, classify(err, "load profile")
	}
	return profile, nil
}

// SaveProfile validates and upserts the user's profile.
func (s *Service) SaveProfile(ctx context.Context, userID uint, profile *models.Profile) (*models.Profile, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if profile == nil {
		return nil, invalid("profile is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}
	profile.UserID = userID

	saved, err := s.store.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, classify(err, "save profile")
	}
	logger.ForUser(s.logger, userID).Info("profile saved")
	return saved, nil
}

func (s *Service) Resume(ctx context.Context, userID uint) (*models.Resume, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	resume, err := s.store.GetResume(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("resume not found")
	}
	if err != nil {
		return nil, classify(err, "load resume")
	}
	return resume, nil
}

// SaveResume replaces the user's resume in place.
func (s *Service) SaveResume(ctx context.Context, userID uint, resume *models.Resume) (*models.Resume, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if resume == nil {
		return nil, invalid("resume is required")
	}
	resume.ParsedText = strings.TrimSpace(resume.ParsedText)
	if resume.ParsedText == "" && strings.TrimSpace(resume.FileURL) == "" {
		return nil, invalid("resume text or file url is required")
	}
	resume.UserID = userID
	resume.ParsedAt = nil

	saved, err := s.store.UpsertResume(ctx, resume)
	if err != nil {
		return nil, classify(err, "save resume")
	}
	logger.ForUser(s.logger, userID).Info("resume saved")
	return saved, nil
}
