package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Big-jpg/swipehire/internal/models"
)

func (s *Store) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err, "profile")
	}
	return &profile, nil
}

// UpsertProfile replaces the user's profile, keeping the row identity.
func (s *Store) UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile == nil || profile.UserID == 0 {
		return nil, fmt.Errorf("profile owner is required")
	}

	err := s.WithinTx(ctx, func(tx *Store) error {
		existing, err := tx.GetProfile(ctx, profile.UserID)
		switch {
		case errors.Is(err, ErrNotFound):
			profile.ID = 0
			return tx.db.WithContext(ctx).Create(profile).Error
		case err != nil:
			return err
		}

		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return tx.db.WithContext(ctx).Save(profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

func (s *Store) GetResume(ctx context.Context, userID uint) (*models.Resume, error) {
	var resume models.Resume
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&resume).Error; err != nil {
		return nil, notFound(err, "resume")
	}
	return &resume, nil
}

// UpsertResume overwrites the single resume row of a user in place.
func (s *Store) UpsertResume(ctx context.Context, resume *models.Resume) (*models.Resume, error) {
	if resume == nil || resume.UserID == 0 {
		return nil, fmt.Errorf("resume owner is required")
	}

	if resume.ParsedText != "" && resume.ParsedAt == nil {
		now := time.Now()
		resume.ParsedAt = &now
	}
	if resume.ParsedText == "" {
		resume.ParsedAt = nil
	}

	err := s.WithinTx(ctx, func(tx *Store) error {
		existing, err := tx.GetResume(ctx, resume.UserID)
		switch {
		case errors.Is(err, ErrNotFound):
			resume.ID = 0
			return tx.db.WithContext(ctx).Create(resume).Error
		case err != nil:
			return err
		}

		resume.ID = existing.ID
		resume.CreatedAt = existing.CreatedAt
		return tx.db.WithContext(ctx).Save(resume).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert resume: %w", err)
	}
	return resume, nil
}
