// Package filtering narrows the job catalogue to what a profile accepts.
// Each step contributes one SQL scope; the candidate store applies them all
// and picks the oldest remaining job.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Big-jpg/swipehire/internal/models"
)

// Filter is a single narrowing step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool
	Scope() func(*gorm.DB) *gorm.DB
	Status() Status
}

// CandidateSource picks the first job matching every scope, nil when none.
type CandidateSource interface {
	NextEligible(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (*models.Job, error)
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// Default builds the standard pipeline for a profile and the jobs the user
// has already decided on. Steps whose preference is unset come back disabled.
func Default(profile *models.Profile, decided []uint) []Filter {
	return []Filter{
		NewDecided(decided),
		NewLocation(profile),
		NewSalary(profile),
		NewWorkMode(profile),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Scopes collects the scopes of the enabled steps.
func Scopes(steps []Filter) []func(*gorm.DB) *gorm.DB {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, len(steps))
	for _, step := range steps {
		if step.IsEnabled() {
			scopes = append(scopes, step.Scope())
		}
	}
	return scopes
}

// Next returns the first job that survives every enabled step, or nil when
// the catalogue is exhausted for this user.
func Next(ctx context.Context, src CandidateSource, steps []Filter, logger *zap.Logger) (*models.Job, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, status := range Describe(steps) {
		if !status.Enabled {
			logger.Debug("filter disabled", zap.String("name", status.Name), zap.String("reason", status.Reason))
			continue
		}
		logger.Debug("filter step", zap.String("name", status.Name), zap.Any("details", status.Details))
	}

	job, err := src.NextEligible(ctx, Scopes(steps)...)
	if err != nil {
		return nil, fmt.Errorf("next eligible job: %w", err)
	}
	return job, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		statuses = append(statuses, step.Status())
	}
	return statuses
}
