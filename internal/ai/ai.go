// Package ai defines the qualification contract used by the feed. Providers
// live in subpackages.
package ai

import (
	"context"
	"errors"

	"github.com/Big-jpg/swipehire/internal/models"
)

// ErrNotConfigured is returned by Unconfigured for every call.
var ErrNotConfigured = errors.New("qualification provider is not configured")

// Verdict is the provider's opinion on whether the candidate fits the job.
type Verdict struct {
	Qualified bool   `json:"qualified"`
	Reason    string `json:"reason"`
	Raw       string `json:"-"`
}

// Qualifier scores a (resume, profile, job) triple.
type Qualifier interface {
	Qualify(ctx context.Context, resumeText string, profile *models.Profile, job *models.Job) (*Verdict, error)
}

// Unconfigured is used when no provider is enabled. The feed turns its error
// into the fallback verdict.
type Unconfigured struct{}

func (Unconfigured) Qualify(context.Context, string, *models.Profile, *models.Job) (*Verdict, error) {
	return nil, ErrNotConfigured
}
