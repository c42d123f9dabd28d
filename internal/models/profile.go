package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Profile holds the job search preferences of a user (one-to-one with User).
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`

	FullName         string   `gorm:"size:255" json:"full_name,omitempty"`
	City             string   `gorm:"size:255" json:"city,omitempty"`
	Country          string   `gorm:"size:255" json:"country,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	MinSalary        *int     `json:"min_salary,omitempty"`
	MaxSalary        *int     `json:"max_salary,omitempty"`
	Currency         string   `gorm:"size:10;default:USD" json:"currency,omitempty"`
	ExperienceYears  *int     `json:"experience_years,omitempty"`
	CurrentRoleTitle string   `gorm:"size:255" json:"current_role_title,omitempty"`
	DesiredTitle     string   `gorm:"size:255" json:"desired_title,omitempty"`

	WorkModePreferences datatypes.JSONSlice[string] `json:"work_mode_preferences,omitempty"`
	PerksPreferences    datatypes.JSONMap           `json:"perks_preferences,omitempty"`
	Skills              datatypes.JSONSlice[string] `json:"skills,omitempty"`
}

// Validate normalizes the work mode preferences and rejects unknown values.
func (p *Profile) Validate() error {
	modes := make([]string, 0, len(p.WorkModePreferences))
	seen := make(map[string]struct{}, len(p.WorkModePreferences))
	for _, raw := range p.WorkModePreferences {
		mode := WorkMode(strings.ToLower(strings.TrimSpace(raw)))
		if mode == "" {
			continue
		}
		if !mode.Valid() {
			return fmt.Errorf("unknown work mode %q", raw)
		}
		if _, ok := seen[string(mode)]; ok {
			continue
		}
		seen[string(mode)] = struct{}{}
		modes = append(modes, string(mode))
	}
	p.WorkModePreferences = modes

	if p.MinSalary != nil && p.MaxSalary != nil && *p.MinSalary > *p.MaxSalary {
		return fmt.Errorf("min salary %d is greater than max salary %d", *p.MinSalary, *p.MaxSalary)
	}

	p.City = strings.TrimSpace(p.City)
	p.Country = strings.TrimSpace(p.Country)
	return nil
}
