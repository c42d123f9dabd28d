package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeHybrid, WorkModeOnsite:
		return true
	default:
		return false
	}
}

const DefaultEmploymentType = "full-time"

// Job is a posting. Nil salary bounds and work mode mean "not specified".
type Job struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ExternalID     *string   `gorm:"size:255;uniqueIndex" json:"external_id,omitempty"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	CompanyName    string    `gorm:"size:255;not null" json:"company_name"`
	CompanyLogoURL string    `gorm:"size:1024" json:"company_logo_url,omitempty"`
	City           string    `gorm:"size:255;index" json:"city,omitempty"`
	Country        string    `gorm:"size:255;index" json:"country,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	SalaryMin      *int      `json:"salary_min,omitempty"`
	SalaryMax      *int      `json:"salary_max,omitempty"`
	Currency       string    `gorm:"size:10;default:USD" json:"currency,omitempty"`
	WorkMode       *WorkMode `gorm:"size:16" json:"work_mode,omitempty"`
	EmploymentType string    `gorm:"size:50;default:full-time" json:"employment_type,omitempty"`
	Summary        string    `gorm:"type:text" json:"summary,omitempty"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`

	Perks    datatypes.JSONMap `json:"perks,omitempty"`
	ApplyURL string            `gorm:"size:1024" json:"apply_url,omitempty"`
	Source   string            `gorm:"size:100" json:"source,omitempty"`
}

func (j *Job) Validate() error {
	j.Title = strings.TrimSpace(j.Title)
	j.CompanyName = strings.TrimSpace(j.CompanyName)
	if j.Title == "" {
		return fmt.Errorf("title is required")
	}
	if j.CompanyName == "" {
		return fmt.Errorf("company name is required")
	}
	if j.WorkMode != nil {
		mode := WorkMode(strings.ToLower(strings.TrimSpace(string(*j.WorkMode))))
		if mode == "" {
			j.WorkMode = nil
		} else if !mode.Valid() {
			return fmt.Errorf("unknown work mode %q", *j.WorkMode)
		} else {
			j.WorkMode = &mode
		}
	}
	if j.ExternalID != nil && strings.TrimSpace(*j.ExternalID) == "" {
		j.ExternalID = nil
	}
	if j.EmploymentType == "" {
		j.EmploymentType = DefaultEmploymentType
	}
	return nil
}
