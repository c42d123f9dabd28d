package feed

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/Big-jpg/swipehire/internal/models"
)

// JobSummary is the card shown in the feed and in history views.
type JobSummary struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	CompanyName    string            `json:"company_name"`
	CompanyLogoURL string            `json:"company_logo_url,omitempty"`
	City           string            `json:"city,omitempty"`
	Country        string            `json:"country,omitempty"`
	SalaryMin      *int              `json:"salary_min,omitempty"`
	SalaryMax      *int              `json:"salary_max,omitempty"`
	Currency       string            `json:"currency,omitempty"`
	WorkMode       *models.WorkMode  `json:"work_mode,omitempty"`
	EmploymentType string            `json:"employment_type,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Perks          datatypes.JSONMap `json:"perks,omitempty"`
	ApplyURL       string            `json:"apply_url,omitempty"`
}

func Summarize(job *models.Job) *JobSummary {
	if job == nil {
		return nil
	}
	return &JobSummary{
		ID:             job.ID,
		Title:          job.Title,
		CompanyName:    job.CompanyName,
		CompanyLogoURL: job.CompanyLogoURL,
		City:           job.City,
		Country:        job.Country,
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		Currency:       job.Currency,
		WorkMode:       job.WorkMode,
		EmploymentType: job.EmploymentType,
		Summary:        job.Summary,
		Perks:          job.Perks,
		ApplyURL:       job.ApplyURL,
	}
}

// Verdict is the qualification shown next to a job and echoed back with the
// decision.
type Verdict struct {
	Qualified bool   `json:"qualified"`
	Reason    string `json:"reason"`
}

const (
	ReasonResumeRequired = "resume required for matching"
	ReasonTechnicalError = "unable to determine fit due to technical error"
)

func (v *Verdict) snapshot() models.Verdict {
	if v == nil {
		return models.Verdict{}
	}
	qualified := v.Qualified
	reason := strings.TrimSpace(v.Reason)
	return models.Verdict{Qualified: &qualified, Reason: &reason}
}

// NextResult is empty (both fields nil) when the feed is exhausted.
type NextResult struct {
	Job     *JobSummary `json:"job"`
	Verdict *Verdict    `json:"verdict"`
}

func (r *NextResult) Exhausted() bool {
	return r == nil || r.Job == nil
}

type DecisionInput struct {
	JobID    uint            `json:"job_id"`
	Decision models.Decision `json:"decision"`
	Verdict  *Verdict        `json:"verdict,omitempty"`
}

type DecisionResult struct {
	OK            bool  `json:"ok"`
	SwipeID       uint  `json:"swipe_id"`
	ApplicationID *uint `json:"application_id,omitempty"`
}

type UndoResult struct {
	OK                 bool  `json:"ok"`
	SwipeID            uint  `json:"swipe_id"`
	FailedApplications int64 `json:"failed_applications"`
}

type SwipeEntry struct {
	Swipe models.Swipe `json:"swipe"`
	Job   *JobSummary  `json:"job"`
}

type ApplicationEntry struct {
	Application models.Application `json:"application"`
	Job         *JobSummary        `json:"job"`
}
