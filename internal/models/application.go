package models

import "time"

type ApplicationStatus string

const (
	ApplicationQueued    ApplicationStatus = "queued"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationFailed    ApplicationStatus = "failed"
)

// FailureReasonUndone is recorded on applications whose swipe was undone.
const FailureReasonUndone = "swipe undone by user"

// Application is derived from a like swipe. SwipeID is a weak reference and
// is cleared if the swipe row ever disappears; the application stays.
type Application struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	UserID        uint              `gorm:"not null;index" json:"user_id"`
	JobID         uint              `gorm:"not null;index" json:"job_id"`
	Job           *Job              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	SwipeID       *uint             `gorm:"index" json:"swipe_id,omitempty"`
	Swipe         *Swipe            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Status        ApplicationStatus `gorm:"size:16;not null;default:queued;index" json:"status"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	FailureReason *string           `gorm:"type:text" json:"failure_reason,omitempty"`
}
