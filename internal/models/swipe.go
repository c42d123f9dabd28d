package models

import (
	"fmt"
	"time"
)

type Decision string

const (
	DecisionLike    Decision = "like"
	DecisionDislike Decision = "dislike"
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionLike, DecisionDislike:
		return d, nil
	default:
		return "", fmt.Errorf("unknown decision %q", s)
	}
}

// Verdict is the qualification snapshot copied into a swipe at decision time.
// Both columns are NULL when no verdict was supplied.
type Verdict struct {
	Qualified *bool   `gorm:"column:qualified_flag" json:"qualified,omitempty"`
	Reason    *string `gorm:"column:qualified_reason;type:text" json:"reason,omitempty"`
}

// Swipe is one decision by one user on one job. Undo sets UndoneAt; rows are
// never deleted.
type Swipe struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_swipes_user_latest,priority:1" json:"user_id"`
	JobID     uint       `gorm:"not null;index" json:"job_id"`
	Job       *Job       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Decision  Decision   `gorm:"size:16;not null" json:"decision"`
	Verdict   Verdict    `gorm:"embedded" json:"verdict"`
	CreatedAt time.Time  `gorm:"not null;index:idx_swipes_user_latest,priority:2" json:"created_at"`
	UndoneAt  *time.Time `gorm:"index" json:"undone_at,omitempty"`
}

func (s *Swipe) Undone() bool {
	return s.UndoneAt != nil
}
