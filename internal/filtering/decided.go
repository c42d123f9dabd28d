package filtering

import (
	"strconv"

	"gorm.io/gorm"
)

const noDecisionsMsg = "no active decisions"

type decidedFilter struct {
	toggle
	jobIDs []uint
}

// NewDecided excludes jobs the user holds an active swipe on.
func NewDecided(jobIDs []uint) Filter {
	f := &decidedFilter{jobIDs: append([]uint(nil), jobIDs...)}
	if len(f.jobIDs) == 0 {
		f.Disable(noDecisionsMsg)
	}
	return f
}

func (f *decidedFilter) Name() string { return "decided" }

func (f *decidedFilter) Scope() func(*gorm.DB) *gorm.DB {
	ids := f.jobIDs
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("jobs.id NOT IN ?", ids)
	}
}

func (f *decidedFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"excluded_jobs": strconv.Itoa(len(f.jobIDs))},
	}
}
