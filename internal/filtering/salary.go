package filtering

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/Big-jpg/swipehire/internal/models"
)

type salaryFilter struct {
	toggle
	min *int
	max *int
}

// NewSalary keeps jobs whose band overlaps the profile's band. An open end on
// either side never disqualifies.
func NewSalary(profile *models.Profile) Filter {
	f := &salaryFilter{}
	if profile != nil {
		f.min = profile.MinSalary
		f.max = profile.MaxSalary
	}
	if f.min == nil && f.max == nil {
		f.Disable(noPreferenceMsg)
	}
	return f
}

func (f *salaryFilter) Name() string { return "salary" }

func (f *salaryFilter) Scope() func(*gorm.DB) *gorm.DB {
	floor, ceiling := f.min, f.max
	return func(db *gorm.DB) *gorm.DB {
		if floor != nil {
			db = db.Where("(jobs.salary_max IS NULL OR jobs.salary_max >= ?)", *floor)
		}
		if ceiling != nil {
			db = db.Where("(jobs.salary_min IS NULL OR jobs.salary_min <= ?)", *ceiling)
		}
		return db
	}
}

func (f *salaryFilter) Status() Status {
	details := map[string]string{}
	if f.min != nil {
		details["min"] = strconv.Itoa(*f.min)
	}
	if f.max != nil {
		details["max"] = strconv.Itoa(*f.max)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
