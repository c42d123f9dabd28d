package filtering

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Big-jpg/swipehire/internal/models"
)

const noPreferenceMsg = "no preference in profile"

type locationFilter struct {
	toggle
	city    string
	country string
}

// NewLocation keeps jobs in the profile's city or country. Jobs without any
// location pass.
func NewLocation(profile *models.Profile) Filter {
	f := &locationFilter{}
	if profile != nil {
		f.city = strings.TrimSpace(profile.City)
		f.country = strings.TrimSpace(profile.Country)
	}
	if f.city == "" && f.country == "" {
		f.Disable(noPreferenceMsg)
	}
	return f
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Scope() func(*gorm.DB) *gorm.DB {
	conds := []string{"(COALESCE(jobs.city, '') = '' AND COALESCE(jobs.country, '') = '')"}
	var args []any
	if f.city != "" {
		conds = append(conds, "jobs.city = ?")
		args = append(args, f.city)
	}
	if f.country != "" {
		conds = append(conds, "jobs.country = ?")
		args = append(args, f.country)
	}
	query := "(" + strings.Join(conds, " OR ") + ")"

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func (f *locationFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"city": f.city, "country": f.country},
	}
}
