package filtering

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Big-jpg/swipehire/internal/models"
)

type workModeFilter struct {
	toggle
	modes []string
}

// NewWorkMode keeps jobs whose work mode is one of the preferred modes, or
// unspecified.
func NewWorkMode(profile *models.Profile) Filter {
	f := &workModeFilter{}
	if profile != nil {
		for _, mode := range profile.WorkModePreferences {
			if mode = strings.ToLower(strings.TrimSpace(mode)); mode != "" {
				f.modes = append(f.modes, mode)
			}
		}
	}
	if len(f.modes) == 0 {
		f.Disable(noPreferenceMsg)
	}
	return f
}

func (f *workModeFilter) Name() string { return "work_mode" }

func (f *workModeFilter) Scope() func(*gorm.DB) *gorm.DB {
	modes := f.modes
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(jobs.work_mode IS NULL OR jobs.work_mode = '' OR jobs.work_mode IN ?)", modes)
	}
}

func (f *workModeFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"modes": strings.Join(f.modes, ",")},
	}
}
