package history

import (
	"time"

	"SchoolMeal/internal/neis"
)

// Entry is one school selection waiting to be written.
type Entry struct {
	Identity   neis.SchoolIdentity
	Source     string
	SelectedAt time.Time
}

// RecentSchool aggregates the selections of one school.
type RecentSchool struct {
	Name           string    `json:"name"`
	SchoolCode     string    `json:"school_code"`
	OfficeCode     string    `json:"office_code"`
	Selections     int       `json:"selections"`
	LastSelectedAt time.Time `json:"last_selected_at"`
}
