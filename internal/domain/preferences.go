package domain

import "time"

// UserPreferences is the per-user candidate filter. One-to-one with User,
// created with defaults on first load and overwritten wholesale on save.
// An empty allowed-set means "no constraint on this dimension".
type UserPreferences struct {
	ID                 int                 `json:"id" db:"id"`
	UserID             string              `json:"user_id" db:"user_id"`
	MinAge             int                 `json:"min_age" db:"min_age"`
	MaxAge             int                 `json:"max_age" db:"max_age"`
	MaxDistanceKm      int                 `json:"max_distance_km" db:"max_distance_km"`
	MaritalStatuses    []MaritalStatus     `json:"marital_statuses" db:"marital_statuses"`
	ReligiousPractices []ReligiousPractice `json:"religious_practices" db:"religious_practices"`
	EducationLevels    []EducationLevel    `json:"education_levels" db:"education_levels"`
	Locations          []string            `json:"locations" db:"locations"`
	AcceptedLifestyles []string            `json:"accepted_lifestyles" db:"accepted_lifestyles"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences returns the preferences written on first load.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:        userID,
		MinAge:        18,
		MaxAge:        60,
		MaxDistanceKm: 100,
	}
}
