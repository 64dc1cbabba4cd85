package feed

import (
	"iter"
	"slices"

	"github.com/zawajapp/zawaj-backend/internal/domain"
)

// Candidate pairs a user with their profile for filtering and presentation.
type Candidate struct {
	User    *domain.User
	Profile *domain.UserProfile
}

// Filter reduces candidates to those satisfying every stated preference
// dimension. The returned sequence is lazy, restartable and preserves input
// order. Nil preferences mean no filtering; an empty allowed-set means no
// constraint on that dimension. A candidate with no recorded value cannot
// satisfy a stated set constraint.
func Filter(candidates []Candidate, prefs *domain.UserPreferences) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, c := range candidates {
			if !satisfies(c, prefs) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func satisfies(c Candidate, prefs *domain.UserPreferences) bool {
	if prefs == nil {
		return true
	}

	age := c.User.Age()
	if prefs.MinAge > 0 && age < prefs.MinAge {
		return false
	}
	if prefs.MaxAge > 0 && age > prefs.MaxAge {
		return false
	}

	if len(prefs.MaritalStatuses) > 0 {
		if c.Profile == nil || c.Profile.MaritalStatus == nil ||
			!slices.Contains(prefs.MaritalStatuses, *c.Profile.MaritalStatus) {
			return false
		}
	}

	if len(prefs.ReligiousPractices) > 0 {
		if c.Profile == nil || c.Profile.ReligiousPractice == nil ||
			!slices.Contains(prefs.ReligiousPractices, *c.Profile.ReligiousPractice) {
			return false
		}
	}

	if len(prefs.EducationLevels) > 0 {
		if c.Profile == nil || c.Profile.Education == nil ||
			!slices.Contains(prefs.EducationLevels, *c.Profile.Education) {
			return false
		}
	}

	if len(prefs.Locations) > 0 {
		if c.Profile == nil || c.Profile.City == nil ||
			!slices.Contains(prefs.Locations, *c.Profile.City) {
			return false
		}
	}

	if len(prefs.AcceptedLifestyles) > 0 && c.Profile != nil {
		for _, tag := range c.Profile.Lifestyle {
			if !slices.Contains(prefs.AcceptedLifestyles, tag) {
				return false
			}
		}
	}

	return true
}
