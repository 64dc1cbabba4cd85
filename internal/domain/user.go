package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type User struct {
	ID                string    `json:"id" db:"id"`
	FirstName         string    `json:"first_name" db:"first_name"`
	LastName          string    `json:"last_name" db:"last_name"`
	Email             string    `json:"email" db:"email"`
	Phone             *string   `json:"phone" db:"phone"`
	BirthDate         time.Time `json:"birth_date" db:"birth_date"`
	Gender            Gender    `json:"gender" db:"gender"`
	IsVerified        bool      `json:"is_verified" db:"is_verified"`
	IsProfileComplete bool      `json:"is_profile_complete" db:"is_profile_complete"`
	GuardianID        *string   `json:"guardian_id" db:"guardian_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Age returns the user's age in full years.
func (u *User) Age() int {
	now := time.Now()
	age := now.Year() - u.BirthDate.Year()
	if now.YearDay() < u.BirthDate.YearDay() {
		age--
	}
	return age
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
