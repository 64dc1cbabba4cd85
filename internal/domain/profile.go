package domain

import "time"

type MaritalStatus string

const (
	MaritalStatusSingle   MaritalStatus = "single"
	MaritalStatusDivorced MaritalStatus = "divorced"
	MaritalStatusWidowed  MaritalStatus = "widowed"
)

type ReligiousPractice string

const (
	PracticeVeryPracticing ReligiousPractice = "very_practicing"
	PracticePracticing     ReligiousPractice = "practicing"
	PracticeModerate       ReligiousPractice = "moderate"
	PracticeCultural       ReligiousPractice = "cultural"
)

type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationDoctorate  EducationLevel = "doctorate"
)

// UserProfile holds the mutable descriptive attributes of a user. Created at
// onboarding time; any field may stay unset until supplied.
type UserProfile struct {
	ID                int                `json:"id" db:"id"`
	UserID            string             `json:"user_id" db:"user_id"`
	Bio               *string            `json:"bio" db:"bio"`
	Education         *EducationLevel    `json:"education" db:"education"`
	Occupation        *string            `json:"occupation" db:"occupation"`
	City              *string            `json:"city" db:"city"`
	Country           *string            `json:"country" db:"country"`
	HeightCm          *int               `json:"height_cm" db:"height_cm"`
	MaritalStatus     *MaritalStatus     `json:"marital_status" db:"marital_status"`
	ReligiousPractice *ReligiousPractice `json:"religious_practice" db:"religious_practice"`
	Lifestyle         []string           `json:"lifestyle" db:"lifestyle"`
	Photos            []string           `json:"photos" db:"photos"`
	Interests         []string           `json:"interests" db:"interests"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}
