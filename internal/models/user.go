package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	MinActivityLevel = 1
	MaxActivityLevel = 5
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	Email        string    `gorm:"not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile holds the body metrics the recommendation is derived from.
// ActivityLevel is nil when the user never supplied one.
type UserProfile struct {
	ID            uint    `gorm:"primaryKey" json:"profile_id"`
	UserID        uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Height        float64 `gorm:"not null" json:"height"`
	Weight        float64 `gorm:"not null" json:"weight"`
	Age           int     `gorm:"not null" json:"age"`
	Gender        string  `gorm:"not null" json:"gender"`
	Username      string  `gorm:"not null" json:"username"`
	ActivityLevel *int    `json:"activity_level"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func IsValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
