package models

import "strings"

// Food macro values are per reference quantity (100 g or one serving).
// NameNormalized is the lookup key for case-insensitive matching and is
// derived from Name by NormalizeFoodName.
type Food struct {
	ID             uint    `gorm:"primaryKey" json:"food_id"`
	Name           string  `gorm:"not null" json:"name"`
	NameNormalized string  `gorm:"not null" json:"-"`
	Calories       float64 `gorm:"not null" json:"calories"`
	Protein        float64 `gorm:"not null" json:"protein"`
	Fat            float64 `gorm:"not null" json:"fat"`
	Carbs          float64 `gorm:"not null" json:"carbs"`
}

func (Food) TableName() string {
	return "foods"
}

// NormalizeFoodName folds case for every script. SQL lower() is not used
// because SQLite only folds ASCII letters.
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
