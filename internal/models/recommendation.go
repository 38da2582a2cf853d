package models

type RecommendedMacros struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	UserID   uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Calories float64 `gorm:"not null" json:"calorie"`
	Protein  float64 `gorm:"not null" json:"protein"`
	Fat      float64 `gorm:"not null" json:"fat"`
	Carbs    float64 `gorm:"not null" json:"carbs"`
}

func (RecommendedMacros) TableName() string {
	return "recommended_macros"
}
