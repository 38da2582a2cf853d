package models

import "time"

type ConsumptionLogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"log_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	FoodID     uint      `gorm:"not null;index" json:"food_id"`
	Grams      float64   `gorm:"not null" json:"grams"`
	ConsumedAt time.Time `gorm:"type:date;not null" json:"consumed_at"`
	Food       *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

func (ConsumptionLogEntry) TableName() string {
	return "consumption_log_entries"
}
