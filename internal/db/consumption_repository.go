package db

import (
	"time"

	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsumptionRepository struct {
	database *gorm.DB
}

func NewConsumptionRepository(database *gorm.DB) *ConsumptionRepository {
	return &ConsumptionRepository{database: database}
}

func (repo *ConsumptionRepository) Create(entry *models.ConsumptionLogEntry) error {
	return repo.database.Omit(clause.Associations).Create(entry).Error
}

// CreateWithFood inserts the food first when it has no id yet, then the entry
// referencing it.
func (repo *ConsumptionRepository) CreateWithFood(food *models.Food, entry *models.ConsumptionLogEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if food.ID == 0 {
			food.NameNormalized = models.NormalizeFoodName(food.Name)
			if err := tx.Create(food).Error; err != nil {
				return err
			}
		}

		entry.FoodID = food.ID
		return tx.Omit(clause.Associations).Create(entry).Error
	})
}

func (repo *ConsumptionRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.ConsumptionLogEntry, error) {
	query := repo.database.Model(&models.ConsumptionLogEntry{}).Preload("Food").Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("consumed_at >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("consumed_at < ?", *toEnd)
	}

	entries := make([]models.ConsumptionLogEntry, 0)
	if err := query.Order("consumed_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ConsumptionRepository) CountByFood(foodID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ConsumptionLogEntry{}).Where("food_id = ?", foodID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
