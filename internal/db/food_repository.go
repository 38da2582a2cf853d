package db

import (
	"strings"

	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
)

var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type FoodRepository struct {
	database *gorm.DB
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{database: database}
}

func (repo *FoodRepository) List(offset int, limit int) ([]models.Food, error) {
	foods := make([]models.Food, 0)
	if err := repo.database.Order("id ASC").Offset(offset).Limit(limit).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (repo *FoodRepository) FindByID(foodID uint) (models.Food, error) {
	var food models.Food
	if err := repo.database.First(&food, foodID).Error; err != nil {
		return models.Food{}, err
	}
	return food, nil
}

// SearchByNamePrefix matches names case-insensitively; wildcard characters in
// the prefix are matched literally.
func (repo *FoodRepository) SearchByNamePrefix(prefix string) ([]models.Food, error) {
	pattern := likePatternEscaper.Replace(models.NormalizeFoodName(prefix)) + "%"

	foods := make([]models.Food, 0)
	if err := repo.database.
		Where(`name_normalized LIKE ? ESCAPE '\'`, pattern).
		Order("id ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (repo *FoodRepository) ListByNormalizedName(name string) ([]models.Food, error) {
	foods := make([]models.Food, 0)
	if err := repo.database.
		Where("name_normalized = ?", models.NormalizeFoodName(name)).
		Order("id ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (repo *FoodRepository) Create(food *models.Food) error {
	food.NameNormalized = models.NormalizeFoodName(food.Name)
	return repo.database.Create(food).Error
}

func (repo *FoodRepository) DeleteByID(foodID uint) (bool, error) {
	result := repo.database.Delete(&models.Food{}, foodID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
