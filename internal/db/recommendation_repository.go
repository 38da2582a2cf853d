package db

import (
	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	database *gorm.DB
}

func NewRecommendationRepository(database *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{database: database}
}

func (repo *RecommendationRepository) FindByUserID(userID uint) (models.RecommendedMacros, error) {
	var macros models.RecommendedMacros
	if err := repo.database.Where("user_id = ?", userID).First(&macros).Error; err != nil {
		return models.RecommendedMacros{}, err
	}
	return macros, nil
}

// upsertRecommendedMacros keeps a single row per user, keyed by user_id.
func upsertRecommendedMacros(database *gorm.DB, macros *models.RecommendedMacros) error {
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "fat", "carbs"}),
	}).Create(macros).Error
}
