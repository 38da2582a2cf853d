package db

import "gorm.io/gorm"

type Repositories struct {
	Users           *UserRepository
	Foods           *FoodRepository
	Consumption     *ConsumptionRepository
	Recommendations *RecommendationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(database),
		Foods:           NewFoodRepository(database),
		Consumption:     NewConsumptionRepository(database),
		Recommendations: NewRecommendationRepository(database),
	}
}
