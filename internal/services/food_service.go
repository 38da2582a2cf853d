package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFoodNotFound       = errors.New("food not found")
	ErrFoodInUse          = errors.New("food is referenced by consumption logs")
	ErrInvalidFoodName    = errors.New("invalid food name")
	ErrInvalidFoodMacros  = errors.New("invalid food macros")
	ErrInvalidSearchQuery = errors.New("invalid search query")
)

type FoodRepository interface {
	List(offset int, limit int) ([]models.Food, error)
	FindByID(foodID uint) (models.Food, error)
	SearchByNamePrefix(prefix string) ([]models.Food, error)
	ListByNormalizedName(name string) ([]models.Food, error)
	Create(food *models.Food) error
	DeleteByID(foodID uint) (bool, error)
}

type FoodUsageRepository interface {
	CountByFood(foodID uint) (int64, error)
}

type FoodInput struct {
	Name     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

type FoodService struct {
	foods FoodRepository
	usage FoodUsageRepository
}

func NewFoodService(foods FoodRepository, usage FoodUsageRepository) *FoodService {
	return &FoodService{foods: foods, usage: usage}
}

func NormalizeFoodInput(input FoodInput) (FoodInput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > maxFoodNameLength {
		return FoodInput{}, ErrInvalidFoodName
	}
	for _, value := range []float64{input.Calories, input.Protein, input.Fat, input.Carbs} {
		if !isFinite(value) || value < 0 {
			return FoodInput{}, ErrInvalidFoodMacros
		}
	}
	input.Name = name
	return input, nil
}

func (service *FoodService) List(page Page) ([]models.Food, error) {
	foods, err := service.foods.List(page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list foods: %v", ErrStorageFailure, err)
	}
	return foods, nil
}

func (service *FoodService) Find(foodID uint) (models.Food, error) {
	food, err := service.foods.FindByID(foodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Food{}, ErrFoodNotFound
		}
		return models.Food{}, fmt.Errorf("%w: load food: %v", ErrStorageFailure, err)
	}
	return food, nil
}

// Search returns foods whose name starts with prefix, ignoring case. No match
// is an empty list.
func (service *FoodService) Search(prefix string) ([]models.Food, error) {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return nil, ErrInvalidSearchQuery
	}

	foods, err := service.foods.SearchByNamePrefix(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: search foods: %v", ErrStorageFailure, err)
	}
	return foods, nil
}

// FindExactMatch returns the lowest-id food with the same name (ignoring case)
// and identical macro values.
func (service *FoodService) FindExactMatch(input FoodInput) (models.Food, bool, error) {
	normalized, err := NormalizeFoodInput(input)
	if err != nil {
		return models.Food{}, false, err
	}

	candidates, err := service.foods.ListByNormalizedName(normalized.Name)
	if err != nil {
		return models.Food{}, false, fmt.Errorf("%w: match food: %v", ErrStorageFailure, err)
	}

	for _, candidate := range candidates {
		if candidate.Calories == normalized.Calories &&
			candidate.Protein == normalized.Protein &&
			candidate.Fat == normalized.Fat &&
			candidate.Carbs == normalized.Carbs {
			return candidate, true, nil
		}
	}
	return models.Food{}, false, nil
}

// Create always inserts; deduplication belongs to the logging flow.
func (service *FoodService) Create(input FoodInput) (models.Food, error) {
	normalized, err := NormalizeFoodInput(input)
	if err != nil {
		return models.Food{}, err
	}

	food := foodFromInput(normalized)
	if err := service.foods.Create(&food); err != nil {
		return models.Food{}, fmt.Errorf("%w: create food: %v", ErrStorageFailure, err)
	}
	return food, nil
}

// Delete refuses to remove a food that consumption logs still reference.
func (service *FoodService) Delete(foodID uint) error {
	if _, err := service.Find(foodID); err != nil {
		return err
	}

	references, err := service.usage.CountByFood(foodID)
	if err != nil {
		return fmt.Errorf("%w: count food usage: %v", ErrStorageFailure, err)
	}
	if references > 0 {
		return ErrFoodInUse
	}

	deleted, err := service.foods.DeleteByID(foodID)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrFoodInUse
		}
		return fmt.Errorf("%w: delete food: %v", ErrStorageFailure, err)
	}
	if !deleted {
		return ErrFoodNotFound
	}
	return nil
}

func foodFromInput(input FoodInput) models.Food {
	return models.Food{
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Fat:      input.Fat,
		Carbs:    input.Carbs,
	}
}
