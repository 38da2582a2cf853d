package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidGrams = errors.New("invalid grams")

type ConsumptionRepository interface {
	Create(entry *models.ConsumptionLogEntry) error
	CreateWithFood(food *models.Food, entry *models.ConsumptionLogEntry) error
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.ConsumptionLogEntry, error)
}

type ConsumptionUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type ConsumptionInput struct {
	UserID     uint
	Grams      float64
	ConsumedAt *time.Time
}

// LoggedFood is the outcome of the log-food flow. FoodCreated reports whether
// the food was new to the catalog.
type LoggedFood struct {
	Entry       models.ConsumptionLogEntry
	Food        models.Food
	FoodCreated bool
}

type ConsumptionService struct {
	entries  ConsumptionRepository
	users    ConsumptionUserRepository
	foods    *FoodService
	location *time.Location
	now      func() time.Time
}

func NewConsumptionService(entries ConsumptionRepository, users ConsumptionUserRepository, foods *FoodService, location *time.Location) *ConsumptionService {
	if location == nil {
		location = time.UTC
	}
	return &ConsumptionService{
		entries:  entries,
		users:    users,
		foods:    foods,
		location: location,
		now:      time.Now,
	}
}

// Append records a consumption of an existing food.
func (service *ConsumptionService) Append(input ConsumptionInput, foodID uint) (models.ConsumptionLogEntry, error) {
	consumedAt, err := service.prepare(input)
	if err != nil {
		return models.ConsumptionLogEntry{}, err
	}

	food, err := service.foods.Find(foodID)
	if err != nil {
		return models.ConsumptionLogEntry{}, err
	}

	entry := models.ConsumptionLogEntry{
		UserID:     input.UserID,
		FoodID:     food.ID,
		Grams:      input.Grams,
		ConsumedAt: consumedAt,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.ConsumptionLogEntry{}, mapConsumptionWriteError(err)
	}
	entry.Food = &food
	return entry, nil
}

// LogFood reuses an identical catalog food when one exists and creates it
// otherwise, then records the consumption. Both writes share a transaction.
func (service *ConsumptionService) LogFood(input ConsumptionInput, foodInput FoodInput) (LoggedFood, error) {
	consumedAt, err := service.prepare(input)
	if err != nil {
		return LoggedFood{}, err
	}

	normalized, err := NormalizeFoodInput(foodInput)
	if err != nil {
		return LoggedFood{}, err
	}

	food, found, err := service.foods.FindExactMatch(normalized)
	if err != nil {
		return LoggedFood{}, err
	}
	if !found {
		food = foodFromInput(normalized)
	}

	entry := models.ConsumptionLogEntry{
		UserID:     input.UserID,
		Grams:      input.Grams,
		ConsumedAt: consumedAt,
	}
	if err := service.entries.CreateWithFood(&food, &entry); err != nil {
		return LoggedFood{}, mapConsumptionWriteError(err)
	}
	entry.Food = &food

	return LoggedFood{Entry: entry, Food: food, FoodCreated: !found}, nil
}

// List returns the user's entries between start and end, both inclusive
// calendar dates. Either bound may be nil.
func (service *ConsumptionService) List(userID uint, start *time.Time, end *time.Time) ([]models.ConsumptionLogEntry, error) {
	if err := service.ensureUser(userID); err != nil {
		return nil, err
	}

	var fromStart *time.Time
	if start != nil {
		value := CalendarDate(*start)
		fromStart = &value
	}

	var toEnd *time.Time
	if end != nil {
		_, value := DayRange(*end)
		toEnd = &value
	}

	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return []models.ConsumptionLogEntry{}, nil
	}

	entries, err := service.entries.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: list consumption: %v", ErrStorageFailure, err)
	}
	return entries, nil
}

func (service *ConsumptionService) prepare(input ConsumptionInput) (time.Time, error) {
	if !isFinite(input.Grams) || input.Grams <= 0 || input.Grams > maxLogGramsPerRecord {
		return time.Time{}, ErrInvalidGrams
	}
	if err := service.ensureUser(input.UserID); err != nil {
		return time.Time{}, err
	}

	if input.ConsumedAt == nil {
		return TodayIn(service.now(), service.location), nil
	}
	return CalendarDate(*input.ConsumedAt), nil
}

func (service *ConsumptionService) ensureUser(userID uint) error {
	if _, err := service.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: load user: %v", ErrStorageFailure, err)
	}
	return nil
}

func mapConsumptionWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrFoodNotFound
	}
	return fmt.Errorf("%w: save consumption: %v", ErrStorageFailure, err)
}
