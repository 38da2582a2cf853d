package services

import (
	"math"

	"github.com/fitapp/fitapp/internal/models"
)

const (
	defaultActivityMultiplier = 1.20

	maleBMROffset   = 5.0
	femaleBMROffset = -161.0

	proteinCalorieShare = 0.20
	fatCalorieShare     = 0.25
	carbsCalorieShare   = 0.55

	// Calories per gram as used for the macro split. Protein and carbs keep
	// the historical divisor of 6.
	proteinCaloriesPerGram = 6.0
	fatCaloriesPerGram     = 9.0
	carbsCaloriesPerGram   = 6.0
)

var activityMultipliers = map[int]float64{
	1: 1.20,
	2: 1.375,
	3: 1.55,
	4: 1.725,
	5: 1.90,
}

type MetabolicInput struct {
	WeightKg      float64
	HeightCm      float64
	Age           int
	Gender        string
	ActivityLevel *int
}

func MetabolicInputFromProfile(profile models.UserProfile) MetabolicInput {
	return MetabolicInput{
		WeightKg:      profile.Weight,
		HeightCm:      profile.Height,
		Age:           profile.Age,
		Gender:        profile.Gender,
		ActivityLevel: profile.ActivityLevel,
	}
}

// BasalMetabolicRate is the Mifflin-St Jeor estimate. Every gender other than
// male uses the female offset.
func BasalMetabolicRate(input MetabolicInput) float64 {
	offset := femaleBMROffset
	if input.Gender == models.GenderMale {
		offset = maleBMROffset
	}
	return 10*input.WeightKg + 6.25*input.HeightCm - 5*float64(input.Age) + offset
}

func ActivityMultiplier(level *int) float64 {
	if level == nil {
		return defaultActivityMultiplier
	}
	if multiplier, ok := activityMultipliers[*level]; ok {
		return multiplier
	}
	return defaultActivityMultiplier
}

// CalculateRecommendedMacros derives daily targets from the adjusted
// expenditure. Values are rounded half to even. The formula goes negative at
// the edge of the accepted profile ranges; targets never do.
func CalculateRecommendedMacros(input MetabolicInput) models.RecommendedMacros {
	adjusted := math.Max(0, BasalMetabolicRate(input)) * ActivityMultiplier(input.ActivityLevel)

	return models.RecommendedMacros{
		Calories: math.RoundToEven(adjusted),
		Protein:  math.RoundToEven(adjusted * proteinCalorieShare / proteinCaloriesPerGram),
		Fat:      math.RoundToEven(adjusted * fatCalorieShare / fatCaloriesPerGram),
		Carbs:    math.RoundToEven(adjusted * carbsCalorieShare / carbsCaloriesPerGram),
	}
}
