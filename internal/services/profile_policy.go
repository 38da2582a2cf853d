package services

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fitapp/fitapp/internal/models"
)

const (
	minHeightCm          = 50
	maxHeightCm          = 300
	minWeightKg          = 10
	maxWeightKg          = 500
	minAgeYears          = 1
	maxAgeYears          = 130
	maxUsernameLength    = 50
	maxFoodNameLength    = 255
	maxLogGramsPerRecord = 100000
)

var (
	ErrInvalidHeight        = errors.New("invalid height")
	ErrInvalidWeight        = errors.New("invalid weight")
	ErrInvalidAge           = errors.New("invalid age")
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidUsername      = errors.New("invalid username")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
)

type ProfileInput struct {
	Height        float64
	Weight        float64
	Age           int
	Gender        string
	Username      string
	ActivityLevel *int
}

func NormalizeGender(raw string) (string, error) {
	gender := strings.ToLower(strings.TrimSpace(raw))
	if !models.IsValidGender(gender) {
		return "", ErrInvalidGender
	}
	return gender, nil
}

func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return "", ErrInvalidUsername
	}
	return username, nil
}

func ValidateHeight(height float64) error {
	if !isFinite(height) || height < minHeightCm || height > maxHeightCm {
		return ErrInvalidHeight
	}
	return nil
}

func ValidateWeight(weight float64) error {
	if !isFinite(weight) || weight < minWeightKg || weight > maxWeightKg {
		return ErrInvalidWeight
	}
	return nil
}

func ValidateAge(age int) error {
	if age < minAgeYears || age > maxAgeYears {
		return ErrInvalidAge
	}
	return nil
}

func ValidateActivityLevel(level *int) error {
	if level == nil {
		return nil
	}
	if *level < models.MinActivityLevel || *level > models.MaxActivityLevel {
		return ErrInvalidActivityLevel
	}
	return nil
}

// NormalizeProfileInput validates every field and returns the stored form.
func NormalizeProfileInput(input ProfileInput) (ProfileInput, error) {
	if err := ValidateHeight(input.Height); err != nil {
		return ProfileInput{}, err
	}
	if err := ValidateWeight(input.Weight); err != nil {
		return ProfileInput{}, err
	}
	if err := ValidateAge(input.Age); err != nil {
		return ProfileInput{}, err
	}
	gender, err := NormalizeGender(input.Gender)
	if err != nil {
		return ProfileInput{}, err
	}
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return ProfileInput{}, err
	}
	if err := ValidateActivityLevel(input.ActivityLevel); err != nil {
		return ProfileInput{}, err
	}

	input.Gender = gender
	input.Username = username
	return input, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
