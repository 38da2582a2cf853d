package api

import (
	"github.com/fitapp/fitapp/internal/models"
)

const consumedAtLayout = "2006-01-02"

type userSummaryResponse struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type profileResponse struct {
	ProfileID uint                `json:"profile_id"`
	UserID    uint                `json:"user_id"`
	Height    float64             `json:"height"`
	Weight    float64             `json:"weight"`
	Age       int                 `json:"age"`
	Gender    string              `json:"gender"`
	Username  string              `json:"username"`
	Activity  *int                `json:"activity"`
	User      userSummaryResponse `json:"user"`
}

type logEntryResponse struct {
	LogID      uint         `json:"log_id"`
	UserID     uint         `json:"user_id"`
	FoodID     uint         `json:"food_id"`
	Grams      float64      `json:"grams"`
	ConsumedAt string       `json:"consumed_at"`
	Food       *models.Food `json:"food,omitempty"`
}

func newUserSummary(user models.User) userSummaryResponse {
	return userSummaryResponse{UserID: user.ID, Email: user.Email}
}

func newProfileResponse(user models.User, profile models.UserProfile) profileResponse {
	return profileResponse{
		ProfileID: profile.ID,
		UserID:    profile.UserID,
		Height:    profile.Height,
		Weight:    profile.Weight,
		Age:       profile.Age,
		Gender:    profile.Gender,
		Username:  profile.Username,
		Activity:  profile.ActivityLevel,
		User:      newUserSummary(user),
	}
}

func newLogEntryResponse(entry models.ConsumptionLogEntry) logEntryResponse {
	return logEntryResponse{
		LogID:      entry.ID,
		UserID:     entry.UserID,
		FoodID:     entry.FoodID,
		Grams:      entry.Grams,
		ConsumedAt: entry.ConsumedAt.UTC().Format(consumedAtLayout),
		Food:       entry.Food,
	}
}

func newLogEntryResponses(entries []models.ConsumptionLogEntry) []logEntryResponse {
	result := make([]logEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, newLogEntryResponse(entry))
	}
	return result
}
