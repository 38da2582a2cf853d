package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitapp/fitapp/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrStorageFailure         = errors.New("storage failure")
)

type AccountUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	ExistsByNormalizedEmailExcept(email string, userID uint) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	List(offset int, limit int) ([]models.User, error)
	FindProfileByUserID(userID uint) (models.UserProfile, error)
	CreateWithProfile(user *models.User, profile *models.UserProfile, macros *models.RecommendedMacros) error
	UpdateAccount(userID uint, credentialUpdates map[string]any, profile *models.UserProfile, macros *models.RecommendedMacros) error
	DeleteAccountAndRelatedData(userID uint) error
	UpdatePassword(userID uint, passwordHash string) error
}

type RecommendationRepository interface {
	FindByUserID(userID uint) (models.RecommendedMacros, error)
}

type RegistrationInput struct {
	Email    string
	Password string
	Profile  ProfileInput
}

// AccountUpdate carries optional changes; nil fields keep the stored value.
type AccountUpdate struct {
	Email         *string
	Password      *string
	Height        *float64
	Weight        *float64
	Age           *int
	Gender        *string
	Username      *string
	ActivityLevel *int
}

type AccountService struct {
	users           AccountUserRepository
	recommendations RecommendationRepository
	passwordCost    int
	now             func() time.Time
}

func NewAccountService(users AccountUserRepository, recommendations RecommendationRepository, passwordCost int) *AccountService {
	if passwordCost < bcrypt.MinCost || passwordCost > bcrypt.MaxCost {
		passwordCost = bcrypt.DefaultCost
	}
	return &AccountService{
		users:           users,
		recommendations: recommendations,
		passwordCost:    passwordCost,
		now:             time.Now,
	}
}

func (service *AccountService) RegistrationEmailExists(email string) (bool, error) {
	return service.users.ExistsByNormalizedEmail(email)
}

// Register creates the credentials, the profile and the first recommendation.
func (service *AccountService) Register(input RegistrationInput) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	profileInput, err := NormalizeProfileInput(input.Profile)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: check email: %v", ErrStorageFailure, err)
	}
	if exists {
		return models.User{}, ErrDuplicateEmail
	}

	passwordHash, err := service.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    service.now().UTC(),
	}
	profile := models.UserProfile{
		Height:        profileInput.Height,
		Weight:        profileInput.Weight,
		Age:           profileInput.Age,
		Gender:        profileInput.Gender,
		Username:      profileInput.Username,
		ActivityLevel: profileInput.ActivityLevel,
	}
	macros := CalculateRecommendedMacros(MetabolicInputFromProfile(profile))

	if err := service.users.CreateWithProfile(&user, &profile, &macros); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("%w: create account: %v", ErrStorageFailure, err)
	}
	return user, nil
}

// Authenticate does not tell an unknown email apart from a wrong password.
func (service *AccountService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorageFailure, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces the password of the account registered under
// emailRaw. Used by the operator CLI; the profile is left untouched.
func (service *AccountService) ResetPassword(emailRaw string, passwordRaw string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	password, err := NormalizePasswordInput(passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorageFailure, err)
	}

	passwordHash, err := service.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdatePassword(user.ID, passwordHash); err != nil {
		return models.User{}, fmt.Errorf("%w: update password: %v", ErrStorageFailure, err)
	}
	user.PasswordHash = passwordHash
	return user, nil
}

func (service *AccountService) UpdateCredentials(userID uint, email *string, password *string) (models.RecommendedMacros, error) {
	_, macros, err := service.UpdateAccount(userID, AccountUpdate{Email: email, Password: password})
	return macros, err
}

// UpdateAccount merges the supplied fields over the stored profile and always
// recomputes the recommendation from the merged values.
func (service *AccountService) UpdateAccount(userID uint, update AccountUpdate) (models.UserProfile, models.RecommendedMacros, error) {
	if _, err := service.FindUser(userID); err != nil {
		return models.UserProfile{}, models.RecommendedMacros{}, err
	}

	credentialUpdates, err := service.credentialUpdates(userID, update)
	if err != nil {
		return models.UserProfile{}, models.RecommendedMacros{}, err
	}

	profile, err := service.users.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserProfile{}, models.RecommendedMacros{}, ErrProfileNotFound
		}
		return models.UserProfile{}, models.RecommendedMacros{}, fmt.Errorf("%w: load profile: %v", ErrStorageFailure, err)
	}

	merged, err := mergeProfile(profile, update)
	if err != nil {
		return models.UserProfile{}, models.RecommendedMacros{}, err
	}

	macros := CalculateRecommendedMacros(MetabolicInputFromProfile(merged))
	if err := service.users.UpdateAccount(userID, credentialUpdates, &merged, &macros); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.UserProfile{}, models.RecommendedMacros{}, ErrDuplicateEmail
		}
		return models.UserProfile{}, models.RecommendedMacros{}, fmt.Errorf("%w: update account: %v", ErrStorageFailure, err)
	}
	return merged, macros, nil
}

func (service *AccountService) DeleteAccount(userID uint) error {
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: delete account: %v", ErrStorageFailure, err)
	}
	return nil
}

func (service *AccountService) ListUsers(page Page) ([]models.User, error) {
	users, err := service.users.List(page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrStorageFailure, err)
	}
	return users, nil
}

func (service *AccountService) FindUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorageFailure, err)
	}
	return user, nil
}

func (service *AccountService) LoadProfile(userID uint) (models.User, models.UserProfile, error) {
	user, err := service.FindUser(userID)
	if err != nil {
		return models.User{}, models.UserProfile{}, err
	}

	profile, err := service.users.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.UserProfile{}, ErrProfileNotFound
		}
		return models.User{}, models.UserProfile{}, fmt.Errorf("%w: load profile: %v", ErrStorageFailure, err)
	}
	return user, profile, nil
}

func (service *AccountService) LoadRecommendation(userID uint) (models.RecommendedMacros, error) {
	macros, err := service.recommendations.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RecommendedMacros{}, ErrRecommendationNotFound
		}
		return models.RecommendedMacros{}, fmt.Errorf("%w: load recommendation: %v", ErrStorageFailure, err)
	}
	return macros, nil
}

func (service *AccountService) credentialUpdates(userID uint, update AccountUpdate) (map[string]any, error) {
	updates := map[string]any{}

	if update.Email != nil {
		email := NormalizeAuthEmail(*update.Email)
		if email == "" {
			return nil, ErrAuthCredentialsInvalid
		}
		taken, err := service.users.ExistsByNormalizedEmailExcept(email, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: check email: %v", ErrStorageFailure, err)
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
		updates["email"] = email
	}

	if update.Password != nil {
		password, err := NormalizePasswordInput(*update.Password)
		if err != nil {
			return nil, err
		}
		passwordHash, err := service.hashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = passwordHash
	}

	return updates, nil
}

func (service *AccountService) hashPassword(password string) (string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(passwordHash), nil
}

func mergeProfile(profile models.UserProfile, update AccountUpdate) (models.UserProfile, error) {
	input := ProfileInput{
		Height:        profile.Height,
		Weight:        profile.Weight,
		Age:           profile.Age,
		Gender:        profile.Gender,
		Username:      profile.Username,
		ActivityLevel: profile.ActivityLevel,
	}
	if update.Height != nil {
		input.Height = *update.Height
	}
	if update.Weight != nil {
		input.Weight = *update.Weight
	}
	if update.Age != nil {
		input.Age = *update.Age
	}
	if update.Gender != nil {
		input.Gender = *update.Gender
	}
	if update.Username != nil {
		input.Username = *update.Username
	}
	if update.ActivityLevel != nil {
		level := *update.ActivityLevel
		input.ActivityLevel = &level
	}

	normalized, err := NormalizeProfileInput(input)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile.Height = normalized.Height
	profile.Weight = normalized.Weight
	profile.Age = normalized.Age
	profile.Gender = normalized.Gender
	profile.Username = normalized.Username
	profile.ActivityLevel = normalized.ActivityLevel
	return profile, nil
}
