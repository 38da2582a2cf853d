package services

import (
	"errors"
	"testing"

	"github.com/fitapp/fitapp/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAccountUserRepo struct {
	users    map[uint]models.User
	profiles map[uint]models.UserProfile
	nextID   uint

	createErr error
	updateErr error

	updatedCredentials map[string]any
	updatedProfile     *models.UserProfile
	updatedMacros      *models.RecommendedMacros
	updateCalls        int
	createdMacros      *models.RecommendedMacros
}

func newStubAccountUserRepo() *stubAccountUserRepo {
	return &stubAccountUserRepo{
		users:    map[uint]models.User{},
		profiles: map[uint]models.UserProfile{},
	}
}

func (stub *stubAccountUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubAccountUserRepo) ExistsByNormalizedEmailExcept(email string, userID uint) (bool, error) {
	for id, user := range stub.users {
		if user.Email == email && id != userID {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubAccountUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAccountUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *stubAccountUserRepo) List(offset int, limit int) ([]models.User, error) {
	result := make([]models.User, 0)
	for id := uint(1); id <= stub.nextID; id++ {
		if user, ok := stub.users[id]; ok {
			result = append(result, user)
		}
	}
	if offset >= len(result) {
		return []models.User{}, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (stub *stubAccountUserRepo) FindProfileByUserID(userID uint) (models.UserProfile, error) {
	profile, ok := stub.profiles[userID]
	if !ok {
		return models.UserProfile{}, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (stub *stubAccountUserRepo) CreateWithProfile(user *models.User, profile *models.UserProfile, macros *models.RecommendedMacros) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.nextID++
	user.ID = stub.nextID
	profile.UserID = user.ID
	macros.UserID = user.ID
	stub.users[user.ID] = *user
	stub.profiles[user.ID] = *profile
	stub.createdMacros = macros
	return nil
}

func (stub *stubAccountUserRepo) UpdateAccount(userID uint, credentialUpdates map[string]any, profile *models.UserProfile, macros *models.RecommendedMacros) error {
	stub.updateCalls++
	if stub.updateErr != nil {
		return stub.updateErr
	}
	stub.updatedCredentials = credentialUpdates
	stub.updatedProfile = profile
	stub.updatedMacros = macros
	return nil
}

func (stub *stubAccountUserRepo) DeleteAccountAndRelatedData(userID uint) error {
	if _, ok := stub.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(stub.users, userID)
	delete(stub.profiles, userID)
	return nil
}

func (stub *stubAccountUserRepo) UpdatePassword(userID uint, passwordHash string) error {
	user, ok := stub.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	stub.users[userID] = user
	return nil
}

type stubRecommendationRepo struct {
	macros models.RecommendedMacros
	err    error
}

func (stub *stubRecommendationRepo) FindByUserID(uint) (models.RecommendedMacros, error) {
	if stub.err != nil {
		return models.RecommendedMacros{}, stub.err
	}
	return stub.macros, nil
}

func validRegistration(email string) RegistrationInput {
	return RegistrationInput{
		Email:    email,
		Password: "StrongPass1",
		Profile: ProfileInput{
			Height:        175,
			Weight:        70,
			Age:           30,
			Gender:        "Male",
			Username:      " alex ",
			ActivityLevel: intPtr(3),
		},
	}
}

func TestRegisterStoresHashedPasswordAndRecommendation(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	user, err := service.Register(validRegistration(" Alex@Example.com "))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated user id")
	}
	if user.Email != "alex@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "StrongPass1" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("StrongPass1")); err != nil {
		t.Fatalf("expected stored hash to verify: %v", err)
	}

	profile := repo.profiles[user.ID]
	if profile.Gender != models.GenderMale || profile.Username != "alex" {
		t.Fatalf("expected normalized profile, got %#v", profile)
	}
	if repo.createdMacros == nil || repo.createdMacros.Calories != 2556 {
		t.Fatalf("expected recommendation with 2556 calories, got %#v", repo.createdMacros)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	if _, err := service.Register(validRegistration("alex@example.com")); err != nil {
		t.Fatalf("first Register() unexpected error: %v", err)
	}
	_, err := service.Register(validRegistration("ALEX@example.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterMapsUniqueConstraintToDuplicateEmail(t *testing.T) {
	repo := newStubAccountUserRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	_, err := service.Register(validRegistration("alex@example.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterValidatesProfile(t *testing.T) {
	service := NewAccountService(newStubAccountUserRepo(), &stubRecommendationRepo{}, bcrypt.MinCost)

	tests := []struct {
		name   string
		mutate func(*RegistrationInput)
		want   error
	}{
		{name: "bad email", mutate: func(input *RegistrationInput) { input.Email = "nope" }, want: ErrAuthCredentialsInvalid},
		{name: "blank password", mutate: func(input *RegistrationInput) { input.Password = " " }, want: ErrAuthCredentialsInvalid},
		{name: "height", mutate: func(input *RegistrationInput) { input.Profile.Height = 20 }, want: ErrInvalidHeight},
		{name: "weight", mutate: func(input *RegistrationInput) { input.Profile.Weight = 0 }, want: ErrInvalidWeight},
		{name: "age", mutate: func(input *RegistrationInput) { input.Profile.Age = 0 }, want: ErrInvalidAge},
		{name: "gender", mutate: func(input *RegistrationInput) { input.Profile.Gender = "robot" }, want: ErrInvalidGender},
		{name: "username", mutate: func(input *RegistrationInput) { input.Profile.Username = "  " }, want: ErrInvalidUsername},
		{name: "activity", mutate: func(input *RegistrationInput) { input.Profile.ActivityLevel = intPtr(6) }, want: ErrInvalidActivityLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			input := validRegistration("alex@example.com")
			testCase.mutate(&input)

			_, err := service.Register(input)
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	registered, err := service.Register(validRegistration("alex@example.com"))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := service.Authenticate(" ALEX@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := service.Authenticate("alex@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("ghost@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateAccountWeightOnlyRecomputesFromStoredProfile(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	user, err := service.Register(validRegistration("alex@example.com"))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	weight := 80.0
	profile, macros, err := service.UpdateAccount(user.ID, AccountUpdate{Weight: &weight})
	if err != nil {
		t.Fatalf("UpdateAccount() unexpected error: %v", err)
	}
	if profile.Weight != 80 || profile.Height != 175 || profile.Age != 30 {
		t.Fatalf("expected merged profile, got %#v", profile)
	}

	want := CalculateRecommendedMacros(MetabolicInput{WeightKg: 80, HeightCm: 175, Age: 30, Gender: models.GenderMale, ActivityLevel: intPtr(3)})
	if macros.Calories != want.Calories || macros.Protein != want.Protein || macros.Fat != want.Fat || macros.Carbs != want.Carbs {
		t.Fatalf("expected %#v, got %#v", want, macros)
	}
	if repo.updatedMacros == nil || repo.updatedMacros.Calories != want.Calories {
		t.Fatalf("expected recomputed macros to be persisted, got %#v", repo.updatedMacros)
	}
	if len(repo.updatedCredentials) != 0 {
		t.Fatalf("expected no credential changes, got %#v", repo.updatedCredentials)
	}
}

func TestUpdateAccountCredentials(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	first, err := service.Register(validRegistration("alex@example.com"))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if _, err := service.Register(validRegistration("sam@example.com")); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	taken := "SAM@example.com"
	if _, err := service.UpdateCredentials(first.ID, &taken, nil); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	same := "alex@example.com"
	password := "NewPass2"
	if _, err := service.UpdateCredentials(first.ID, &same, &password); err != nil {
		t.Fatalf("UpdateCredentials() unexpected error: %v", err)
	}
	if repo.updatedCredentials["email"] != "alex@example.com" {
		t.Fatalf("expected email update, got %#v", repo.updatedCredentials)
	}
	hash, _ := repo.updatedCredentials["password_hash"].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("NewPass2")); err != nil {
		t.Fatalf("expected new password hash to verify: %v", err)
	}
	if repo.updatedMacros == nil {
		t.Fatal("expected credentials-only update to recompute recommendation")
	}
}

func TestUpdateAccountMissingRecords(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	weight := 80.0
	if _, _, err := service.UpdateAccount(42, AccountUpdate{Weight: &weight}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	repo.nextID = 1
	repo.users[1] = models.User{ID: 1, Email: "alex@example.com"}
	if _, _, err := service.UpdateAccount(1, AccountUpdate{Weight: &weight}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no writes for missing profile, got %d", repo.updateCalls)
	}
}

func TestUpdateAccountRejectsInvalidMergedValues(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	user, err := service.Register(validRegistration("alex@example.com"))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	age := 500
	if _, _, err := service.UpdateAccount(user.ID, AccountUpdate{Age: &age}); !errors.Is(err, ErrInvalidAge) {
		t.Fatalf("expected ErrInvalidAge, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no writes for invalid update, got %d", repo.updateCalls)
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	user, err := service.Register(validRegistration("alex@example.com"))
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if err := service.DeleteAccount(user.ID); err != nil {
		t.Fatalf("DeleteAccount() unexpected error: %v", err)
	}
	if err := service.DeleteAccount(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestLoadRecommendationMapsErrors(t *testing.T) {
	service := NewAccountService(newStubAccountUserRepo(), &stubRecommendationRepo{err: gorm.ErrRecordNotFound}, bcrypt.MinCost)
	if _, err := service.LoadRecommendation(1); !errors.Is(err, ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound, got %v", err)
	}

	service = NewAccountService(newStubAccountUserRepo(), &stubRecommendationRepo{err: errors.New("disk gone")}, bcrypt.MinCost)
	if _, err := service.LoadRecommendation(1); !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
}

func TestListUsersPaging(t *testing.T) {
	repo := newStubAccountUserRepo()
	service := NewAccountService(repo, &stubRecommendationRepo{}, bcrypt.MinCost)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := service.Register(validRegistration(email)); err != nil {
			t.Fatalf("Register(%s) unexpected error: %v", email, err)
		}
	}

	users, err := service.ListUsers(Page{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("ListUsers() unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "b@example.com" {
		t.Fatalf("expected second user only, got %#v", users)
	}
}

func TestResetPassword(t *testing.T) {
	users := newStubAccountUserRepo()
	service := NewAccountService(users, &stubRecommendationRepo{}, bcrypt.MinCost)
	if _, err := service.Register(validRegistration("alex@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.ResetPassword(" ALEX@example.com ", "Replacement9"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := service.Authenticate("alex@example.com", "Replacement9"); err != nil {
		t.Fatalf("expected new password to authenticate: %v", err)
	}
	if _, err := service.Authenticate("alex@example.com", validRegistration("").Password); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to fail, got %v", err)
	}

	if _, err := service.ResetPassword("missing@example.com", "Replacement9"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.ResetPassword("not-an-email", "Replacement9"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
	if _, err := service.ResetPassword("alex@example.com", "   "); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected blank password to be rejected, got %v", err)
	}
}
