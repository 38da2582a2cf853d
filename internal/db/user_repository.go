package db

import (
	"github.com/fitapp/fitapp/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ExistsByNormalizedEmailExcept(email string, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ? AND id <> ?", email, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) List(offset int, limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) FindProfileByUserID(userID uint) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := repo.database.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

// CreateWithProfile stores the user, its profile and its first recommendation
// atomically. Profile and macros receive the generated user id.
func (repo *UserRepository) CreateWithProfile(user *models.User, profile *models.UserProfile, macros *models.RecommendedMacros) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		macros.UserID = user.ID
		return upsertRecommendedMacros(tx, macros)
	})
}

// UpdateAccount applies credential changes, saves the merged profile and
// upserts the recomputed recommendation in one transaction.
func (repo *UserRepository) UpdateAccount(userID uint, credentialUpdates map[string]any, profile *models.UserProfile, macros *models.RecommendedMacros) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if len(credentialUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(credentialUpdates).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		macros.UserID = userID
		return upsertRecommendedMacros(tx, macros)
	})
}

// DeleteAccountAndRelatedData removes every row owned by the user. The
// explicit deletes keep the cascade intact even where the database does not
// enforce foreign keys.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ConsumptionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RecommendedMacros{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
