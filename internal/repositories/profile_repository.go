package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID uint) (*models.Profile, error)
	FindByType(db *gorm.DB, userType models.UserType) ([]models.Profile, error)
	UpdateFields(db *gorm.DB, userID uint, fields map[string]interface{}) error
	CountByType(db *gorm.DB, userType models.UserType) (int64, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByType(db *gorm.DB, userType models.UserType) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Preload("User").
		Where("type = ?", userType).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) UpdateFields(db *gorm.DB, userID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) CountByType(db *gorm.DB, userType models.UserType) (int64, error) {
	var count int64
	err := db.Model(&models.Profile{}).Where("type = ?", userType).Count(&count).Error
	return count, err
}
