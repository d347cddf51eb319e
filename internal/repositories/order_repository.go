package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(db *gorm.DB, order *models.Order) error
	FindByID(db *gorm.DB, id uint) (*models.Order, error)
	// FindVisibleByID restricts the lookup to orders the user participates
	// in; anything else reads as not found.
	FindVisibleByID(db *gorm.DB, id, userID uint) (*models.Order, error)
	// FindVisible returns the orders the user participates in, newest first.
	FindVisible(db *gorm.DB, userID uint) ([]models.Order, error)
	UpdateStatus(db *gorm.DB, id uint, status string) error
	Delete(db *gorm.DB, id uint) error
	CountByBusinessAndStatus(db *gorm.DB, businessUserID uint, status string) (int64, error)
}

type OrderRepositoryImpl struct{}

func NewOrderRepository() OrderRepository {
	return &OrderRepositoryImpl{}
}

func (r *OrderRepositoryImpl) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindVisibleByID(db *gorm.DB, id, userID uint) (*models.Order, error) {
	var order models.Order
	err := db.Where("id = ? AND (customer_user_id = ? OR business_user_id = ?)", id, userID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindVisible(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string) error {
	result := db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryImpl) CountByBusinessAndStatus(db *gorm.DB, businessUserID uint, status string) (int64, error) {
	var count int64
	err := db.Model(&models.Order{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status).
		Count(&count).Error
	return count, err
}
