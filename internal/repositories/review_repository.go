package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this business")
)

// ReviewFilter captures the review list query parameters.
type ReviewFilter struct {
	BusinessUserID *uint
	ReviewerID     *uint
	Ordering       string // updated_at | rating, '-' prefix for descending
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id uint) (*models.Review, error)
	List(db *gorm.DB, f ReviewFilter) ([]models.Review, error)
	ExistsForPair(db *gorm.DB, businessUserID, reviewerID uint) (bool, error)
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
	Count(db *gorm.DB) (int64, error)
	AverageRating(db *gorm.DB) (*float64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// Create inserts the review. The composite unique index on
// (business_user_id, reviewer_id) is the authoritative duplicate guard; a
// constraint violation is translated to ErrReviewAlreadyExists so racing
// duplicates fail cleanly even when the pre-check passed.
func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	err := db.Create(review).Error
	if err != nil && isUniqueViolation(err) {
		return ErrReviewAlreadyExists
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func reviewOrderClause(ordering string) string {
	switch ordering {
	case "updated_at":
		return "updated_at ASC"
	case "-updated_at", "":
		return "updated_at DESC"
	case "rating":
		return "rating ASC"
	case "-rating":
		return "rating DESC"
	default:
		return "updated_at DESC"
	}
}

func (r *ReviewRepositoryImpl) List(db *gorm.DB, f ReviewFilter) ([]models.Review, error) {
	q := db.Model(&models.Review{})
	if f.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *f.BusinessUserID)
	}
	if f.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *f.ReviewerID)
	}

	var reviews []models.Review
	err := q.Order(reviewOrderClause(f.Ordering)).Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) ExistsForPair(db *gorm.DB, businessUserID, reviewerID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.Review{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Count(&count).Error
	return count, err
}

// AverageRating returns nil on an empty review table instead of zero, so the
// stats endpoint can render null.
func (r *ReviewRepositoryImpl) AverageRating(db *gorm.DB) (*float64, error) {
	var avg *float64
	err := db.Model(&models.Review{}).Select("AVG(rating)").Scan(&avg).Error
	return avg, err
}
