package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
)

var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// OfferFilter captures the query parameters of the offer list endpoint.
// MinPrice and MaxDeliveryTime apply to the per-offer aggregates, not to
// individual packages.
type OfferFilter struct {
	CreatorID       *uint
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string // updated_at | min_price, '-' prefix for descending
	Page            int
	PageSize        int
}

// OfferListRow is one offer plus its aggregated package values. The
// aggregates are nullable: an offer briefly without details yields NULLs.
type OfferListRow struct {
	ID              uint
	UserID          uint
	Title           string
	Description     string
	Image           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	MinPrice        *float64
	MinDeliveryTime *int
}

type OfferRepository interface {
	CreateOffer(db *gorm.DB, offer *models.Offer) error
	FindByID(db *gorm.DB, id uint) (*models.Offer, error)
	ListOffers(db *gorm.DB, f OfferFilter) ([]OfferListRow, int64, error)
	UpdateOfferFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	DeleteOffer(db *gorm.DB, id uint) error
	GetAggregates(db *gorm.DB, offerID uint) (minPrice *float64, minDelivery *int, err error)
	CountAll(db *gorm.DB) (int64, error)

	FindDetailByID(db *gorm.DB, id uint) (*models.OfferDetail, error)
	FindDetailWithOwner(db *gorm.DB, id uint) (*models.OfferDetail, error)
	FindDetailByOfferAndType(db *gorm.DB, offerID uint, offerType string) (*models.OfferDetail, error)
	FindDetailsByOfferIDs(db *gorm.DB, offerIDs []uint) ([]models.OfferDetail, error)
	UpdateDetailFields(db *gorm.DB, detailID uint, fields map[string]interface{}) error
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

// CreateOffer inserts the offer together with its nested details. Run inside
// a transaction so the offer and its three packages commit as a unit.
func (r *OfferRepositoryImpl) CreateOffer(db *gorm.DB, offer *models.Offer) error {
	return db.Create(offer).Error
}

func (r *OfferRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := db.Preload("User").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_details.price ASC")
		}).
		First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// buildListQuery assembles the filtered, grouped aggregate query. The MIN
// aggregates are computed per request over the current details, never cached.
func (r *OfferRepositoryImpl) buildListQuery(db *gorm.DB, f OfferFilter) *gorm.DB {
	q := db.Model(&models.Offer{}).
		Select("offers.id, offers.user_id, offers.title, offers.description, offers.image, " +
			"offers.created_at, offers.updated_at, " +
			"MIN(offer_details.price) AS min_price, " +
			"MIN(offer_details.delivery_time_in_days) AS min_delivery_time").
		Joins("LEFT JOIN offer_details ON offer_details.offer_id = offers.id").
		Group("offers.id")

	if f.CreatorID != nil {
		q = q.Where("offers.user_id = ?", *f.CreatorID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("offers.title LIKE ? OR offers.description LIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Having("MIN(offer_details.price) >= ?", *f.MinPrice)
	}
	if f.MaxDeliveryTime != nil {
		q = q.Having("MIN(offer_details.delivery_time_in_days) <= ?", *f.MaxDeliveryTime)
	}

	return q
}

func orderClause(ordering string) string {
	switch ordering {
	case "updated_at":
		return "offers.updated_at ASC"
	case "-updated_at", "":
		return "offers.updated_at DESC"
	case "min_price":
		return "min_price ASC"
	case "-min_price":
		return "min_price DESC"
	default:
		return "offers.updated_at DESC"
	}
}

func (r *OfferRepositoryImpl) ListOffers(db *gorm.DB, f OfferFilter) ([]OfferListRow, int64, error) {
	var total int64
	countQuery := r.buildListQuery(db, f)
	if err := db.Table("(?) AS filtered_offers", countQuery).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize

	var rows []OfferListRow
	err := r.buildListQuery(db, f).
		Order(orderClause(f.Ordering)).
		Limit(f.PageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *OfferRepositoryImpl) UpdateOfferFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.Offer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// DeleteOffer removes the offer and its packages. Details are deleted
// explicitly so the cascade does not depend on the driver's FK enforcement.
func (r *OfferRepositoryImpl) DeleteOffer(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferDetail{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Offer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOfferNotFound
		}
		return nil
	})
}

func (r *OfferRepositoryImpl) GetAggregates(db *gorm.DB, offerID uint) (*float64, *int, error) {
	var row struct {
		MinPrice        *float64
		MinDeliveryTime *int
	}
	err := db.Model(&models.OfferDetail{}).
		Select("MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery_time").
		Where("offer_id = ?", offerID).
		Scan(&row).Error
	if err != nil {
		return nil, nil, err
	}
	return row.MinPrice, row.MinDeliveryTime, nil
}

func (r *OfferRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Offer{}).Count(&count).Error
	return count, err
}

func (r *OfferRepositoryImpl) FindDetailByID(db *gorm.DB, id uint) (*models.OfferDetail, error) {
	var detail models.OfferDetail
	err := db.First(&detail, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferDetailNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// FindDetailWithOwner loads a detail together with the owning offer and its
// user, which order creation needs to resolve the business party.
func (r *OfferRepositoryImpl) FindDetailWithOwner(db *gorm.DB, id uint) (*models.OfferDetail, error) {
	var detail models.OfferDetail
	err := db.Preload("Offer").Preload("Offer.User").First(&detail, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferDetailNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (r *OfferRepositoryImpl) FindDetailByOfferAndType(db *gorm.DB, offerID uint, offerType string) (*models.OfferDetail, error) {
	var detail models.OfferDetail
	err := db.Where("offer_id = ? AND offer_type = ?", offerID, offerType).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferDetailNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (r *OfferRepositoryImpl) FindDetailsByOfferIDs(db *gorm.DB, offerIDs []uint) ([]models.OfferDetail, error) {
	if len(offerIDs) == 0 {
		return nil, nil
	}
	var details []models.OfferDetail
	err := db.Where("offer_id IN ?", offerIDs).
		Order("offer_id, price ASC").
		Find(&details).Error
	return details, err
}

func (r *OfferRepositoryImpl) UpdateDetailFields(db *gorm.DB, detailID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.OfferDetail{}).Where("id = ?", detailID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferDetailNotFound
	}
	return nil
}
