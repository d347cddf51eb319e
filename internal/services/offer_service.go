package services

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

// detailURLFormat is the canonical location of a single package resource,
// used for the compact detail links on list and retrieve.
const detailURLFormat = "/api/offerdetails/%d/"

type OfferService struct {
	db          *gorm.DB
	offerRepo   repositories.OfferRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewOfferService(db *gorm.DB, offerRepo repositories.OfferRepository, userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) *OfferService {
	return &OfferService{db: db, offerRepo: offerRepo, userRepo: userRepo, profileRepo: profileRepo}
}

// Create publishes a new offer for a business user. The payload must carry
// exactly one package per tier; the offer and its packages commit atomically.
func (s *OfferService) Create(userID uint, req dto.CreateOfferRequest) (*dto.OfferWriteResponse, error) {
	if err := s.requireBusiness(userID, "Only business users can create offers"); err != nil {
		return nil, err
	}

	if err := validateDetailSet(req.Details); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Image != nil {
		offer.Image = *req.Image
	}
	for _, d := range req.Details {
		offer.Details = append(offer.Details, models.OfferDetail{
			Title:              d.Title,
			Price:              d.Price,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Revisions:          d.Revisions,
			Features:           datatypes.NewJSONSlice(d.Features),
			OfferType:          d.OfferType,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.offerRepo.CreateOffer(tx, offer)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return offerToWriteResponse(offer), nil
}

// validateDetailSet enforces one package per tier. The validator already
// checked len == 3, so a full tier set implies no duplicates.
func validateDetailSet(details []dto.OfferDetailRequest) error {
	seen := map[string]bool{}
	for _, d := range details {
		if seen[d.OfferType] {
			return apperrors.ValidationError(map[string]string{
				"details": fmt.Sprintf("duplicate offer_type %q: exactly one basic, one standard and one premium detail is required", d.OfferType),
			})
		}
		seen[d.OfferType] = true
	}
	return nil
}

// List returns one page of offers with their aggregated package values and
// the total match count.
func (s *OfferService) List(f repositories.OfferFilter) ([]dto.OfferListItem, int64, error) {
	rows, total, err := s.offerRepo.ListOffers(s.db, f)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	offerIDs := make([]uint, 0, len(rows))
	userIDSet := map[uint]bool{}
	userIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		offerIDs = append(offerIDs, row.ID)
		if !userIDSet[row.UserID] {
			userIDSet[row.UserID] = true
			userIDs = append(userIDs, row.UserID)
		}
	}

	details, err := s.offerRepo.FindDetailsByOfferIDs(s.db, offerIDs)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	linksByOffer := map[uint][]dto.DetailLink{}
	for _, d := range details {
		linksByOffer[d.OfferID] = append(linksByOffer[d.OfferID], dto.DetailLink{
			ID:  d.ID,
			URL: fmt.Sprintf(detailURLFormat, d.ID),
		})
	}

	users, err := s.userRepo.FindByIDs(s.db, userIDs)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	usersByID := map[uint]*models.User{}
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	items := make([]dto.OfferListItem, 0, len(rows))
	for _, row := range rows {
		item := dto.OfferListItem{
			ID:              row.ID,
			User:            row.UserID,
			Title:           row.Title,
			Image:           nullableString(row.Image),
			Description:     row.Description,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
			Details:         linksByOffer[row.ID],
			MinPrice:        row.MinPrice,
			MinDeliveryTime: row.MinDeliveryTime,
		}
		if item.Details == nil {
			item.Details = []dto.DetailLink{}
		}
		if u, ok := usersByID[row.UserID]; ok {
			item.UserDetails = dto.UserDetails{
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Username:  u.Username,
			}
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (s *OfferService) Get(offerID uint) (*dto.OfferRetrieveResponse, error) {
	offer, err := s.findOffer(offerID)
	if err != nil {
		return nil, err
	}

	minPrice, minDelivery, err := s.offerRepo.GetAggregates(s.db, offerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.OfferRetrieveResponse{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           nullableString(offer.Image),
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         []dto.DetailLink{},
		MinPrice:        minPrice,
		MinDeliveryTime: minDelivery,
	}
	for _, d := range offer.Details {
		resp.Details = append(resp.Details, dto.DetailLink{
			ID:  d.ID,
			URL: fmt.Sprintf(detailURLFormat, d.ID),
		})
	}
	return resp, nil
}

// Update patches offer fields and, when details are supplied, the existing
// packages matched by offer_type. Packages are never added or removed here.
func (s *OfferService) Update(userID, offerID uint, req dto.UpdateOfferRequest) (*dto.OfferWriteResponse, error) {
	offer, err := s.findOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.UserID != userID {
		return nil, apperrors.NewForbiddenError("You can only edit your own offers")
	}

	offerFields := map[string]interface{}{}
	if req.Title != nil {
		offerFields["title"] = *req.Title
	}
	if req.Image != nil {
		offerFields["image"] = *req.Image
	}
	if req.Description != nil {
		offerFields["description"] = *req.Description
	}

	type detailUpdate struct {
		id     uint
		fields map[string]interface{}
	}
	var detailUpdates []detailUpdate

	for _, patch := range req.Details {
		if patch.OfferType == "" {
			return nil, apperrors.NewBadRequestError("Each detail to update must include an offer_type")
		}
		if !models.ValidOfferType(patch.OfferType) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown offer_type %q", patch.OfferType))
		}
		detail, err := s.offerRepo.FindDetailByOfferAndType(s.db, offerID, patch.OfferType)
		if err != nil {
			if errors.Is(err, repositories.ErrOfferDetailNotFound) {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("No detail with offer_type %q exists on this offer", patch.OfferType))
			}
			return nil, apperrors.InternalError(err)
		}

		fields := map[string]interface{}{}
		if patch.Title != nil {
			fields["title"] = *patch.Title
		}
		if patch.Revisions != nil {
			fields["revisions"] = *patch.Revisions
		}
		if patch.DeliveryTimeInDays != nil {
			fields["delivery_time_in_days"] = *patch.DeliveryTimeInDays
		}
		if patch.Price != nil {
			fields["price"] = *patch.Price
		}
		if patch.Features != nil {
			fields["features"] = datatypes.NewJSONSlice(*patch.Features)
		}
		detailUpdates = append(detailUpdates, detailUpdate{id: detail.ID, fields: fields})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(offerFields) > 0 {
			if err := s.offerRepo.UpdateOfferFields(tx, offerID, offerFields); err != nil {
				return err
			}
		}
		for _, du := range detailUpdates {
			if err := s.offerRepo.UpdateDetailFields(tx, du.id, du.fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	offer, err = s.findOffer(offerID)
	if err != nil {
		return nil, err
	}
	return offerToWriteResponse(offer), nil
}

func (s *OfferService) Delete(userID, offerID uint) error {
	offer, err := s.findOffer(offerID)
	if err != nil {
		return err
	}
	if offer.UserID != userID {
		return apperrors.NewForbiddenError("You can only delete your own offers")
	}

	if err := s.offerRepo.DeleteOffer(s.db, offerID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *OfferService) GetDetail(detailID uint) (*dto.OfferDetailResponse, error) {
	detail, err := s.offerRepo.FindDetailByID(s.db, detailID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferDetailNotFound) {
			return nil, apperrors.NewNotFoundError("offer", "Offer detail not found")
		}
		return nil, apperrors.InternalError(err)
	}
	resp := detailToResponse(detail)
	return &resp, nil
}

func (s *OfferService) findOffer(offerID uint) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByID(s.db, offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) {
			return nil, apperrors.NewNotFoundError("offer", "Offer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return offer, nil
}

func (s *OfferService) requireBusiness(userID uint, message string) error {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.NewForbiddenError(message)
		}
		return apperrors.InternalError(err)
	}
	if profile.Type != models.UserTypeBusiness {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

func offerToWriteResponse(offer *models.Offer) *dto.OfferWriteResponse {
	resp := &dto.OfferWriteResponse{
		ID:          offer.ID,
		Title:       offer.Title,
		Image:       nullableString(offer.Image),
		Description: offer.Description,
		Details:     make([]dto.OfferDetailResponse, 0, len(offer.Details)),
	}
	for i := range offer.Details {
		resp.Details = append(resp.Details, detailToResponse(&offer.Details[i]))
	}
	return resp
}

func detailToResponse(d *models.OfferDetail) dto.OfferDetailResponse {
	features := []string(d.Features)
	if features == nil {
		features = []string{}
	}
	return dto.OfferDetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          d.OfferType,
	}
}
