package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	offerRepo   repositories.OfferRepository
	profileRepo repositories.ProfileRepository
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, offerRepo repositories.OfferRepository, profileRepo repositories.ProfileRepository) *OrderService {
	return &OrderService{db: db, orderRepo: orderRepo, offerRepo: offerRepo, profileRepo: profileRepo}
}

// Create places an order by snapshotting the chosen package. The copied
// fields stay verbatim even if the package is edited or deleted later.
func (s *OrderService) Create(userID uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewForbiddenError("Only customer users can place orders")
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.Type != models.UserTypeCustomer {
		return nil, apperrors.NewForbiddenError("Only customer users can place orders")
	}

	detail, err := s.offerRepo.FindDetailWithOwner(s.db, req.OfferDetailID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferDetailNotFound) {
			return nil, apperrors.NewNotFoundError("order", "Offer detail not found")
		}
		return nil, apperrors.InternalError(err)
	}

	businessUserID := detail.Offer.UserID
	if businessUserID == userID {
		return nil, apperrors.NewBadRequestError("You cannot order your own offer")
	}

	order := &models.Order{
		CustomerUserID:     userID,
		BusinessUserID:     businessUserID,
		Title:              detail.Title,
		Price:              detail.Price,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             models.OrderStatusInProgress,
	}
	if err := s.orderRepo.Create(s.db, order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return orderToResponse(order), nil
}

// Retrieve returns one order. Staff may fetch any order; everyone else only
// sees orders they participate in, and a non-visible id reads as not found
// rather than forbidden.
func (s *OrderService) Retrieve(userID uint, isStaff bool, orderID uint) (*dto.OrderResponse, error) {
	var (
		order *models.Order
		err   error
	)
	if isStaff {
		order, err = s.orderRepo.FindByID(s.db, orderID)
	} else {
		order, err = s.orderRepo.FindVisibleByID(s.db, orderID, userID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order", "Order not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return orderToResponse(order), nil
}

// List returns the orders the user participates in, as customer or business.
func (s *OrderService) List(userID uint) ([]dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindVisible(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return items, nil
}

// UpdateStatus changes the order status. Only the business party may do it,
// and status must be the only field in the payload.
func (s *OrderService) UpdateStatus(userID, orderID uint, payload map[string]interface{}) (*dto.OrderResponse, error) {
	if err := rejectUnknownKeys(payload, "status"); err != nil {
		return nil, err
	}

	raw, ok := payload["status"]
	if !ok {
		return nil, apperrors.ValidationError(map[string]string{"status": "This field is required"})
	}
	status, ok := raw.(string)
	if !ok || !models.ValidOrderStatus(status) {
		return nil, apperrors.ValidationError(map[string]string{
			"status": "Must be one of: in_progress, completed, cancelled",
		})
	}

	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.BusinessUserID != userID {
		return nil, apperrors.NewForbiddenError("Only the business user of this order can update its status")
	}

	if err := s.orderRepo.UpdateStatus(s.db, orderID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	order, err = s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

// Delete removes an order. Staff only.
func (s *OrderService) Delete(isStaff bool, orderID uint) error {
	if !isStaff {
		return apperrors.NewForbiddenError("Only admin users can delete orders")
	}
	if _, err := s.findOrder(orderID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(s.db, orderID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// CountInProgress returns the running order count of a business user.
func (s *OrderService) CountInProgress(businessUserID uint) (*dto.OrderCountResponse, error) {
	if err := s.requireBusinessUser(businessUserID); err != nil {
		return nil, err
	}
	count, err := s.orderRepo.CountByBusinessAndStatus(s.db, businessUserID, models.OrderStatusInProgress)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.OrderCountResponse{OrderCount: count}, nil
}

func (s *OrderService) CountCompleted(businessUserID uint) (*dto.CompletedOrderCountResponse, error) {
	if err := s.requireBusinessUser(businessUserID); err != nil {
		return nil, err
	}
	count, err := s.orderRepo.CountByBusinessAndStatus(s.db, businessUserID, models.OrderStatusCompleted)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.CompletedOrderCountResponse{CompletedOrderCount: count}, nil
}

func (s *OrderService) requireBusinessUser(userID uint) error {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.NewNotFoundError("order", "Business user not found")
		}
		return apperrors.InternalError(err)
	}
	if profile.Type != models.UserTypeBusiness {
		return apperrors.NewNotFoundError("order", "Business user not found")
	}
	return nil
}

func (s *OrderService) findOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(s.db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("order", "Order not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return order, nil
}

// rejectUnknownKeys fails a partial update when the payload carries fields
// outside the allowed set, naming the offending keys.
func rejectUnknownKeys(payload map[string]interface{}, allowed ...string) error {
	allowedSet := map[string]bool{}
	for _, key := range allowed {
		allowedSet[key] = true
	}

	var unknown []string
	for key := range payload {
		if !allowedSet[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return apperrors.NewBadRequestError(fmt.Sprintf("Unknown fields: %s", strings.Join(unknown, ", ")))
}

func orderToResponse(o *models.Order) *dto.OrderResponse {
	features := []string(o.Features)
	if features == nil {
		features = []string{}
	}
	return &dto.OrderResponse{
		ID:                 o.ID,
		CustomerUser:       o.CustomerUserID,
		BusinessUser:       o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price,
		Features:           features,
		OfferType:          o.OfferType,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
