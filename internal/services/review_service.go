package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type ReviewService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	profileRepo repositories.ProfileRepository
}

func NewReviewService(db *gorm.DB, reviewRepo repositories.ReviewRepository, profileRepo repositories.ProfileRepository) *ReviewService {
	return &ReviewService{db: db, reviewRepo: reviewRepo, profileRepo: profileRepo}
}

// Create stores a customer's review of a business user. Each reviewer gets
// one review per business; a duplicate is a conflict, not a validation error.
func (s *ReviewService) Create(reviewerID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	reviewerProfile, err := s.profileRepo.FindByUserID(s.db, reviewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewForbiddenError("Only customer users can write reviews")
		}
		return nil, apperrors.InternalError(err)
	}
	if reviewerProfile.Type != models.UserTypeCustomer {
		return nil, apperrors.NewForbiddenError("Only customer users can write reviews")
	}

	if req.BusinessUser == reviewerID {
		return nil, apperrors.NewBadRequestError("You cannot review yourself")
	}

	targetProfile, err := s.profileRepo.FindByUserID(s.db, req.BusinessUser)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ValidationError(map[string]string{
				"business_user": "Must reference an existing business user",
			})
		}
		return nil, apperrors.InternalError(err)
	}
	if targetProfile.Type != models.UserTypeBusiness {
		return nil, apperrors.ValidationError(map[string]string{
			"business_user": "Must reference an existing business user",
		})
	}

	exists, err := s.reviewRepo.ExistsForPair(s.db, req.BusinessUser, reviewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflictError("review", "You have already reviewed this business")
	}

	review := &models.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     reviewerID,
		Rating:         req.Rating,
		Description:    req.Description,
	}
	if err := s.reviewRepo.Create(s.db, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.NewConflictError("review", "You have already reviewed this business")
		}
		return nil, apperrors.InternalError(err)
	}

	return reviewToResponse(review), nil
}

func (s *ReviewService) List(f repositories.ReviewFilter) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.List(s.db, f)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, *reviewToResponse(&reviews[i]))
	}
	return items, nil
}

// Update patches rating and description. Only the reviewer may edit, and the
// payload must not carry any other field.
func (s *ReviewService) Update(reviewerID, reviewID uint, payload map[string]interface{}) (*dto.ReviewResponse, error) {
	if err := rejectUnknownKeys(payload, "rating", "description"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if raw, ok := payload["rating"]; ok {
		rating, ok := raw.(float64)
		if !ok || rating != float64(int(rating)) || rating < 1 || rating > 5 {
			return nil, apperrors.ValidationError(map[string]string{
				"rating": "Must be an integer between 1 and 5",
			})
		}
		fields["rating"] = int(rating)
	}
	if raw, ok := payload["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return nil, apperrors.ValidationError(map[string]string{
				"description": "Must be a string",
			})
		}
		fields["description"] = description
	}

	review, err := s.findReview(reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != reviewerID {
		return nil, apperrors.NewForbiddenError("You can only edit your own reviews")
	}

	if err := s.reviewRepo.UpdateFields(s.db, reviewID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	review, err = s.findReview(reviewID)
	if err != nil {
		return nil, err
	}
	return reviewToResponse(review), nil
}

func (s *ReviewService) Delete(reviewerID, reviewID uint) error {
	review, err := s.findReview(reviewID)
	if err != nil {
		return err
	}
	if review.ReviewerID != reviewerID {
		return apperrors.NewForbiddenError("You can only delete your own reviews")
	}

	if err := s.reviewRepo.Delete(s.db, reviewID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReviewService) findReview(reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(s.db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewNotFoundError("review", "Review not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}

func reviewToResponse(r *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:           r.ID,
		BusinessUser: r.BusinessUserID,
		Reviewer:     r.ReviewerID,
		Rating:       r.Rating,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
