package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type ProfileService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewProfileService(db *gorm.DB, userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{db: db, userRepo: userRepo, profileRepo: profileRepo}
}

// GetProfile returns the merged user and profile view. Any authenticated
// user may read any profile.
func (s *ProfileService) GetProfile(userID uint) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return profileToResponse(profile), nil
}

// UpdateProfile applies a partial update on behalf of requesterID. Only the
// owner may write; username and type never change.
func (s *ProfileService) UpdateProfile(requesterID, targetUserID uint, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(s.db, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if requesterID != targetUserID {
		return nil, apperrors.NewForbiddenError("You can only edit your own profile")
	}

	userFields := map[string]interface{}{}
	if req.FirstName != nil {
		userFields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		userFields["last_name"] = *req.LastName
	}
	if req.Email != nil && *req.Email != profile.User.Email {
		exists, err := s.userRepo.ExistsByEmail(s.db, *req.Email)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ValidationError(map[string]string{
				"email": "A user with that email already exists",
			})
		}
		userFields["email"] = *req.Email
	}

	profileFields := map[string]interface{}{}
	if req.File != nil {
		profileFields["file"] = *req.File
	}
	if req.Location != nil {
		profileFields["location"] = *req.Location
	}
	if req.Tel != nil {
		profileFields["tel"] = *req.Tel
	}
	if req.Description != nil {
		profileFields["description"] = *req.Description
	}
	if req.WorkingHours != nil {
		profileFields["working_hours"] = *req.WorkingHours
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(userFields) > 0 {
			if err := s.userRepo.UpdateFields(tx, targetUserID, userFields); err != nil {
				return err
			}
		}
		if len(profileFields) > 0 {
			if err := s.profileRepo.UpdateFields(tx, targetUserID, profileFields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetProfile(targetUserID)
}

func (s *ProfileService) ListByType(userType models.UserType) ([]dto.ProfileListItem, error) {
	profiles, err := s.profileRepo.FindByType(s.db, userType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProfileListItem, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		items = append(items, dto.ProfileListItem{
			User:         p.UserID,
			Username:     p.User.Username,
			FirstName:    p.User.FirstName,
			LastName:     p.User.LastName,
			File:         nullableString(p.File),
			Location:     p.Location,
			Tel:          p.Tel,
			Description:  p.Description,
			WorkingHours: p.WorkingHours,
			Type:         string(p.Type),
		})
	}
	return items, nil
}

func profileToResponse(p *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.User.FirstName,
		LastName:     p.User.LastName,
		File:         nullableString(p.File),
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         string(p.Type),
		Email:        p.User.Email,
		CreatedAt:    p.CreatedAt,
	}
}

// nullableString maps an unset text column to JSON null.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
