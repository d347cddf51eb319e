package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/auth"
	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type AuthService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) *AuthService {
	return &AuthService{db: db, userRepo: userRepo, profileRepo: profileRepo}
}

// Register creates the user and its profile in one transaction and returns a
// fresh token, so signup doubles as the first login.
func (s *AuthService) Register(req dto.RegistrationRequest) (*dto.AuthResponse, error) {
	if req.Password != req.RepeatedPassword {
		return nil, apperrors.ValidationError(map[string]string{
			"repeated_password": "Passwords do not match",
		})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	taken, err := s.userRepo.ExistsByUsername(s.db, req.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ValidationError(map[string]string{
			"username": "A user with that username already exists",
		})
	}

	exists, err := s.userRepo.ExistsByEmail(s.db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ValidationError(map[string]string{
			"email": "A user with that email already exists",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &models.Profile{
			UserID: user.ID,
			Type:   models.UserType(req.Type),
		}
		return s.profileRepo.Create(tx, profile)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, req.Type, user.IsStaff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

// Login checks credentials and issues a token. Bad username and bad password
// produce the same response.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(s.db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	role := ""
	if user.Profile != nil {
		role = string(user.Profile.Type)
	}

	token, err := auth.GenerateToken(user.ID, role, user.IsStaff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth",
		"Unable to log in with the provided credentials", http.StatusBadRequest)
}
