package services

import (
	"math"

	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

type StatsService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	profileRepo repositories.ProfileRepository
	offerRepo   repositories.OfferRepository
}

func NewStatsService(db *gorm.DB, reviewRepo repositories.ReviewRepository, profileRepo repositories.ProfileRepository, offerRepo repositories.OfferRepository) *StatsService {
	return &StatsService{db: db, reviewRepo: reviewRepo, profileRepo: profileRepo, offerRepo: offerRepo}
}

// GetBaseInfo aggregates the public platform stats. The average rating is
// rounded to one decimal and stays null until the first review exists.
func (s *StatsService) GetBaseInfo() (*dto.BaseInfoResponse, error) {
	reviewCount, err := s.reviewRepo.Count(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	avg, err := s.reviewRepo.AverageRating(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		avg = &rounded
	}

	businessCount, err := s.profileRepo.CountByType(s.db, models.UserTypeBusiness)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	offerCount, err := s.offerRepo.CountAll(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.BaseInfoResponse{
		ReviewCount:          reviewCount,
		AverageRating:        avg,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}
