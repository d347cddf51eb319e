package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

func TestReviewServiceCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	resp, err := svc.Create(customer.ID, dto.CreateReviewRequest{
		BusinessUser: business.ID,
		Rating:       4,
		Description:  "Solid work",
	})
	require.NoError(t, err)

	assert.Equal(t, business.ID, resp.BusinessUser)
	assert.Equal(t, customer.ID, resp.Reviewer)
	assert.Equal(t, 4, resp.Rating)
}

func TestReviewServiceCreateBusinessForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	reviewer := createTestUser(t, db, models.UserTypeBusiness)
	target := createTestUser(t, db, models.UserTypeBusiness)

	_, err := svc.Create(reviewer.ID, dto.CreateReviewRequest{
		BusinessUser: target.ID,
		Rating:       5,
	})
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestReviewServiceCreateTargetMustBeBusiness(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	otherCustomer := createTestUser(t, db, models.UserTypeCustomer)

	_, err := svc.Create(customer.ID, dto.CreateReviewRequest{
		BusinessUser: otherCustomer.ID,
		Rating:       5,
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestReviewServiceDuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	_, err := svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 1})
	requireHTTPStatus(t, err, http.StatusConflict)

	// A second review for a different business is fine.
	otherBusiness := createTestUser(t, db, models.UserTypeBusiness)
	_, err = svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: otherBusiness.ID, Rating: 3})
	require.NoError(t, err)
}

func TestReviewServiceDuplicateBlockedByConstraint(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	repo := repositories.NewReviewRepository()
	require.NoError(t, repo.Create(db, &models.Review{
		BusinessUserID: business.ID,
		ReviewerID:     customer.ID,
		Rating:         5,
	}))

	// The unique index catches what a racing pre-check would miss.
	err := repo.Create(db, &models.Review{
		BusinessUserID: business.ID,
		ReviewerID:     customer.ID,
		Rating:         2,
	})
	assert.ErrorIs(t, err, repositories.ErrReviewAlreadyExists)
}

func TestReviewServiceList(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	alice := createTestUser(t, db, models.UserTypeCustomer)
	bob := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)
	otherBusiness := createTestUser(t, db, models.UserTypeBusiness)

	_, err := svc.Create(alice.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(bob.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 2})
	require.NoError(t, err)
	_, err = svc.Create(alice.ID, dto.CreateReviewRequest{BusinessUser: otherBusiness.ID, Rating: 4})
	require.NoError(t, err)

	businessID := business.ID
	items, err := svc.List(repositories.ReviewFilter{BusinessUserID: &businessID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	aliceID := alice.ID
	items, err = svc.List(repositories.ReviewFilter{ReviewerID: &aliceID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.List(repositories.ReviewFilter{Ordering: "-rating"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 5, items[0].Rating)
	assert.Equal(t, 2, items[2].Rating)
}

func TestReviewServiceUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	created, err := svc.Create(customer.ID, dto.CreateReviewRequest{
		BusinessUser: business.ID,
		Rating:       3,
		Description:  "ok",
	})
	require.NoError(t, err)

	resp, err := svc.Update(customer.ID, created.ID, map[string]interface{}{
		"rating": float64(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, "ok", resp.Description)
}

func TestReviewServiceUpdateRejectsUnknownFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	created, err := svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 3})
	require.NoError(t, err)

	_, err = svc.Update(customer.ID, created.ID, map[string]interface{}{
		"rating":        float64(5),
		"business_user": float64(99),
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	var stored models.Review
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, 3, stored.Rating)
	assert.Equal(t, business.ID, stored.BusinessUserID)
}

func TestReviewServiceUpdateForbiddenForOthers(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	other := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	created, err := svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 3})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, created.ID, map[string]interface{}{"rating": float64(1)})
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestReviewServiceDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	other := createTestUser(t, db, models.UserTypeCustomer)
	business := createTestUser(t, db, models.UserTypeBusiness)

	created, err := svc.Create(customer.ID, dto.CreateReviewRequest{BusinessUser: business.ID, Rating: 3})
	require.NoError(t, err)

	err = svc.Delete(other.ID, created.ID)
	requireHTTPStatus(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(customer.ID, created.ID))

	err = svc.Delete(customer.ID, created.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}
