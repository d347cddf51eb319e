package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

func newProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(db,
		repositories.NewUserRepository(),
		repositories.NewProfileRepository())
}

func TestProfileServiceGet(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	user := createTestUser(t, db, models.UserTypeBusiness)

	resp, err := svc.GetProfile(user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.User)
	assert.Equal(t, user.Username, resp.Username)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, string(models.UserTypeBusiness), resp.Type)
}

func TestProfileServiceGetNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := newProfileService(db).GetProfile(999)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestProfileServiceUpdateRoutesFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	user := createTestUser(t, db, models.UserTypeBusiness)

	firstName := "Max"
	email := "max@example.com"
	location := "Berlin"
	resp, err := svc.UpdateProfile(user.ID, user.ID, dto.UpdateProfileRequest{
		FirstName: &firstName,
		Email:     &email,
		Location:  &location,
	})
	require.NoError(t, err)

	assert.Equal(t, "Max", resp.FirstName)
	assert.Equal(t, "max@example.com", resp.Email)
	assert.Equal(t, "Berlin", resp.Location)

	// Name and email land on the user row, location on the profile.
	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	assert.Equal(t, "Max", storedUser.FirstName)
	assert.Equal(t, "max@example.com", storedUser.Email)

	var storedProfile models.Profile
	require.NoError(t, db.First(&storedProfile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Berlin", storedProfile.Location)
}

func TestProfileServiceUpdateOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	owner := createTestUser(t, db, models.UserTypeBusiness)
	intruder := createTestUser(t, db, models.UserTypeCustomer)

	location := "Hamburg"
	_, err := svc.UpdateProfile(intruder.ID, owner.ID, dto.UpdateProfileRequest{Location: &location})
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestProfileServiceUpdateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	user := createTestUser(t, db, models.UserTypeBusiness)
	other := createTestUser(t, db, models.UserTypeCustomer)

	email := other.Email
	_, err := svc.UpdateProfile(user.ID, user.ID, dto.UpdateProfileRequest{Email: &email})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProfileServiceListByType(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)
	createTestUser(t, db, models.UserTypeBusiness)
	createTestUser(t, db, models.UserTypeBusiness)
	createTestUser(t, db, models.UserTypeCustomer)

	businesses, err := svc.ListByType(models.UserTypeBusiness)
	require.NoError(t, err)
	assert.Len(t, businesses, 2)

	customers, err := svc.ListByType(models.UserTypeCustomer)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, string(models.UserTypeCustomer), customers[0].Type)
}
