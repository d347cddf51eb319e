package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MartinBock1/Coderr/internal/config"
	"github.com/MartinBock1/Coderr/internal/database"
	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/repositories"
	"github.com/MartinBock1/Coderr/pkg/apperrors"
)

func init() {
	// Tests never read config.yaml; wire the minimum directly.
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

var testUserSeq int

// createTestUser inserts a user with a profile of the given type and
// returns it with the profile preloaded.
func createTestUser(t *testing.T, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Username:     fmt.Sprintf("user%d", testUserSeq),
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{UserID: user.ID, Type: userType}
	require.NoError(t, db.Create(profile).Error)

	user.Profile = profile
	return user
}

// requireHTTPStatus asserts that err is an AppError carrying the status.
func requireHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %v", err)
	require.Equal(t, status, appErr.HTTPCode)
}

func newOfferService(db *gorm.DB) *OfferService {
	return NewOfferService(db,
		repositories.NewOfferRepository(),
		repositories.NewUserRepository(),
		repositories.NewProfileRepository())
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db,
		repositories.NewOrderRepository(),
		repositories.NewOfferRepository(),
		repositories.NewProfileRepository())
}

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(db,
		repositories.NewReviewRepository(),
		repositories.NewProfileRepository())
}
