package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MartinBock1/Coderr/internal/models"
	"github.com/MartinBock1/Coderr/internal/services/dto"
)

// placeTestOrder creates a business user with one offer and orders its basic
// package as the given customer. Returns the order, the basic detail id and
// the business user id.
func placeTestOrder(t *testing.T, db *gorm.DB, customerID uint) (*dto.OrderResponse, uint, uint) {
	t.Helper()

	business := createTestUser(t, db, models.UserTypeBusiness)
	offerSvc := newOfferService(db)
	created, err := offerSvc.Create(business.ID, offerRequest("Website Design", 100, 5))
	require.NoError(t, err)

	var basicID uint
	for _, d := range created.Details {
		if d.OfferType == models.OfferTypeBasic {
			basicID = d.ID
		}
	}
	require.NotZero(t, basicID)

	order, err := newOrderService(db).Create(customerID, dto.CreateOrderRequest{OfferDetailID: basicID})
	require.NoError(t, err)
	return order, basicID, business.ID
}

func TestOrderServiceCreateSnapshotsPackage(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)

	assert.Equal(t, customer.ID, order.CustomerUser)
	assert.Equal(t, businessID, order.BusinessUser)
	assert.Equal(t, "Basic", order.Title)
	assert.Equal(t, 100.0, order.Price)
	assert.Equal(t, 1, order.Revisions)
	assert.Equal(t, 5, order.DeliveryTimeInDays)
	assert.Equal(t, []string{"Logo"}, order.Features)
	assert.Equal(t, models.OfferTypeBasic, order.OfferType)
	assert.Equal(t, models.OrderStatusInProgress, order.Status)
}

func TestOrderServiceSnapshotImmuneToDetailEdits(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	_, basicID, _ := placeTestOrder(t, db, customer.ID)

	// Editing the package after purchase must not touch the order.
	require.NoError(t, db.Model(&models.OfferDetail{}).
		Where("id = ?", basicID).
		Updates(map[string]interface{}{"price": 999.0, "title": "Changed"}).Error)

	orders, err := newOrderService(db).List(customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 100.0, orders[0].Price)
	assert.Equal(t, "Basic", orders[0].Title)
}

func TestOrderServiceCreateBusinessForbidden(t *testing.T) {
	db := setupTestDB(t)
	business := createTestUser(t, db, models.UserTypeBusiness)
	offerSvc := newOfferService(db)

	created, err := offerSvc.Create(business.ID, offerRequest("Website Design", 100, 5))
	require.NoError(t, err)

	other := createTestUser(t, db, models.UserTypeBusiness)
	_, err = newOrderService(db).Create(other.ID, dto.CreateOrderRequest{OfferDetailID: created.Details[0].ID})
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestOrderServiceCreateSelfOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	business := createTestUser(t, db, models.UserTypeBusiness)

	created, err := newOfferService(db).Create(business.ID, offerRequest("Website Design", 100, 5))
	require.NoError(t, err)

	// Give the owner a customer profile type to get past the role check.
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", business.ID).
		Update("type", models.UserTypeCustomer).Error)

	_, err = newOrderService(db).Create(business.ID, dto.CreateOrderRequest{OfferDetailID: created.Details[0].ID})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestOrderServiceCreateUnknownDetail(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	_, err := newOrderService(db).Create(customer.ID, dto.CreateOrderRequest{OfferDetailID: 12345})
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestOrderServiceListShowsBothParties(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	bystander := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	for _, userID := range []uint{customer.ID, businessID} {
		orders, err := svc.List(userID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	}

	orders, err := svc.List(bystander.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderServiceRetrieve(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)
	bystander := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	for _, userID := range []uint{customer.ID, businessID} {
		resp, err := svc.Retrieve(userID, false, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)
	}

	// A non-participant gets a 404, not a 403: the order stays hidden.
	_, err := svc.Retrieve(bystander.ID, false, order.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)

	// Staff may fetch any order.
	resp, err := svc.Retrieve(bystander.ID, true, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)

	_, err = svc.Retrieve(customer.ID, false, 9999)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	resp, err := svc.UpdateStatus(businessID, order.ID, map[string]interface{}{
		"status": models.OrderStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, resp.Status)
}

func TestOrderServiceUpdateStatusRejectsExtraFields(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	_, err := svc.UpdateStatus(businessID, order.ID, map[string]interface{}{
		"status": models.OrderStatusCompleted,
		"price":  1.0,
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	// The row must be untouched after the rejection.
	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusInProgress, stored.Status)
	assert.Equal(t, 100.0, stored.Price)
}

func TestOrderServiceUpdateStatusCustomerForbidden(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, _ := placeTestOrder(t, db, customer.ID)

	_, err := newOrderService(db).UpdateStatus(customer.ID, order.ID, map[string]interface{}{
		"status": models.OrderStatusCompleted,
	})
	requireHTTPStatus(t, err, http.StatusForbidden)
}

func TestOrderServiceDeleteStaffOnly(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, _ := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	err := svc.Delete(false, order.ID)
	requireHTTPStatus(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(true, order.ID))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderServiceCounts(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.UserTypeCustomer)

	order, _, businessID := placeTestOrder(t, db, customer.ID)
	svc := newOrderService(db)

	inProgress, err := svc.CountInProgress(businessID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inProgress.OrderCount)

	completed, err := svc.CountCompleted(businessID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, completed.CompletedOrderCount)

	_, err = svc.UpdateStatus(businessID, order.ID, map[string]interface{}{
		"status": models.OrderStatusCompleted,
	})
	require.NoError(t, err)

	completed, err = svc.CountCompleted(businessID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, completed.CompletedOrderCount)
}

func TestOrderServiceCountUnknownBusinessUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	_, err := svc.CountInProgress(4242)
	requireHTTPStatus(t, err, http.StatusNotFound)

	// A customer id is not a business user either.
	customer := createTestUser(t, db, models.UserTypeCustomer)
	_, err = svc.CountCompleted(customer.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}
