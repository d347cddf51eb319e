package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MartinBock1/Coderr/internal/app"
	"github.com/MartinBock1/Coderr/internal/config"
	"github.com/MartinBock1/Coderr/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Storage.BasePath = filepath.Join(os.TempDir(), "coderr-test-uploads")
	cfg.Storage.BaseURL = "/api/files"
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png"}
	config.AppConfig = cfg
}

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router, err := app.SetupRouter(db)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser signs up a user over the API and returns the token and id.
func registerUser(t *testing.T, router *gin.Engine, username, userType string) (string, uint) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/registration/", "", gin.H{
		"username":          username,
		"email":             username + "@example.com",
		"password":          "supersecret",
		"repeated_password": "supersecret",
		"type":              userType,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return body["token"].(string), uint(body["user_id"].(float64))
}

func offerPayload(title string) gin.H {
	detail := func(offerType string, price float64, delivery int) gin.H {
		return gin.H{
			"title":                 offerType + " package",
			"revisions":             2,
			"delivery_time_in_days": delivery,
			"price":                 price,
			"features":              []string{"Logo"},
			"offer_type":            offerType,
		}
	}
	return gin.H{
		"title":       title,
		"description": "test offer",
		"details": []gin.H{
			detail("basic", 100, 5),
			detail("standard", 200, 8),
			detail("premium", 350, 12),
		},
	}
}

func TestRegistrationAndLogin(t *testing.T) {
	router := setupAPI(t)

	token, userID := registerUser(t, router, "maria", "customer")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)

	w := doJSON(t, router, http.MethodPost, "/api/login/", "", gin.H{
		"username": "maria",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "maria", body["username"])
	assert.NotEmpty(t, body["token"])

	w = doJSON(t, router, http.MethodPost, "/api/login/", "", gin.H{
		"username": "maria",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOfferEndpoints(t *testing.T) {
	router := setupAPI(t)
	businessToken, businessID := registerUser(t, router, "studio", "business")

	// Creating an offer needs a token.
	w := doJSON(t, router, http.MethodPost, "/api/offers/", "", offerPayload("Website Design"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/offers/", businessToken, offerPayload("Website Design"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	offerID := uint(created["id"].(float64))
	require.Len(t, created["details"], 3)

	// The list is public and paginated.
	w = doJSON(t, router, http.MethodGet, "/api/offers/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)
	assert.EqualValues(t, 1, list["count"])
	results := list["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.EqualValues(t, businessID, first["user"])
	assert.EqualValues(t, 100, first["min_price"])
	assert.EqualValues(t, 5, first["min_delivery_time"])

	// Retrieve needs a token.
	path := fmt.Sprintf("/api/offers/%d/", offerID)
	w = doJSON(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, path, businessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestOfferCreateRequiresThreePackages(t *testing.T) {
	router := setupAPI(t)
	businessToken, _ := registerUser(t, router, "studio", "business")

	payload := offerPayload("Website Design")
	payload["details"] = payload["details"].([]gin.H)[:2]

	w := doJSON(t, router, http.MethodPost, "/api/offers/", businessToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOfferCreateAcceptsZeroValues(t *testing.T) {
	router := setupAPI(t)
	businessToken, _ := registerUser(t, router, "studio", "business")

	// A free instant-delivery package is valid: price and delivery time
	// may both be zero.
	payload := offerPayload("Free Consultation")
	details := payload["details"].([]gin.H)
	details[0]["price"] = 0
	details[0]["delivery_time_in_days"] = 0

	w := doJSON(t, router, http.MethodPost, "/api/offers/", businessToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody(t, w)
	for _, raw := range created["details"].([]interface{}) {
		d := raw.(map[string]interface{})
		if d["offer_type"] == "basic" {
			assert.EqualValues(t, 0, d["price"])
			assert.EqualValues(t, 0, d["delivery_time_in_days"])
		}
	}
}

func TestOrderEndpoints(t *testing.T) {
	router := setupAPI(t)
	businessToken, _ := registerUser(t, router, "studio", "business")
	customerToken, _ := registerUser(t, router, "buyer", "customer")

	w := doJSON(t, router, http.MethodPost, "/api/offers/", businessToken, offerPayload("Website Design"))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	details := created["details"].([]interface{})
	detailID := uint(details[0].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, http.MethodPost, "/api/orders/", customerToken, gin.H{
		"offer_detail_id": detailID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeBody(t, w)
	orderID := uint(order["id"].(float64))
	assert.Equal(t, "in_progress", order["status"])

	// Participants can fetch the order; outsiders see a 404.
	path := fmt.Sprintf("/api/orders/%d/", orderID)
	w = doJSON(t, router, http.MethodGet, path, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fetched := decodeBody(t, w)
	assert.EqualValues(t, orderID, fetched["id"])

	outsiderToken, _ := registerUser(t, router, "outsider", "customer")
	w = doJSON(t, router, http.MethodGet, path, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The customer may not flip the status.
	w = doJSON(t, router, http.MethodPatch, path, customerToken, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Extra fields in the patch are rejected.
	w = doJSON(t, router, http.MethodPatch, path, businessToken, gin.H{
		"status": "completed",
		"price":  1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, businessToken, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decodeBody(t, w)
	assert.Equal(t, "completed", patched["status"])
}

func TestReviewEndpoints(t *testing.T) {
	router := setupAPI(t)
	_, businessID := registerUser(t, router, "studio", "business")
	customerToken, _ := registerUser(t, router, "buyer", "customer")

	w := doJSON(t, router, http.MethodPost, "/api/reviews/", customerToken, gin.H{
		"business_user": businessID,
		"rating":        5,
		"description":   "great",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second review for the same business conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/reviews/", customerToken, gin.H{
		"business_user": businessID,
		"rating":        1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBaseInfoIsPublic(t *testing.T) {
	router := setupAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/base-info/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["review_count"])
	assert.Nil(t, body["average_rating"])
}

func TestProfileEndpoints(t *testing.T) {
	router := setupAPI(t)
	token, userID := registerUser(t, router, "maria", "customer")
	otherToken, _ := registerUser(t, router, "intruder", "customer")

	path := fmt.Sprintf("/api/profile/%d/", userID)

	w := doJSON(t, router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "maria", profile["username"])

	// Only the owner can patch.
	w = doJSON(t, router, http.MethodPatch, path, otherToken, gin.H{"location": "Berlin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, token, gin.H{"location": "Berlin", "first_name": "Maria"})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decodeBody(t, w)
	assert.Equal(t, "Berlin", patched["location"])
	assert.Equal(t, "Maria", patched["first_name"])
	assert.Equal(t, "maria", patched["username"])
}
