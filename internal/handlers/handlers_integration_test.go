package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"giftcerts/internal/handlers"
	"giftcerts/internal/middleware"
	"giftcerts/internal/models"
	"giftcerts/internal/repositories"
	"giftcerts/internal/services"
)

var (
	app   *fiber.App
	token string
)

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Tag{},
		&models.Certificate{}, &models.Order{}, &models.OrderLine{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_lower ON tags (LOWER(name))").Error; err != nil {
		log.Fatalf("failed to create tag name index: %v", err)
	}

	certRepo := repositories.NewGORMCertificateRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	tagService := services.NewTagService(tagRepo)
	certService := services.NewCertificateService(certRepo, tagService)
	orderService := services.NewOrderService(orderRepo, certRepo, userRepo, nil)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	app = fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewCertificateHandler(certService).RegisterRoutes(apiV1, protected)
	handlers.NewTagHandler(tagService).RegisterRoutes(apiV1, protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)
	handlers.NewUserHandler(userService).RegisterRoutes(protected)

	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path string, body interface{}, auth bool) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		// Not every response is a JSON object (204s are empty).
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func TestAPI_FullFlow(t *testing.T) {
	// Registration and login.
	resp, _ := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice", "password": "Sup3rsecret",
	}, false)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "Sup3rsecret",
	}, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ = body["token"].(string)
	assert.NotEmpty(t, token)

	// Writes require a token.
	resp, _ = doJSON(t, http.MethodPost, "/api/v1/certificates", map[string]interface{}{
		"name": "Unauthorized attempt",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Create certificates with tags.
	for i, payload := range []map[string]interface{}{
		{
			"name": "Spa day deluxe", "description": "A full day at the wellness centre",
			"price": "149.99", "duration": 90,
			"tags": []map[string]string{{"name": "wellness"}},
		},
		{
			"name": "Dinner for two", "description": "Tasting menu at the rooftop spa restaurant",
			"price": "99.99", "duration": 30,
			"tags": []map[string]string{{"name": "food"}, {"name": "wellness"}},
		},
		{
			"name": "Cinema night", "description": "Two tickets and popcorn",
			"price": "25.50", "duration": 14,
			"tags": []map[string]string{{"name": "leisure"}},
		},
	} {
		resp, body = doJSON(t, http.MethodPost, "/api/v1/certificates", payload, true)
		assert.Equal(t, http.StatusCreated, resp.StatusCode, "certificate %d: %v", i, body)
	}

	// Reusing a tag name must not create a second tag row.
	resp, body = doJSON(t, http.MethodGet, "/api/v1/tags", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])

	// A case variant of an existing tag name hits the lowered unique index.
	resp, body = doJSON(t, http.MethodPost, "/api/v1/tags", map[string]string{
		"name": "Wellness",
	}, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "%v", body)

	// Duplicate certificate name conflicts.
	resp, body = doJSON(t, http.MethodPost, "/api/v1/certificates", map[string]interface{}{
		"name": "Spa day deluxe", "description": "second copy of the same offer",
		"price": "10.00", "duration": 5,
	}, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "%v", body)

	// Listing with a tag filter.
	resp, body = doJSON(t, http.MethodGet, "/api/v1/certificates?tag=wellness", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	// Two tag values are conjunctive.
	resp, body = doJSON(t, http.MethodGet, "/api/v1/certificates?tag=wellness&tag=food", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	// Search spans name and description.
	resp, body = doJSON(t, http.MethodGet, "/api/v1/certificates?search=spa", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	// Sorting by price descending.
	resp, body = doJSON(t, http.MethodGet, "/api/v1/certificates?sort=price-", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	assert.Len(t, items, 3)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Spa day deluxe", first["name"])

	// Unknown sort field and unknown parameter are rejected.
	resp, _ = doJSON(t, http.MethodGet, "/api/v1/certificates?sort=stock", nil, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, "/api/v1/certificates?color=red", nil, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Placing an order merges duplicate lines and prices from the catalog.
	resp, body = doJSON(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"certificates": []map[string]interface{}{
			{"certificateId": 3, "certificateAmount": 1},
			{"certificateId": 3, "certificateAmount": 1},
		},
	}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	assert.Equal(t, "51", body["cost"])
	lines := body["certificates"].([]interface{})
	assert.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, float64(2), line["certificateAmount"])

	// An empty order is a validation failure.
	resp, _ = doJSON(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"certificates": []map[string]interface{}{},
	}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Soft delete hides the certificate from reads.
	resp, _ = doJSON(t, http.MethodDelete, "/api/v1/certificates/3", nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, "/api/v1/certificates/3", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, body = doJSON(t, http.MethodGet, "/api/v1/certificates", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])
}
