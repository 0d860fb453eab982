package offers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	offersvc "bms-backend/internal/application/offers"
	"bms-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOffersTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Offer{}))
	return &Handlers{Service: &offersvc.Service{DB: db}}, db
}

func newOffersApp(h *Handlers) *fiber.App {
	app := fiber.New()
	app.Post("/api/offers", h.CreateOffer)
	app.Get("/api/offers", h.GetOffers)
	app.Get("/api/offers/active", h.GetActiveOffers)
	app.Put("/api/offers/:id", h.UpdateOffer)
	app.Delete("/api/offers/:id", h.DeleteOffer)
	return app
}

func TestCreateOffer_Success(t *testing.T) {
	h, _ := setupOffersTest(t)
	app := newOffersApp(h)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Early Bird",
		"discount":    "25%",
		"validUntil":  "2026-12-31",
		"description": "Enroll before the batch starts",
		"code":        "EARLY25",
		"conditions":  []string{"New students only"},
	})
	req := httptest.NewRequest("POST", "/api/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var offer models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&offer))
	assert.Equal(t, "EARLY25", offer.Code)
	assert.True(t, offer.IsActive)

	var conditions []string
	require.NoError(t, json.Unmarshal(offer.Conditions, &conditions))
	assert.Equal(t, []string{"New students only"}, conditions)
}

func TestCreateOffer_DuplicateCode(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	payload := map[string]interface{}{
		"title":       "Early Bird",
		"discount":    "25%",
		"validUntil":  "2026-12-31",
		"description": "First batch",
		"code":        "EARLY25",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	payload["title"] = "Second attempt"
	payload["discount"] = "50%"
	body, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	var result map[string]string
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Offer code already exists", result["error"])

	// The first offer must remain untouched.
	var stored models.Offer
	require.NoError(t, db.First(&stored, "code = ?", "EARLY25").Error)
	assert.Equal(t, "Early Bird", stored.Title)
	assert.Equal(t, "25%", stored.Discount)

	var count int64
	db.Model(&models.Offer{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

// A duplicate that slips past the service pre-check (two concurrent creates)
// reaches the unique index; the translated error is what Create maps to a
// conflict.
func TestOfferCodeUniqueIndexTranslated(t *testing.T) {
	_, db := setupOffersTest(t)

	tomorrow := time.Now().Add(24 * time.Hour)
	first := models.Offer{Title: "A", Discount: "10%", ValidUntil: tomorrow, Description: "d", Code: "EARLY25", IsActive: true}
	require.NoError(t, db.Create(&first).Error)

	dup := models.Offer{Title: "B", Discount: "20%", ValidUntil: tomorrow, Description: "d", Code: "EARLY25", IsActive: true}
	err := db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateOffer_MissingFields(t *testing.T) {
	h, _ := setupOffersTest(t)
	app := newOffersApp(h)

	body, _ := json.Marshal(map[string]string{"title": "Early Bird"})
	req := httptest.NewRequest("POST", "/api/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetActiveOffers_Filtering(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	expired := models.Offer{Title: "Expired", Discount: "10%", ValidUntil: yesterday, Description: "d", Code: "OLD10", IsActive: true}
	inactive := models.Offer{Title: "Disabled", Discount: "20%", ValidUntil: tomorrow, Description: "d", Code: "OFF20", IsActive: false}
	live := models.Offer{Title: "Live", Discount: "30%", ValidUntil: tomorrow, Description: "d", Code: "NOW30", IsActive: true}
	for _, o := range []*models.Offer{&expired, &inactive, &live} {
		require.NoError(t, db.Create(o).Error)
	}

	req := httptest.NewRequest("GET", "/api/offers/active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var offers []models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&offers))
	require.Len(t, offers, 1)
	assert.Equal(t, "NOW30", offers[0].Code)

	// The admin listing still returns everything.
	req = httptest.NewRequest("GET", "/api/offers", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	var all []models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 3)
}

func TestGetOffers_NewestFirst(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	tomorrow := time.Now().Add(24 * time.Hour)
	older := models.Offer{Title: "Older", Discount: "10%", ValidUntil: tomorrow, Description: "d", Code: "OLD", IsActive: true, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Offer{Title: "Newer", Discount: "20%", ValidUntil: tomorrow, Description: "d", Code: "NEW", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	req := httptest.NewRequest("GET", "/api/offers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var offers []models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&offers))
	require.Len(t, offers, 2)
	assert.Equal(t, "NEW", offers[0].Code)
	assert.Equal(t, "OLD", offers[1].Code)

	// Active listing keeps the same ordering.
	req = httptest.NewRequest("GET", "/api/offers/active", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	var active []models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	require.Len(t, active, 2)
	assert.Equal(t, "NEW", active[0].Code)
	assert.Equal(t, "OLD", active[1].Code)
}

func TestUpdateOffer_PartialPatch(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	offer := models.Offer{Title: "Early Bird", Discount: "25%", ValidUntil: time.Now().Add(24 * time.Hour), Description: "d", Code: "EARLY25", IsActive: true}
	require.NoError(t, db.Create(&offer).Error)
	createdAt := offer.CreatedAt

	body, _ := json.Marshal(map[string]interface{}{"discount": "40%", "isActive": false})
	req := httptest.NewRequest("PUT", "/api/offers/"+offer.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Offer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "40%", updated.Discount)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Early Bird", updated.Title)
	assert.Equal(t, offer.ID, updated.ID)
	assert.WithinDuration(t, createdAt, updated.CreatedAt, time.Second)
}

func TestUpdateOffer_CodeConflict(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	first := models.Offer{Title: "A", Discount: "10%", ValidUntil: time.Now().Add(24 * time.Hour), Description: "d", Code: "CODEA", IsActive: true}
	second := models.Offer{Title: "B", Discount: "20%", ValidUntil: time.Now().Add(24 * time.Hour), Description: "d", Code: "CODEB", IsActive: true}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	body, _ := json.Marshal(map[string]string{"code": "CODEA"})
	req := httptest.NewRequest("PUT", "/api/offers/"+second.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestDeleteOffer_NotFoundAfterRemoval(t *testing.T) {
	h, db := setupOffersTest(t)
	app := newOffersApp(h)

	offer := models.Offer{Title: "A", Discount: "10%", ValidUntil: time.Now().Add(24 * time.Hour), Description: "d", Code: "CODEA", IsActive: true}
	require.NoError(t, db.Create(&offer).Error)

	req := httptest.NewRequest("DELETE", "/api/offers/"+offer.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/api/offers/"+offer.ID.String(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var result map[string]string
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Offer not found", result["message"])
}
