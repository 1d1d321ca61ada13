package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skiphire/handlers"
	"skiphire/models"
	"skiphire/services/payment"
	"skiphire/services/wizard"
	"skiphire/utils"
)

type fakeGateway struct {
	intent     *payment.IntentResult
	intentErr  error
	customerID string
	saveErr    error
	webhookErr error
	statusErr  error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, in payment.CreateIntentInput) (*payment.IntentResult, error) {
	if in.Amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return f.intent, nil
}

func (f *fakeGateway) SavePaymentMethod(_ context.Context, pmID, _ string) (string, error) {
	if pmID == "" {
		return "", payment.ErrMissingPaymentMethod
	}
	return f.customerID, f.saveErr
}

func (f *fakeGateway) ParseWebhook(_ []byte, _ string) (payment.Event, error) {
	if f.webhookErr != nil {
		return payment.Event{}, f.webhookErr
	}
	return payment.Event{Kind: payment.EventPaymentSucceeded}, nil
}

func (f *fakeGateway) CheckConnection(context.Context) error { return f.statusErr }

type fakeCatalogue struct{ offerings []models.SkipOffering }

func (f *fakeCatalogue) FetchByLocation(context.Context, string, string) []models.SkipOffering {
	return f.offerings
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlers.WizardService = wizard.NewService(wizard.NewMemoryStore())

	r := gin.New()
	r.Use(utils.ErrorHandler())

	api := r.Group("/api/wizard")
	api.POST("/session", handlers.StartWizardSession)
	api.GET("/session/:id", handlers.GetWizardSession)
	api.DELETE("/session/:id", handlers.EndWizardSession)
	api.POST("/session/:id/address", handlers.SubmitAddress)
	api.POST("/session/:id/waste-types", handlers.SubmitWasteTypes)
	api.POST("/session/:id/skip", handlers.SelectSkip)
	api.POST("/session/:id/permit", handlers.SubmitPlacement)
	api.POST("/session/:id/date", handlers.SelectDeliveryDate)
	api.POST("/session/:id/payment", handlers.CompleteWizardPayment)
	api.POST("/session/:id/back", handlers.WizardBack)
	api.POST("/session/:id/jump", handlers.WizardJump)
	api.POST("/session/:id/reset", handlers.WizardReset)
	api.GET("/session/:id/dates", handlers.GetAvailableDates)
	api.GET("/session/:id/quote", handlers.GetQuote)

	r.GET("/api/skips", handlers.ListSkips)
	r.POST("/api/payments/create-payment-intent", handlers.CreatePaymentIntent)
	r.POST("/api/payments/save-payment-method", handlers.SavePaymentMethod)
	r.POST("/api/payments/webhook", handlers.StripeWebhook)
	r.GET("/api/payments/stripe-status", handlers.StripeStatus)
	r.POST("/api/payments/validate-card", handlers.ValidateCardForm)
	r.POST("/api/bookings/create", handlers.CreateBooking)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func startSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/wizard/session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id, ok := resp["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestWizardFlowOverHTTP(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)
	base := "/api/wizard/session/" + id

	w, resp := doJSON(t, r, http.MethodPost, base+"/address", gin.H{
		"address": gin.H{
			"postcode":     "LS1 4AB",
			"area":         "Leeds",
			"full_address": "12 High Street, Leeds, LS1 4AB",
			"details":      gin.H{"line1": "12 High Street", "city": "Leeds", "postcode": "LS1 4AB"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	state := resp["state"].(map[string]interface{})
	assert.Equal(t, float64(2), state["step"])

	w, _ = doJSON(t, r, http.MethodPost, base+"/waste-types", gin.H{"waste_types": []string{"household", "garden"}})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, base+"/skip", gin.H{"skip": gin.H{
		"id": 2, "size": 6, "hire_period_days": 14, "price_before_vat": 150, "vat": 20,
	}})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodPost, base+"/permit", gin.H{"placement": "private"})
	require.Equal(t, http.StatusOK, w.Code)
	state = resp["state"].(map[string]interface{})
	assert.Equal(t, float64(5), state["step"])

	// Quote is available once a skip is chosen.
	w, resp = doJSON(t, r, http.MethodGet, base+"/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	quote := resp["quote"].(map[string]interface{})
	assert.Equal(t, float64(150), quote["subtotal"])
	assert.Equal(t, float64(30), quote["vat"])
	assert.Equal(t, float64(180), quote["total"])
	assert.Equal(t, float64(18000), resp["amount_pence"])

	// Pick the first date the availability view offers; near the end of a
	// month the current view can be empty, so fall through to the next one.
	w, resp = doJSON(t, r, http.MethodGet, base+"/dates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dates := resp["available_dates"].([]interface{})
	if len(dates) == 0 {
		next := time.Now().AddDate(0, 1, 0)
		w, resp = doJSON(t, r, http.MethodGet,
			fmt.Sprintf("%s/dates?year=%d&month=%d", base, next.Year(), int(next.Month())), nil)
		require.Equal(t, http.StatusOK, w.Code)
		dates = resp["available_dates"].([]interface{})
	}
	require.NotEmpty(t, dates)
	first := dates[0].(string)

	w, resp = doJSON(t, r, http.MethodPost, base+"/date", gin.H{"date": first})
	require.Equal(t, http.StatusOK, w.Code)
	state = resp["state"].(map[string]interface{})
	assert.Equal(t, float64(6), state["step"])

	w, _ = doJSON(t, r, http.MethodPost, base+"/payment", gin.H{"payment": gin.H{
		"method": "card", "amount": 180, "transactionId": "pi_1", "status": "succeeded", "processedAt": "2025-06-10T10:00:00Z",
	}})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestWizardValidationOverHTTP(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)
	base := "/api/wizard/session/" + id

	// Waste types before the address step is a step mismatch.
	w, _ := doJSON(t, r, http.MethodPost, base+"/waste-types", gin.H{"waste_types": []string{"garden"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, base+"/address", gin.H{"address": gin.H{"postcode": "LS1 4AB"}})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, base+"/waste-types", gin.H{"waste_types": []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, base+"/permit", gin.H{"placement": "roadside"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardSessionLifecycleOverHTTP(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)

	w, _ := doJSON(t, r, http.MethodGet, "/api/wizard/session/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/wizard/session/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/wizard/session/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/wizard/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardResetOverHTTP(t *testing.T) {
	r := newRouter(t)
	id := startSession(t, r)
	base := "/api/wizard/session/" + id

	w, _ := doJSON(t, r, http.MethodPost, base+"/address", gin.H{"address": gin.H{"postcode": "LS1 4AB"}})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := resp["state"].(map[string]interface{})
	assert.Equal(t, float64(1), state["step"])
	draft := state["draft"].(map[string]interface{})
	assert.Nil(t, draft["address"])
}

func TestListSkips(t *testing.T) {
	r := newRouter(t)
	handlers.SkipsClient = &fakeCatalogue{offerings: []models.SkipOffering{
		{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 120, VATPercent: 20},
	}}

	w, resp := doJSON(t, r, http.MethodGet, "/api/skips?postcode=LS1&area=Leeds", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["skips"], 1)
	assert.Len(t, resp["waste_categories"], 4)
}

func TestCreatePaymentIntentEndpoint(t *testing.T) {
	r := newRouter(t)
	handlers.PaymentGateway = &fakeGateway{intent: &payment.IntentResult{
		ID: "pi_123", ClientSecret: "cs_test", Amount: 39000, Currency: "gbp",
	}}

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", gin.H{
		"amount": 39000, "currency": "gbp",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test", resp["client_secret"])
	assert.Equal(t, "pi_123", resp["payment_intent_id"])

	for _, amount := range []int{0, -100} {
		w, _ = doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", gin.H{"amount": amount})
		assert.Equal(t, http.StatusBadRequest, w.Code, fmt.Sprintf("amount %d", amount))
	}
}

func TestSavePaymentMethodEndpoint(t *testing.T) {
	r := newRouter(t)
	handlers.PaymentGateway = &fakeGateway{customerID: "cus_9"}

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/save-payment-method", gin.H{
		"payment_method_id": "pm_1", "customer_email": "user@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "cus_9", resp["customer_id"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/payments/save-payment-method", gin.H{"customer_email": "user@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpoint(t *testing.T) {
	r := newRouter(t)
	handlers.PaymentGateway = &fakeGateway{}

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/webhook", gin.H{
		"type": "payment_intent.succeeded",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["received"])

	handlers.PaymentGateway = &fakeGateway{webhookErr: payment.ErrBadSignature}
	w, _ = doJSON(t, r, http.MethodPost, "/api/payments/webhook", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeStatusEndpoint(t *testing.T) {
	r := newRouter(t)
	handlers.PaymentGateway = &fakeGateway{}
	w, resp := doJSON(t, r, http.MethodGet, "/api/payments/stripe-status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["connected"])
}

func TestValidateCardEndpoint(t *testing.T) {
	r := newRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/validate-card", gin.H{
		"card": gin.H{"number": "4242 4242 4242 4242", "expiry": "12/99", "cvc": "123", "name": "J Smith"},
		"billing_address": gin.H{"line1": "12 High Street", "city": "Leeds", "postcode": "LS1 4AB"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "visa", resp["network"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/payments/validate-card", gin.H{
		"card": gin.H{"number": "4242424242424241"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["valid"])
	errs := resp["errors"].(map[string]interface{})
	assert.Contains(t, errs, "number")
	assert.Contains(t, errs, "billingPostcode")
}

func TestCreateBookingEchoes(t *testing.T) {
	r := newRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/bookings/create", gin.H{
		"booking": gin.H{
			"wasteTypes":   []string{"household"},
			"selectedDate": "2025-06-13",
		},
		"payment_intent_id": "pi_7",
		"payment_status":    "succeeded",
		"total_amount":      390.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, resp["booking_id"])
	assert.Equal(t, "confirmed", resp["status"])
	assert.Equal(t, "pi_7", resp["payment_intent_id"])
	assert.Equal(t, float64(390), resp["total_amount"])
	booking := resp["booking"].(map[string]interface{})
	assert.Equal(t, "2025-06-13", booking["selectedDate"])
}
