package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"skiphire/models"
	"skiphire/services/payment"
	"skiphire/utils"
)

// PaymentGateway is swapped for a fake in tests.
var PaymentGateway payment.Gateway

type createIntentRequest struct {
	Amount         int64                  `json:"amount"`
	Currency       string                 `json:"currency"`
	Metadata       map[string]string      `json:"metadata"`
	BookingData    map[string]interface{} `json:"booking_data"`
	BillingAddress *models.BillingAddress `json:"billing_address"`
}

// CreatePaymentIntent opens a payment intent for the booking total.
// Amounts are integer minor units; non-positive amounts are rejected.
func CreatePaymentIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	if req.BillingAddress != nil {
		metadata["billing_postcode"] = req.BillingAddress.Postcode
	}

	result, err := PaymentGateway.CreatePaymentIntent(c.Request.Context(), payment.CreateIntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: metadata,
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			utils.JSONError(c, http.StatusBadRequest, "invalid amount", "amount must be a positive integer of pence")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "payment intent failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret":     result.ClientSecret,
		"payment_intent_id": result.ID,
	})
}

// SavePaymentMethod attaches a payment method to the customer identified
// by email, creating the customer when needed.
func SavePaymentMethod(c *gin.Context) {
	var req struct {
		PaymentMethodID string `json:"payment_method_id"`
		CustomerEmail   string `json:"customer_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	customerID, err := PaymentGateway.SavePaymentMethod(c.Request.Context(), req.PaymentMethodID, req.CustomerEmail)
	if err != nil {
		if errors.Is(err, payment.ErrMissingPaymentMethod) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "payment_method_id is required")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to save payment method", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer_id": customerID})
}

// StripeWebhook receives payment events. The raw body is required for
// signature verification, so this handler must run without body-parsing
// middleware.
func StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable body", err.Error())
		return
	}

	if _, err := PaymentGateway.ParseWebhook(body, c.GetHeader("Stripe-Signature")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "webhook rejected", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// StripeStatus probes connectivity to the payment processor.
func StripeStatus(c *gin.Context) {
	if err := PaymentGateway.CheckConnection(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"connected": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

// ValidateCardForm checks a card form server-side and returns per-field
// errors keyed by field name. An empty map means the form may be submitted.
func ValidateCardForm(c *gin.Context) {
	var req struct {
		Card    models.CardDetails    `json:"card"`
		Billing models.BillingAddress `json:"billing_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	fieldErrors := payment.ValidateCardForm(req.Card, req.Billing, timeNow())
	c.JSON(http.StatusOK, gin.H{
		"valid":   len(fieldErrors) == 0,
		"errors":  fieldErrors,
		"network": payment.DetectCardNetwork(req.Card.Number),
	})
}
