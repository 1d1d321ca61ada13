package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skiphire/models"
	"skiphire/utils"
)

// timeNow is pinned in tests.
var timeNow = time.Now

type createBookingRequest struct {
	Booking         models.BookingDraft    `json:"booking"`
	PaymentIntentID string                 `json:"payment_intent_id"`
	PaymentStatus   string                 `json:"payment_status"`
	TotalAmount     float64                `json:"total_amount"`
	BillingAddress  *models.BillingAddress `json:"billing_address"`
}

// CreateBooking accepts a completed booking. There is no persistence
// behind this endpoint: the booking is logged and echoed back with a
// generated reference.
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bookingID := uuid.New().String()
	logger := utils.GetLogger()
	logger.Info("booking received",
		zap.String("booking_id", bookingID),
		zap.String("payment_intent", req.PaymentIntentID),
		zap.String("payment_status", req.PaymentStatus),
		zap.Float64("total_amount", req.TotalAmount),
		zap.Strings("waste_types", req.Booking.WasteTypes),
		zap.String("delivery_date", req.Booking.SelectedDate),
	)

	c.JSON(http.StatusCreated, gin.H{
		"booking_id":        bookingID,
		"status":            "confirmed",
		"created_at":        timeNow().UTC().Format(time.RFC3339),
		"payment_intent_id": req.PaymentIntentID,
		"payment_status":    req.PaymentStatus,
		"total_amount":      req.TotalAmount,
		"booking":           req.Booking,
	})
}
