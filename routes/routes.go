package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"skiphire/handlers"
	"skiphire/utils"
)

// RegisterWizardRoutes registers the booking wizard session endpoints.
func RegisterWizardRoutes(r *gin.Engine) {
	api := r.Group("/api/wizard")
	{
		api.POST("/session", handlers.StartWizardSession)
		api.GET("/session/:id", handlers.GetWizardSession)
		api.DELETE("/session/:id", handlers.EndWizardSession)

		// One endpoint per step, in flow order.
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
	}
}

// RegisterAddressRoutes registers address lookup endpoints.
func RegisterAddressRoutes(r *gin.Engine) {
	api := r.Group("/api/addresses")
	{
		api.GET("/autocomplete", handlers.AutocompleteAddresses)
		api.GET("/search", handlers.SearchAddresses)
		api.GET("/validate", handlers.ValidatePostcode)
	}
}

// RegisterSkipRoutes registers the catalogue endpoint.
func RegisterSkipRoutes(r *gin.Engine) {
	r.GET("/api/skips", handlers.ListSkips)
}

// RegisterPaymentRoutes registers the payment gateway endpoints.
func RegisterPaymentRoutes(r *gin.Engine) {
	api := r.Group("/api/payments")
	{
		api.POST("/create-payment-intent", handlers.CreatePaymentIntent)
		api.POST("/save-payment-method", handlers.SavePaymentMethod)
		api.POST("/validate-card", handlers.ValidateCardForm)
		api.POST("/webhook", handlers.StripeWebhook)
		api.GET("/stripe-status", handlers.StripeStatus)
	}
}

// RegisterBookingRoutes registers the booking submission endpoint.
func RegisterBookingRoutes(r *gin.Engine) {
	r.POST("/api/bookings/create", handlers.CreateBooking)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWizardRoutes(r)
	RegisterAddressRoutes(r)
	RegisterSkipRoutes(r)
	RegisterPaymentRoutes(r)
	RegisterBookingRoutes(r)
	RegisterHealthRoute(r)
}
