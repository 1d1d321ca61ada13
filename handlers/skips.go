package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"skiphire/models"
)

// SkipCatalogue is what the skip listing needs from the catalogue client.
// Swapped for a fake in tests.
type SkipCatalogue interface {
	FetchByLocation(ctx context.Context, postcode, area string) []models.SkipOffering
}

var SkipsClient SkipCatalogue

// ListSkips returns the skips available at a location, including the waste
// categories offered on the selection step.
func ListSkips(c *gin.Context) {
	offerings := SkipsClient.FetchByLocation(c.Request.Context(), c.Query("postcode"), c.Query("area"))
	c.JSON(http.StatusOK, gin.H{
		"skips":            offerings,
		"waste_categories": models.WasteCategories,
	})
}
