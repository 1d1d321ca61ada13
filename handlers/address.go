package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skiphire/services/address"
	"skiphire/utils"
)

// AddressResolver is swapped for a fake in tests.
var AddressResolver *address.Resolver

// AutocompleteAddresses serves live suggestions while the customer types.
// It always answers 200 with a (possibly empty) list.
func AutocompleteAddresses(c *gin.Context) {
	query := c.Query("q")
	candidates := AddressResolver.Autocomplete(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{"query": query, "addresses": candidates})
}

// SearchAddresses resolves a confirmed postcode, surfacing a failure when
// no provider can answer.
func SearchAddresses(c *gin.Context) {
	postcode := c.Query("postcode")
	if postcode == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "postcode is required")
		return
	}
	if !address.ValidatePostcode(postcode) {
		utils.JSONError(c, http.StatusBadRequest, "invalid postcode", "enter a valid UK postcode")
		return
	}

	candidates, err := AddressResolver.Search(c.Request.Context(), postcode, c.Query("area"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "address lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"postcode": postcode, "addresses": candidates})
}

// ValidatePostcode checks postcode shape without any network call.
func ValidatePostcode(c *gin.Context) {
	postcode := c.Query("postcode")
	c.JSON(http.StatusOK, gin.H{
		"postcode": postcode,
		"valid":    address.ValidatePostcode(postcode),
	})
}
