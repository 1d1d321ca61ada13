package pricing

import (
	"math"

	"skiphire/models"
)

// PermitFee is the fixed council road-permit charge in pounds.
const PermitFee = 84.0

// VATRate is the VAT fraction applied to the pre-tax subtotal.
const VATRate = 0.20

// Currency is the only currency the booking flow quotes in.
const Currency = "gbp"

// Quote derives the price breakdown for a selected skip. VAT is rounded to
// the nearest whole pound, half rounding up, so totals never drift between
// repeated calls with the same inputs.
func Quote(skip models.SkipOffering, permitRequired bool) models.Quote {
	skipPrice := skip.PriceBeforeVAT

	var permitFee float64
	if permitRequired {
		permitFee = PermitFee
	}

	subtotal := skipPrice + permitFee
	vat := roundHalfUp(subtotal * VATRate)

	return models.Quote{
		SkipPrice: skipPrice,
		PermitFee: permitFee,
		Subtotal:  subtotal,
		VAT:       vat,
		Total:     subtotal + vat,
		Currency:  Currency,
	}
}

// PenceAmount converts a quote total to integer minor units for the payment
// gateway.
func PenceAmount(q models.Quote) int64 {
	return int64(roundHalfUp(q.Total * 100))
}

// roundHalfUp rounds a non-negative amount to the nearest whole unit with
// halves rounding up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
