package models

// Quote is the deterministic price breakdown for a draft.
// All amounts are in whole pounds sterling.
type Quote struct {
	SkipPrice float64 `json:"skipPrice"`
	PermitFee float64 `json:"permitFee"`
	Subtotal  float64 `json:"subtotal"`
	VAT       float64 `json:"vat"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}
