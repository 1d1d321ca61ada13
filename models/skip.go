package models

// SkipOffering describes one hireable skip as returned by the catalogue.
// Offerings are immutable once fetched.
type SkipOffering struct {
	ID             int     `json:"id"`
	Size           int     `json:"size"` // cubic yards
	HirePeriodDays int     `json:"hire_period_days"`
	PriceBeforeVAT float64 `json:"price_before_vat"`
	VATPercent     float64 `json:"vat"`
	AllowedOnRoad  bool    `json:"allowed_on_road"`
	AllowsHeavy    bool    `json:"allows_heavy_waste"`
}
