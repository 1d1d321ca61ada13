package models

// Address is a resolved postal address as confirmed by the customer.
type Address struct {
	Postcode    string         `json:"postcode"`
	Area        string         `json:"area"`
	FullAddress string         `json:"full_address"`
	Details     AddressDetails `json:"details"`
}

// AddressDetails carries the editable address lines.
type AddressDetails struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// AddressCandidate is a single autocomplete suggestion.
type AddressCandidate struct {
	ID          string `json:"id"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	Line3       string `json:"line3,omitempty"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	FullAddress string `json:"full_address"`
	Type        string `json:"type"` // "address" or "postcode_area"
}
