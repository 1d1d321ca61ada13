package models

// BookingDraft is the in-progress booking accumulated across wizard steps.
// It is owned by a single wizard session and mutated only by the active
// step's handler; PermitDetails is non-nil exactly when PermitRequired.
type BookingDraft struct {
	Address        *Address        `json:"address"`
	WasteTypes     []string        `json:"wasteTypes"`
	SelectedSkip   *SkipOffering   `json:"selectedSkip"`
	PermitRequired bool            `json:"permitRequired"`
	PermitDetails  *PermitDetails  `json:"permitDetails"`
	SelectedDate   string          `json:"selectedDate,omitempty"` // 2006-01-02
	TimeSlot       string          `json:"timeSlot,omitempty"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
}

// NewBookingDraft returns an empty draft for a fresh session.
func NewBookingDraft() BookingDraft {
	return BookingDraft{WasteTypes: []string{}}
}

// PermitDetails captures the council permit lead time for on-road placement.
type PermitDetails struct {
	ProcessingTimeDays int    `json:"processingTimeDays"`
	EarliestDate       string `json:"earliestDate"` // 2006-01-02
}

// PaymentDetails is the outcome of a completed payment, set at most once.
type PaymentDetails struct {
	Method         string          `json:"method"`
	Amount         float64         `json:"amount"`
	CardLast4      string          `json:"cardLast4,omitempty"`
	TransactionID  string          `json:"transactionId"`
	ProcessedAt    string          `json:"processedAt"`
	BillingAddress *BillingAddress `json:"billingAddress,omitempty"`
	Status         string          `json:"status"`
	BookingID      string          `json:"bookingId,omitempty"`
}
