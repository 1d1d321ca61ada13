package payment

import "errors"

var (
	// ErrInvalidAmount is returned when a payment intent is requested for a
	// zero or negative amount.
	ErrInvalidAmount = errors.New("payment: amount must be a positive number of pence")

	// ErrMissingPaymentMethod is returned when no payment method id was
	// supplied for saving.
	ErrMissingPaymentMethod = errors.New("payment: payment method id is required")

	// ErrBadSignature is returned when a webhook payload fails signature
	// verification.
	ErrBadSignature = errors.New("payment: webhook signature verification failed")
)
