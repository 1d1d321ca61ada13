package wizard

import "errors"

var (
	// ErrSessionNotFound is returned when no wizard session exists for the id.
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrWrongStep is returned when a step submission arrives while a
	// different step is active.
	ErrWrongStep = errors.New("wizard: action does not match the active step")

	// ErrNoWasteSelected rejects an empty waste-category selection.
	ErrNoWasteSelected = errors.New("wizard: select at least one waste type")

	// ErrUnknownWasteCategory rejects a category id outside the known set.
	ErrUnknownWasteCategory = errors.New("wizard: unknown waste category")

	// ErrDateUnavailable rejects a delivery date outside the availability set.
	ErrDateUnavailable = errors.New("wizard: delivery date is not available")

	// ErrPaymentAlreadyRecorded guards the one-shot payment merge.
	ErrPaymentAlreadyRecorded = errors.New("wizard: payment already recorded for this booking")
)
