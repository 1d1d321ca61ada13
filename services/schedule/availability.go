package schedule

import (
	"time"

	"skiphire/models"
)

const (
	// StandardLeadDays is the minimum lead time for a plain delivery.
	StandardLeadDays = 2
	// PermitLeadDays is the minimum lead time when a road permit is needed.
	PermitLeadDays = 7
	// HirePeriodDays is the fixed hire period between delivery and collection.
	HirePeriodDays = 14
	// PermitProcessingDays is the council's working-day processing window.
	PermitProcessingDays = 5
	// DeliveryTimeSlot is the only delivery window offered.
	DeliveryTimeSlot = "7am-6pm"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// MinLeadDays returns the minimum number of calendar days between today and
// the earliest selectable delivery date.
func MinLeadDays(permitRequired bool) int {
	if permitRequired {
		return PermitLeadDays
	}
	return StandardLeadDays
}

// MinDate returns the earliest selectable delivery date for the given
// reference day. Calendar arithmetic is done on date-only values so the
// result never shifts across a day boundary.
func MinDate(today time.Time, permitRequired bool) time.Time {
	return dateOnly(today).AddDate(0, 0, MinLeadDays(permitRequired))
}

// AvailableDates enumerates every selectable delivery date in the displayed
// month. A day qualifies when it is on or after the minimum lead date and
// does not fall on a weekend. The set is recomputed in full on every call.
func AvailableDates(today time.Time, year int, month time.Month, permitRequired bool) []time.Time {
	min := MinDate(today, permitRequired)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Before(min) {
			continue
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// IsAvailable reports whether the candidate date is in the availability set
// current for its own month.
func IsAvailable(today, candidate time.Time, permitRequired bool) bool {
	c := dateOnly(candidate)
	if c.Before(MinDate(today, permitRequired)) {
		return false
	}
	wd := c.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CollectionDate derives the collection date for a confirmed delivery date:
// exactly the fixed hire period later, regardless of weekday or month
// boundary.
func CollectionDate(delivery time.Time) time.Time {
	return dateOnly(delivery).AddDate(0, 0, HirePeriodDays)
}

// EarliestPermitDate is the earliest delivery date quoted to the customer
// when a road permit is needed: seven calendar days from today.
func EarliestPermitDate(today time.Time) time.Time {
	return dateOnly(today).AddDate(0, 0, PermitLeadDays)
}

// PermitDetailsFor builds the permit summary merged into the draft on the
// permit step.
func PermitDetailsFor(today time.Time) *models.PermitDetails {
	return &models.PermitDetails{
		ProcessingTimeDays: PermitProcessingDays,
		EarliestDate:       EarliestPermitDate(today).Format(DateLayout),
	}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
