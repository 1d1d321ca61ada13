package payment

import (
	"strings"
	"time"

	"skiphire/models"
)

// CardNetwork identifies the card scheme detected from the number prefix.
// Detection is informational only and never blocks submission.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkAmex       CardNetwork = "amex"
	NetworkUnknown    CardNetwork = "unknown"
)

// ValidateCardNumber strips whitespace and checks length and the Luhn
// checksum. Valid numbers are 13 to 19 digits.
func ValidateCardNumber(number string) bool {
	clean := stripSpaces(number)
	if len(clean) < 13 || len(clean) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(clean) - 1; i >= 0; i-- {
		ch := clean[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry checks an MM/YY expiry against the reference time. A card
// expiring in the current month is still valid.
func ValidateExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}
	month, okM := parseTwoDigits(parts[0])
	year, okY := parseTwoDigits(parts[1])
	if !okM || !okY {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// ValidateCVC accepts 3 or 4 digits.
func ValidateCVC(cvc string) bool {
	if len(cvc) < 3 || len(cvc) > 4 {
		return false
	}
	for i := 0; i < len(cvc); i++ {
		if cvc[i] < '0' || cvc[i] > '9' {
			return false
		}
	}
	return true
}

// DetectCardNetwork maps a number prefix to a card scheme for display.
func DetectCardNetwork(number string) CardNetwork {
	clean := stripSpaces(number)
	switch {
	case strings.HasPrefix(clean, "4"):
		return NetworkVisa
	case len(clean) >= 2 && clean[0] == '5' && clean[1] >= '1' && clean[1] <= '5':
		return NetworkMastercard
	case strings.HasPrefix(clean, "34"), strings.HasPrefix(clean, "37"):
		return NetworkAmex
	default:
		return NetworkUnknown
	}
}

// ValidateCardForm validates the full card payment form and returns errors
// keyed by field name. An empty map means the form may be submitted.
func ValidateCardForm(card models.CardDetails, billing models.BillingAddress, now time.Time) map[string]string {
	errs := make(map[string]string)

	if card.Number == "" || !ValidateCardNumber(card.Number) {
		errs["number"] = "Please enter a valid card number"
	}
	if card.Expiry == "" || !ValidateExpiry(card.Expiry, now) {
		errs["expiry"] = "Please enter a valid expiry date"
	}
	if !ValidateCVC(card.CVC) {
		errs["cvc"] = "Please enter a valid CVC"
	}
	if strings.TrimSpace(card.Name) == "" {
		errs["name"] = "Please enter the cardholder name"
	}

	if strings.TrimSpace(billing.Line1) == "" {
		errs["billingLine1"] = "Please enter your address"
	}
	if strings.TrimSpace(billing.City) == "" {
		errs["billingCity"] = "Please enter your city"
	}
	if strings.TrimSpace(billing.Postcode) == "" {
		errs["billingPostcode"] = "Please enter your postcode"
	}

	return errs
}

// FormatCardNumber re-groups a card number into blocks of four digits as
// the user types.
func FormatCardNumber(value string) string {
	clean := digitsOnly(value)
	if len(clean) > 16 {
		clean = clean[:16]
	}
	var parts []string
	for i := 0; i < len(clean); i += 4 {
		end := i + 4
		if end > len(clean) {
			end = len(clean)
		}
		parts = append(parts, clean[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry inserts the slash into a typed MM/YY expiry.
func FormatExpiry(value string) string {
	clean := digitsOnly(value)
	if len(clean) > 4 {
		clean = clean[:4]
	}
	if len(clean) > 2 {
		return clean[:2] + "/" + clean[2:]
	}
	return clean
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseTwoDigits(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
