package kernel

import (
	"strings"

	"rotafila/internal/pkg/errs"
)

// countryCode is assumed for numbers stored without one.
const countryCode = "55"

// minPhoneDigits is area code plus local number.
const minPhoneDigits = 10

// ErrPhoneIsNotConstructed is returned when validating a zero-value Phone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is a courier's contact number, normalized to digits only. It is both
// the notification target and the deduplication key for self-service lookup.
type Phone struct {
	digits string
}

// NewPhone normalizes the input to digits and validates its length.
func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < minPhoneDigits {
		return Phone{}, errs.NewValueIsInvalidError("phone")
	}

	return Phone{digits: digits}, nil
}

// String returns the normalized digits as stored.
func (p Phone) String() string {
	return p.digits
}

// WhatsAppNumber returns the digits with the country code prefixed when
// missing, the format the messaging gateway expects.
func (p Phone) WhatsAppNumber() string {
	if strings.HasPrefix(p.digits, countryCode) {
		return p.digits
	}
	return countryCode + p.digits
}

// IsEqual compares two phones by their normalized digits.
func (p Phone) IsEqual(other Phone) bool {
	return p.digits == other.digits
}

// Validate returns ErrPhoneIsNotConstructed for a zero-value Phone.
func (p Phone) Validate() error {
	if p.digits == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}
