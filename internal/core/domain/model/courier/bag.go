package courier

import (
	"fmt"

	"rotafila/internal/pkg/errs"
)

// BagType is the thermal bag assigned at call time. Informational: it shows
// up in the notification text and the operator screens, nothing else keys on
// it.
type BagType int

const (
	BagUnknown BagType = iota
	BagNormal
	BagLarge
)

// BagTypeFromString parses a bag type from its request representation.
func BagTypeFromString(s string) (BagType, error) {
	switch s {
	case "normal", "Normal":
		return BagNormal, nil
	case "large", "Large":
		return BagLarge, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("bagType", fmt.Errorf("%q is not a valid bag type", s))
}

// Validate checks that the bag type is one of the known values.
func (b BagType) Validate() error {
	if b != BagNormal && b != BagLarge {
		return errs.NewValueIsInvalidErrorWithCause("bagType", fmt.Errorf("%d is not a valid bag type", b))
	}
	return nil
}

func (b BagType) String() string {
	switch b {
	case BagNormal:
		return "Normal"
	case BagLarge:
		return "Large"
	default:
		return "Unknown"
	}
}
