package courier

import (
	"fmt"
	"time"

	"rotafila/internal/pkg/errs"
)

// Workdays marks which weekdays a courier works, indexed by time.Weekday
// (Sunday first).
type Workdays [7]bool

// EveryDay returns a schedule with all seven days worked, the default for a
// newly registered courier.
func EveryDay() Workdays {
	return Workdays{true, true, true, true, true, true, true}
}

// Worked reports whether the courier works on the given weekday.
func (w Workdays) Worked(day time.Weekday) bool {
	return w[day]
}

// Mask renders the schedule as a seven character string of '1' and '0',
// Sunday first. Used for persistence.
func (w Workdays) Mask() string {
	b := make([]byte, 7)
	for i, worked := range w {
		if worked {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// WorkdaysFromMask parses the persisted form produced by Mask.
func WorkdaysFromMask(mask string) (Workdays, error) {
	if len(mask) != 7 {
		return Workdays{}, errs.NewValueIsInvalidErrorWithCause("workdays",
			fmt.Errorf("mask %q must have 7 characters", mask))
	}
	var w Workdays
	for i := range 7 {
		switch mask[i] {
		case '1':
			w[i] = true
		case '0':
			w[i] = false
		default:
			return Workdays{}, errs.NewValueIsInvalidErrorWithCause("workdays",
				fmt.Errorf("mask %q contains %q", mask, mask[i]))
		}
	}
	return w, nil
}
