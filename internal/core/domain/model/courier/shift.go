package courier

import (
	"fmt"
	"strings"
	"time"

	"rotafila/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

// ShiftWindow is a daily working window expressed in minutes since midnight.
// A window whose end precedes its start wraps past midnight: 16:00-02:00
// covers the evening plus the first two hours of the next day.
type ShiftWindow struct {
	start int
	end   int
}

// NewShiftWindow creates a window from start and end minutes since midnight.
// Both bounds are inclusive.
func NewShiftWindow(start, end int) (ShiftWindow, error) {
	if start < 0 || start >= minutesPerDay {
		return ShiftWindow{}, errs.NewValueIsOutOfRangeError("start", start, 0, minutesPerDay-1)
	}
	if end < 0 || end >= minutesPerDay {
		return ShiftWindow{}, errs.NewValueIsOutOfRangeError("end", end, 0, minutesPerDay-1)
	}
	return ShiftWindow{start: start, end: end}, nil
}

// ParseShiftWindow parses a window in the "HH:MM-HH:MM" form, for example
// "16:00-02:00".
func ParseShiftWindow(s string) (ShiftWindow, error) {
	startPart, endPart, ok := strings.Cut(s, "-")
	if !ok {
		return ShiftWindow{}, errs.NewValueIsInvalidErrorWithCause("shift",
			fmt.Errorf("%q is not in the HH:MM-HH:MM form", s))
	}

	start, err := parseClock(startPart)
	if err != nil {
		return ShiftWindow{}, err
	}
	end, err := parseClock(endPart)
	if err != nil {
		return ShiftWindow{}, err
	}
	return NewShiftWindow(start, end)
}

func parseClock(s string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("shift", fmt.Errorf("%q is not a HH:MM time", s))
	}
	if hour < 0 || hour > 23 {
		return 0, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return 0, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return hour*60 + minute, nil
}

// Start returns the window start in minutes since midnight.
func (w ShiftWindow) Start() int { return w.start }

// End returns the window end in minutes since midnight.
func (w ShiftWindow) End() int { return w.end }

// Contains reports whether the wall-clock time of at falls inside the
// window. Only the clock matters; the date is used to extract it.
func (w ShiftWindow) Contains(at time.Time) bool {
	m := at.Hour()*60 + at.Minute()
	if w.start <= w.end {
		return m >= w.start && m <= w.end
	}
	// Overnight window.
	return m >= w.start || m <= w.end
}

// String renders the window back in the "HH:MM-HH:MM" form.
func (w ShiftWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.start/60, w.start%60, w.end/60, w.end%60)
}
