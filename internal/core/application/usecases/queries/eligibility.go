package queries

import (
	"time"

	"rotafila/internal/core/domain/model/courier"
)

// rowSchedule holds the persisted schedule columns of one courier row.
type rowSchedule struct {
	workdays        string
	useDefaultShift bool
	shiftStart      int
	shiftEnd        int
}

// eligibleAt decides whether an active Available row belongs in the rotation
// view: working today and inside the shift window. Mirrors the domain
// eligibility check without restoring the whole aggregate, so the views and
// the rotation engine agree on who is in the line.
func (r rowSchedule) eligibleAt(now time.Time, defaultShift courier.ShiftWindow) (bool, error) {
	workdays, err := courier.WorkdaysFromMask(r.workdays)
	if err != nil {
		return false, err
	}
	if !workdays.Worked(now.Weekday()) {
		return false, nil
	}

	window := defaultShift
	if !r.useDefaultShift {
		window, err = courier.NewShiftWindow(r.shiftStart, r.shiftEnd)
		if err != nil {
			return false, err
		}
	}
	return window.Contains(now), nil
}
