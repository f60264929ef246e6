package services

import (
	"errors"
	"sort"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"
)

// ErrQueueIsEmpty is returned when a call is requested and no eligible
// courier is waiting in the unit queue. Callers surface it as an explicit
// "nobody available" outcome rather than a failure.
var ErrQueueIsEmpty = errors.New("no available courier in the queue")

// RotationPolicy is a domain service owning the queue ordering rules.
//
// Business rules:
//   - only Available couriers that pass the eligibility check hold a place
//     in the line
//   - the line is ordered by queue position ascending, oldest first
//   - the head of the line is the next courier to call
//   - a full reorder rewrites every position to a fresh strictly increasing
//     sequence, so later tail re-entries always land behind it
type RotationPolicy struct{}

// NewRotationPolicy creates a new RotationPolicy instance.
func NewRotationPolicy() RotationPolicy {
	return RotationPolicy{}
}

// Queue filters and orders the unit line: Available couriers eligible at
// now, sorted by queue position ascending. Position ties break by ID so the
// order stays stable across reads.
func (p RotationPolicy) Queue(couriers []*courier.Courier, now time.Time, defaultShift courier.ShiftWindow) []*courier.Courier {
	queue := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if c.Status() != courier.StatusAvailable {
			continue
		}
		if !c.EligibleAt(now, defaultShift) {
			continue
		}
		queue = append(queue, c)
	}

	sort.Slice(queue, func(i, j int) bool {
		pi, pj := queue[i].QueuePosition(), queue[j].QueuePosition()
		if pi.Equal(pj) {
			return queue[i].ID().String() < queue[j].ID().String()
		}
		return pi.Before(pj)
	})

	return queue
}

// Next returns the head of the line, or ErrQueueIsEmpty.
func (p RotationPolicy) Next(queue []*courier.Courier) (*courier.Courier, error) {
	if len(queue) == 0 {
		return nil, ErrQueueIsEmpty
	}
	return queue[0], nil
}

// SecondInLine returns the courier right behind the head, or nil when the
// line is shorter than two. Used for the heads-up notification.
func (p RotationPolicy) SecondInLine(queue []*courier.Courier) *courier.Courier {
	if len(queue) < 2 {
		return nil
	}
	return queue[1]
}

// Reorder rewrites the queue positions of the given line to follow
// orderedIDs, assigning base, base+1s, base+2s and so on. Every courier in
// the line must appear in orderedIDs exactly once.
func (p RotationPolicy) Reorder(queue []*courier.Courier, orderedIDs []kernel.UUID, base time.Time) error {
	if len(orderedIDs) != len(queue) {
		return errs.NewValueIsInvalidError("orderedIDs")
	}

	byID := make(map[kernel.UUID]*courier.Courier, len(queue))
	for _, c := range queue {
		byID[c.ID()] = c
	}

	for i, id := range orderedIDs {
		c, ok := byID[id]
		if !ok {
			return errs.NewObjectNotFoundError("courierID", id)
		}
		delete(byID, id)

		if err := c.MoveToPosition(base.Add(time.Duration(i) * time.Second)); err != nil {
			return err
		}
	}

	return nil
}
