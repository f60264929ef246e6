// Package schedule provides the in-memory timer behind courier status
// auto-advance. Timers do not survive a restart, the reconciliation job
// re-derives them from open delivery events.
package schedule

import (
	"sync"
	"time"

	"rotafila/internal/core/domain/model/kernel"
)

// TimerScheduler keeps at most one pending timer per courier.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[kernel.UUID]*time.Timer
}

// NewTimerScheduler creates an empty scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[kernel.UUID]*time.Timer),
	}
}

// After schedules fn to run after delay, replacing any pending timer for the
// courier. The callback runs on its own goroutine.
func (s *TimerScheduler) After(courierID kernel.UUID, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[courierID]; ok {
		timer.Stop()
	}

	// The callback removes only its own registry entry. A replacement
	// armed between fire and lock acquisition must stay cancellable.
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.timers[courierID] == timer {
			delete(s.timers, courierID)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[courierID] = timer
}

// Cancel drops the pending timer for the courier, if any.
func (s *TimerScheduler) Cancel(courierID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[courierID]; ok {
		timer.Stop()
		delete(s.timers, courierID)
	}
}

// CancelAll drops every pending timer.
func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Pending reports the number of armed timers.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

