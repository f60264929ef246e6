package schedule_test

import (
	"sync/atomic"
	"testing"
	"time"

	"rotafila/internal/adapters/out/schedule"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TimerScheduler_FiresAfterDelay(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()
	defer scheduler.CancelAll()

	var fired atomic.Int32
	scheduler.After(kernel.NewUUID(), 10*time.Millisecond, func() {
		fired.Add(1)
	})

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, scheduler.Pending())
}

func Test_TimerScheduler_ReschedulingReplacesPendingTimer(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()
	defer scheduler.CancelAll()

	courierID := kernel.NewUUID()
	var first, second atomic.Int32

	scheduler.After(courierID, 10*time.Millisecond, func() { first.Add(1) })
	scheduler.After(courierID, 20*time.Millisecond, func() { second.Add(1) })

	require.Eventually(t, func() bool {
		return second.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, first.Load())
}

func Test_TimerScheduler_RearmedRightAfterFireStaysCancellable(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()
	defer scheduler.CancelAll()

	// Re-arm while the first fire may still be in flight. The fired timer
	// must not take the replacement's registry entry down with it.
	const couriers = 50
	var secondFired atomic.Int32
	for range couriers {
		courierID := kernel.NewUUID()
		scheduler.After(courierID, 0, func() {})
		scheduler.After(courierID, time.Hour, func() { secondFired.Add(1) })
	}

	time.Sleep(50 * time.Millisecond)

	require.Equal(t, couriers, scheduler.Pending())

	scheduler.CancelAll()

	assert.Zero(t, scheduler.Pending())
	assert.Zero(t, secondFired.Load())
}

func Test_TimerScheduler_Cancel(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()
	defer scheduler.CancelAll()

	courierID := kernel.NewUUID()
	var fired atomic.Int32

	scheduler.After(courierID, 20*time.Millisecond, func() { fired.Add(1) })
	scheduler.Cancel(courierID)

	assert.Zero(t, scheduler.Pending())
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func Test_TimerScheduler_CancelUnknownCourierIsHarmless(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()

	scheduler.Cancel(kernel.NewUUID())

	assert.Zero(t, scheduler.Pending())
}

func Test_TimerScheduler_CancelAll(t *testing.T) {
	scheduler := schedule.NewTimerScheduler()

	var fired atomic.Int32
	for range 3 {
		scheduler.After(kernel.NewUUID(), 20*time.Millisecond, func() { fired.Add(1) })
	}
	require.Equal(t, 3, scheduler.Pending())

	scheduler.CancelAll()

	assert.Zero(t, scheduler.Pending())
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load())
}
