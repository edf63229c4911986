package widget

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce_OnlyTrailingCallRuns(t *testing.T) {
	d := NewDebounce(5 * time.Millisecond)

	var fired atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { fired.Add(1) })
	}

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebounce_CancelDropsPending(t *testing.T) {
	d := NewDebounce(5 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebounce_ReArmAfterCancel(t *testing.T) {
	d := NewDebounce(time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Cancel()
	d.Trigger(func() { fired.Add(1) })

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, time.Millisecond)
}

func TestDebounce_CancelWithoutPendingIsNoop(t *testing.T) {
	d := NewDebounce(time.Millisecond)
	d.Cancel() // must not panic
}
