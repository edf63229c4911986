package widget

import (
	"sync"
	"time"
)

// Debounce collapses rapid repeated triggers into one trailing call: each
// Trigger cancels the pending timer, if any, and arms a new one. Only the
// timer that survives until expiry runs its function.
type Debounce struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

func NewDebounce(interval time.Duration) *Debounce {
	return &Debounce{interval: interval}
}

// Trigger schedules fn to run after the debounce interval, replacing any
// previously scheduled call.
func (d *Debounce) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Cancel drops the pending call, if any.
func (d *Debounce) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
