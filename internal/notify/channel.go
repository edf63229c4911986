// Package notify implements the widget's transient notification channel.
//
// The channel holds at most one live notification and one pending dismissal
// timer. Posting a new notification replaces the previous one entirely: its
// timer is cancelled and its OnDismiss action is dropped, never queued.
// Console-level notifications bypass the slot and are only logged.
package notify

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/models"
)

// Channel is the single-slot notification display. All methods are safe for
// concurrent use; user callbacks (OnDismiss, the change hook) are invoked
// outside the channel's lock so they may post or dismiss again.
type Channel struct {
	logger *logger.Logger

	mu    sync.Mutex
	live  *models.Notification
	timer *time.Timer
	seq   uint64

	// tick is the duration of one timeout second. Tests shrink it.
	tick time.Duration

	onChange func()
}

// New creates an empty Channel logging through log.
func New(log *logger.Logger) *Channel {
	return &Channel{logger: log, tick: time.Second}
}

// SetChangeHook registers fn to be called whenever the live notification
// appears or disappears. Used by the UI to trigger a re-render. Must be set
// before the channel is shared between goroutines.
func (c *Channel) SetChangeHook(fn func()) {
	c.onChange = fn
}

// Post publishes n. Any pending dismissal timer is cancelled and the
// previous notification (with its OnDismiss) is discarded. The notification
// is always logged — info level for info notifications, error level for the
// rest; console-level notifications stop there and are never displayed.
// Everything else becomes the live notification with a dismissal timer armed
// for its timeout.
func (c *Channel) Post(n models.Notification) {
	c.log(n)

	if n.EffectiveLevel() == models.LevelConsole {
		return
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.timer != nil {
		c.timer.Stop()
	}
	c.live = &n
	c.timer = time.AfterFunc(time.Duration(n.Timeout())*c.tick, func() {
		c.dismiss(seq)
	})
	c.mu.Unlock()

	c.changed()
}

// Dismiss closes the live notification: the timer is cancelled, the slot is
// cleared, and OnDismiss runs exactly once. No-op when nothing is live.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	seq := c.seq
	c.mu.Unlock()

	c.dismiss(seq)
}

// Live returns a copy of the live notification, if any.
func (c *Channel) Live() (models.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		return models.Notification{}, false
	}
	return *c.live, true
}

// dismiss closes the notification posted under seq. A stale seq means the
// slot has been replaced since; the late timer must not touch it.
func (c *Channel) dismiss(seq uint64) {
	c.mu.Lock()
	if c.seq != seq || c.live == nil {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	n := c.live
	c.live = nil
	c.mu.Unlock()

	if n.OnDismiss != nil {
		n.OnDismiss()
	}
	c.changed()
}

func (c *Channel) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Channel) log(n models.Notification) {
	event := c.logger.Error()
	if n.EffectiveLevel() == models.LevelInfo {
		event = c.logger.Info()
	}
	for k, v := range n.Fields {
		event = event.Str(k, v)
	}
	event.Str("level", string(n.EffectiveLevel())).Msg("notification")
}
