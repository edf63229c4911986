package models

// Level classifies how a notification is delivered to the user.
type Level string

const (
	// LevelInfo marks confirmations and other benign outcomes. Rendered to
	// the user and logged at info level.
	LevelInfo Level = "info"

	// LevelError marks failures that need user attention. Rendered to the
	// user and logged at error level. This is the default when a
	// notification carries no explicit level.
	LevelError Level = "error"

	// LevelConsole marks expected/frequent failures (e.g. username lookups
	// while the user is still typing). Logged only, never rendered.
	LevelConsole Level = "console"
)

// DefaultNotificationTimeout is the dismissal timeout, in seconds, applied
// to notifications that do not supply their own.
const DefaultNotificationTimeout = 30

// Notification is a transient, single-slot user-facing message. At most one
// notification is live at a time; posting a new one replaces the previous
// one entirely, including its OnDismiss action.
type Notification struct {
	// Level selects the delivery path. Empty is treated as LevelError.
	Level Level

	// Fields is an open mapping of diagnostic key/value pairs (url, method,
	// status, message, ...). The shape is deliberately not fixed: HTTP
	// failures, local short-circuits, and confirmations all carry different
	// payloads through the same display path.
	Fields map[string]string

	// TimeoutSeconds is how long the notification stays up before it is
	// auto-dismissed. Zero means DefaultNotificationTimeout.
	TimeoutSeconds int

	// OnDismiss is invoked exactly once when the notification closes,
	// whether by timer or by the user. Nil means no action.
	OnDismiss func()
}

// Timeout returns the effective timeout in seconds, applying the default
// when the notification does not carry one.
func (n Notification) Timeout() int {
	if n.TimeoutSeconds <= 0 {
		return DefaultNotificationTimeout
	}
	return n.TimeoutSeconds
}

// EffectiveLevel returns the notification level, mapping the empty value to
// LevelError.
func (n Notification) EffectiveLevel() Level {
	if n.Level == "" {
		return LevelError
	}
	return n.Level
}
