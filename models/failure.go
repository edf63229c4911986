package models

import (
	"fmt"
	"strconv"
)

// Failure is the classified outcome of a remote auth-service call. It keeps
// enough of the request/response to be rendered through the notification
// channel: heterogeneous failures (HTTP errors, transport errors, local
// short-circuits) all reduce to this one shape.
//
// Failure implements error so the adapter can return it through ordinary
// error plumbing.
type Failure struct {
	// URL is the request URL as seen by the client.
	URL string

	// Method is the HTTP method of the failed call.
	Method string

	// Status is the HTTP status code, or 0 when the request never reached
	// the server (transport error).
	Status int

	// Message is the response body or transport error text.
	Message string

	// Level overrides the notification level for this failure. Empty means
	// LevelError; lookups use LevelConsole since a miss is the normal case
	// while the user is typing.
	Level Level
}

func (f *Failure) Error() string {
	if f.Status == 0 {
		return fmt.Sprintf("%s %s: %s", f.Method, f.URL, f.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", f.Method, f.URL, f.Status, f.Message)
}

// Fields flattens the failure into the open key/value mapping a
// Notification carries. Zero-valued entries are omitted so transport errors
// do not render a bogus status.
func (f *Failure) Fields() map[string]string {
	fields := make(map[string]string, 4)
	if f.URL != "" {
		fields["url"] = f.URL
	}
	if f.Method != "" {
		fields["method"] = f.Method
	}
	if f.Status != 0 {
		fields["status"] = strconv.Itoa(f.Status)
	}
	if f.Message != "" {
		fields["message"] = f.Message
	}
	return fields
}

// Notification wraps the failure into a Notification at the failure's level
// with the supplied dismissal action.
func (f *Failure) Notification(onDismiss func()) Notification {
	return Notification{
		Level:     f.Level,
		Fields:    f.Fields(),
		OnDismiss: onDismiss,
	}
}
