// Package client implements the interactive widget application runtime.
//
// It wires the auth service adapter, local preferences storage, the
// notification channel, and the widget state machine into a single Bubble Tea
// process lifecycle.
package client
