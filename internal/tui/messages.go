package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-login-widget/internal/widget"
)

// stateChangedMsg is sent by the machine and notification change hooks to
// trigger a re-render.
type stateChangedMsg struct{}

// Refresh returns the message that change hooks send into the program to
// trigger a re-render.
func Refresh() tea.Msg {
	return stateChangedMsg{}
}

// redirectMsg asks the UI to leave for url (login success, acknowledged
// password change).
type redirectMsg struct {
	url string
}

// focusMsg moves input focus to the field with the given role.
type focusMsg struct {
	role widget.Role
}

// copiedMsg confirms a clipboard copy of the live notification's fields.
type copiedMsg struct {
	err error
}
