package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-login-widget/internal/widget"
)

// programNavigator implements [widget.Navigator] by injecting messages into
// the running Bubble Tea program. The machine calls it from its own
// goroutines; Program.Send is safe for that.
type programNavigator struct {
	send func(tea.Msg)
}

func NewNavigator(send func(tea.Msg)) widget.Navigator {
	return &programNavigator{send: send}
}

func (n *programNavigator) Navigate(url string) {
	n.send(redirectMsg{url: url})
}

func (n *programNavigator) Focus(role widget.Role) {
	n.send(focusMsg{role: role})
}
