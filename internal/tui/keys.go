package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter          key.Binding
	esc            key.Binding
	tab            key.Binding
	backtab        key.Binding
	quit           key.Binding
	create         key.Binding
	forgot         key.Binding
	changePassword key.Binding
	logout         key.Binding
	copy           key.Binding
}

var keys = keyMap{
	enter:          key.NewBinding(key.WithKeys("enter")),
	esc:            key.NewBinding(key.WithKeys("esc")),
	tab:            key.NewBinding(key.WithKeys("tab")),
	backtab:        key.NewBinding(key.WithKeys("shift+tab")),
	quit:           key.NewBinding(key.WithKeys("ctrl+c")),
	create:         key.NewBinding(key.WithKeys("ctrl+n")),
	forgot:         key.NewBinding(key.WithKeys("ctrl+f")),
	changePassword: key.NewBinding(key.WithKeys("ctrl+p")),
	logout:         key.NewBinding(key.WithKeys("ctrl+l")),
	copy:           key.NewBinding(key.WithKeys("c")),
}
