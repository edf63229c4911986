// Package tui renders the login widget as a Bubble Tea form. It is
// presentation only: every keystroke and affordance key is translated into a
// widget event and dispatched through the router; the machine's state drives
// what is drawn. Re-renders are triggered by the machine and notification
// change hooks via Program.Send.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/internal/notify"
	"github.com/MKhiriev/go-login-widget/internal/widget"
	"github.com/MKhiriev/go-login-widget/models"
)

// fieldCount is the number of text inputs the form carries.
const fieldCount = 6

// input slots, in focus order
const (
	slotUsername = iota
	slotPassword
	slotConfirm
	slotVerify
	slotCell
	slotEmail
)

var slotRoles = [fieldCount]widget.Role{
	slotUsername: widget.RoleUsername,
	slotPassword: widget.RolePassword,
	slotConfirm:  widget.RoleConfirm,
	slotVerify:   widget.RoleVerify,
	slotCell:     widget.RoleCell,
	slotEmail:    widget.RoleEmail,
}

var slotLabels = [fieldCount]string{
	slotUsername: "Username",
	slotPassword: "Password",
	slotConfirm:  "New password",
	slotVerify:   "Verify",
	slotCell:     "Cell",
	slotEmail:    "Email",
}

// Model is the Bubble Tea model for the widget form.
type Model struct {
	machine *widget.Machine
	router  *widget.Router
	notify  *notify.Channel
	logger  *logger.Logger

	inputs [fieldCount]textinput.Model
	focus  int

	// RedirectURL is set when the machine navigates away; the caller reads
	// it after the program exits.
	RedirectURL string

	copyErr error
}

// NewModel constructs the form model. Events flow out through router; form
// state flows back in through machine.State().
func NewModel(machine *widget.Machine, router *widget.Router, channel *notify.Channel, log *logger.Logger) *Model {
	m := &Model{
		machine: machine,
		router:  router,
		notify:  channel,
		logger:  log,
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = strings.ToLower(slotLabels[i])
		in.CharLimit = 64
		in.Width = 40
		m.inputs[i] = in
	}
	m.inputs[slotPassword].EchoMode = textinput.EchoPassword
	m.inputs[slotPassword].EchoCharacter = '*'
	m.inputs[slotConfirm].EchoMode = textinput.EchoPassword
	m.inputs[slotConfirm].EchoCharacter = '*'
	m.inputs[slotVerify].EchoMode = textinput.EchoPassword
	m.inputs[slotVerify].EchoCharacter = '*'

	m.inputs[slotUsername].Focus()
	return m
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.syncDrafts()
		return m, nil

	case redirectMsg:
		m.RedirectURL = msg.url
		return m, tea.Quit

	case focusMsg:
		m.focusRole(msg.role)
		return m, nil

	case copiedMsg:
		m.copyErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	// a live notification owns the keyboard until acknowledged
	if live, ok := m.notify.Live(); ok {
		switch {
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.esc):
			m.copyErr = nil
			m.notify.Dismiss()
			return m, nil
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopy(live)
		}
		return m, nil
	}

	state := m.machine.State()

	switch {
	case key.Matches(msg, keys.tab):
		m.cycleFocus(state, 1)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.cycleFocus(state, -1)
		return m, nil
	case key.Matches(msg, keys.enter):
		m.submit(state)
		return m, nil
	case key.Matches(msg, keys.esc):
		m.cancel(state)
		return m, nil
	case key.Matches(msg, keys.create):
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleCreate})
		return m, nil
	case key.Matches(msg, keys.forgot):
		if !state.ForgotHidden {
			m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleForgot})
		}
		return m, nil
	case key.Matches(msg, keys.changePassword):
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleChangePassword})
		return m, nil
	case key.Matches(msg, keys.logout):
		m.router.Dispatch(widget.Event{Kind: widget.KindDirective, Role: widget.RoleLogout})
		return m, nil
	}

	// everything else edits the focused field
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.router.Dispatch(widget.Event{
		Kind:  widget.KindKeystroke,
		Role:  slotRoles[m.focus],
		Value: m.inputs[m.focus].Value(),
		Key:   msg.String(),
	})
	return m, cmd
}

// submit fires the affordance the enter key means in the current panel.
func (m *Model) submit(state widget.FormState) {
	switch state.Mode {
	case widget.ModeAdding, widget.ModeEditing:
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleSave})
	case widget.ModeForgetting:
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleForgotSubmit})
	default:
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleOK})
	}
}

func (m *Model) cancel(state widget.FormState) {
	switch state.Mode {
	case widget.ModeAdding, widget.ModeEditing:
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleCancel})
	case widget.ModeForgetting:
		m.router.Dispatch(widget.Event{Kind: widget.KindClick, Role: widget.RoleForgotCancel})
	}
}

// visible reports whether the slot is shown in the current panel.
func visible(state widget.FormState, slot int) bool {
	switch slot {
	case slotUsername:
		return true
	case slotPassword:
		return !state.PasswordHidden
	case slotConfirm, slotVerify:
		return state.Mode == widget.ModeAdding || state.Mode == widget.ModeEditing
	case slotCell, slotEmail:
		return state.Mode == widget.ModeAdding || state.Mode == widget.ModeForgetting
	}
	return false
}

// cycleFocus moves focus to the next visible field. Leaving the username
// field commits its draft immediately, bypassing the debounce.
func (m *Model) cycleFocus(state widget.FormState, dir int) {
	leaving := m.focus
	m.inputs[leaving].Blur()
	if slotRoles[leaving] == widget.RoleUsername {
		m.router.Dispatch(widget.Event{
			Kind:  widget.KindChange,
			Role:  widget.RoleUsername,
			Value: m.inputs[leaving].Value(),
		})
	}

	next := m.focus
	for i := 0; i < fieldCount; i++ {
		next = (next + dir + fieldCount) % fieldCount
		if visible(state, next) {
			break
		}
	}
	m.focus = next
	m.inputs[m.focus].Focus()
}

func (m *Model) focusRole(role widget.Role) {
	for slot, r := range slotRoles {
		if r == role {
			m.inputs[m.focus].Blur()
			m.focus = slot
			m.inputs[slot].Focus()
			return
		}
	}
}

// syncDrafts pulls the machine's draft values back into the inputs, so
// programmatic mutations (clear, username restore) reach the screen.
func (m *Model) syncDrafts() {
	state := m.machine.State()
	drafts := [fieldCount]string{
		slotUsername: state.Username.Value,
		slotPassword: state.Password.Value,
		slotConfirm:  state.Confirm.Value,
		slotVerify:   state.Verify.Value,
		slotCell:     state.Cell.Value,
		slotEmail:    state.Email.Value,
	}
	for i := range m.inputs {
		if m.inputs[i].Value() != drafts[i] {
			m.inputs[i].SetValue(drafts[i])
		}
	}
}

func (m *Model) cmdCopy(live models.Notification) tea.Cmd {
	text := formatFields(live.Fields)
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func formatFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(fields[name])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
