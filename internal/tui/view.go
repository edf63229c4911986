package tui

import (
	"strings"

	"github.com/MKhiriev/go-login-widget/internal/widget"
	"github.com/MKhiriev/go-login-widget/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

var panelTitles = map[widget.Mode]string{
	widget.ModeAnonymous:  "SIGN IN",
	widget.ModeIdentified: "SIGN IN",
	widget.ModeAdding:     "CREATE ACCOUNT",
	widget.ModeEditing:    "CHANGE PASSWORD",
	widget.ModeForgetting: "RECOVER PASSWORD",
}

// View implements [tea.Model].
func (m *Model) View() string {
	if live, ok := m.notify.Live(); ok {
		return appStyle.Render(m.renderOverlay(live))
	}

	state := m.machine.State()

	var b strings.Builder
	for slot := range m.inputs {
		if !visible(state, slot) {
			continue
		}
		b.WriteString(padLabel(slotLabels[slot]))
		b.WriteString("│ [")
		b.WriteString(m.inputs[slot].View())
		b.WriteString("] ")
		b.WriteString(flagMark(state, slot))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusLine(state))

	return appStyle.Render(renderPage(panelTitles[state.Mode], strings.TrimRight(b.String(), "\n"), hotKeys(state)))
}

func (m *Model) renderOverlay(live models.Notification) string {
	title := "Notice"
	if live.EffectiveLevel() == models.LevelError {
		title = errorStyle.Render("Error")
	}

	content := title + "\n\n" + formatFields(live.Fields)
	if m.copyErr != nil {
		content += "\n\n" + errorStyle.Render(m.copyErr.Error())
	}
	content += "\n\n" + helpStyle.Render("enter: ok │ c: copy details")

	return overlayBoxStyle.Render(content)
}

// flagMark renders the validation state of a field the way the widget's
// CSS classes would: settled, incomplete, or conflicting.
func flagMark(state widget.FormState, slot int) string {
	switch slot {
	case slotUsername:
		if state.Identity != "" {
			return "✓"
		}
		if state.Username.Complete {
			return "·"
		}
	case slotPassword:
		if state.Password.Complete {
			return "✓"
		}
	case slotConfirm, slotVerify:
		if !state.Mismatch {
			return "✓"
		}
		return "✗"
	case slotCell:
		if state.Cell.Complete {
			return "✓"
		}
	case slotEmail:
		if state.Email.Complete {
			return "✓"
		}
	}
	return " "
}

func statusLine(state widget.FormState) string {
	parts := []string{"mode: " + state.Mode.String()}
	if state.Identity != "" {
		parts = append(parts, "id: "+state.Identity)
	}
	if (state.Mode == widget.ModeAdding || state.Mode == widget.ModeForgetting) && state.Missing {
		parts = append(parts, "add a cell or email")
	}
	return helpStyle.Render(strings.Join(parts, " │ "))
}

func hotKeys(state widget.FormState) string {
	switch state.Mode {
	case widget.ModeAdding, widget.ModeEditing:
		return "enter: save │ esc: cancel │ tab: next field"
	case widget.ModeForgetting:
		return "enter: send link │ esc: back │ tab: next field"
	}

	hints := []string{"enter: sign in", "ctrl+n: create account"}
	if !state.ForgotHidden {
		hints = append(hints, "ctrl+f: forgot")
	}
	if state.Identity != "" {
		hints = append(hints, "ctrl+p: change password", "ctrl+l: logout")
	}
	return strings.Join(hints, " │ ")
}

func padLabel(label string) string {
	const width = 14
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  " + helpStyle.Render("ctrl+c: quit"))

	return b.String()
}
