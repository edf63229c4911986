package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-login-widget/internal/logger"
)

func TestRouter_DispatchesToRegisteredHandler(t *testing.T) {
	r := NewRouter(logger.Nop())

	var got Event
	r.Handle(KindClick, RoleSave, func(ev Event) { got = ev })

	r.Dispatch(Event{Kind: KindClick, Role: RoleSave, Value: "v"})

	assert.Equal(t, RoleSave, got.Role)
	assert.Equal(t, "v", got.Value)
}

func TestRouter_UnknownPairIsDropped(t *testing.T) {
	r := NewRouter(logger.Nop())

	r.Handle(KindClick, RoleSave, func(Event) { t.Fatal("wrong handler invoked") })

	// same role, different kind: no handler, no panic
	r.Dispatch(Event{Kind: KindKeystroke, Role: RoleSave})
	r.Dispatch(Event{Kind: KindClick, Role: RoleCancel})
}

func TestRouter_HandleReplacesPrevious(t *testing.T) {
	r := NewRouter(logger.Nop())

	calls := []string{}
	r.Handle(KindClick, RoleOK, func(Event) { calls = append(calls, "first") })
	r.Handle(KindClick, RoleOK, func(Event) { calls = append(calls, "second") })

	r.Dispatch(Event{Kind: KindClick, Role: RoleOK})

	assert.Equal(t, []string{"second"}, calls)
}

func TestIgnoredKey(t *testing.T) {
	tests := []struct {
		key     string
		ignored bool
	}{
		{"up", true},
		{"down", true},
		{"left", true},
		{"right", true},
		{"home", true},
		{"end", true},
		{"pgup", true},
		{"pgdown", true},
		{"tab", true},
		{"esc", true},
		{"ctrl+a", true},
		{"alt+left", true},
		{"meta+v", true},
		{"a", false},
		{"1", false},
		{"backspace", false},
		{"_", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.ignored, IgnoredKey(tt.key))
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "change-password", RoleChangePassword.String())
	assert.Equal(t, "unknown", Role(999).String())
}
