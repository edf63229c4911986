package widget

import (
	"strings"

	"github.com/MKhiriev/go-login-widget/internal/logger"
)

// Kind classifies an input event.
type Kind int

const (
	// KindKeystroke is a single key press inside a field. The username
	// field debounces these before validating remotely.
	KindKeystroke Kind = iota
	// KindChange is a committed field value (blur, paste, programmatic
	// restore). Change events bypass the debounce.
	KindChange
	// KindClick is an affordance activation (buttons, links).
	KindClick
	// KindDirective is an instruction carried in the navigation context
	// the widget was opened with, inspected once at startup.
	KindDirective
)

// Role names the logical field or affordance an event targets.
type Role int

const (
	RoleNone Role = iota

	// field roles
	RoleUsername
	RolePassword
	RoleConfirm
	RoleVerify
	RoleCell
	RoleEmail

	// affordance roles
	RoleCreate
	RoleForgot
	RoleOK
	RoleChangePassword
	RoleForgotSubmit
	RoleForgotCancel
	RoleSave
	RoleCancel

	// directive roles
	RoleLogout
	RoleReset
)

var roleNames = map[Role]string{
	RoleNone:           "none",
	RoleUsername:       "username",
	RolePassword:       "password",
	RoleConfirm:        "confirm",
	RoleVerify:         "verify",
	RoleCell:           "cell",
	RoleEmail:          "email",
	RoleCreate:         "create",
	RoleForgot:         "forgot",
	RoleOK:             "ok",
	RoleChangePassword: "change-password",
	RoleForgotSubmit:   "forgot-submit",
	RoleForgotCancel:   "forgot-cancel",
	RoleSave:           "save",
	RoleCancel:         "cancel",
	RoleLogout:         "logout",
	RoleReset:          "reset",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// Event is a single externally produced input: a keystroke or committed
// change in a field, a click on an affordance, or a startup directive.
type Event struct {
	Kind Kind
	Role Role

	// Value is the field's full draft value after the input, for keystroke
	// and change events.
	Value string

	// Key is the name of the pressed key for keystroke events, used to
	// filter navigation and modifier keys out of the debounce.
	Key string
}

// Handler consumes one dispatched event.
type Handler func(Event)

type routeKey struct {
	kind Kind
	role Role
}

// Router maps (kind, role) pairs to machine handlers. It owns no state of
// its own; unknown pairs are logged at debug level and dropped.
type Router struct {
	logger   *logger.Logger
	handlers map[routeKey]Handler
}

func NewRouter(log *logger.Logger) *Router {
	return &Router{
		logger:   log,
		handlers: make(map[routeKey]Handler),
	}
}

// Handle registers fn for events of the given kind and role, replacing any
// previous handler for the pair.
func (r *Router) Handle(kind Kind, role Role, fn Handler) {
	r.handlers[routeKey{kind: kind, role: role}] = fn
}

// Dispatch routes ev to its registered handler.
func (r *Router) Dispatch(ev Event) {
	fn, ok := r.handlers[routeKey{kind: ev.Kind, role: ev.Role}]
	if !ok {
		r.logger.Debug().
			Int("kind", int(ev.Kind)).
			Str("role", ev.Role.String()).
			Msg("dropping event with no handler")
		return
	}
	fn(ev)
}

// ignoredKeys are navigation and modifier keys that move the caret or focus
// without changing the field's text; they must not re-arm the username
// debounce.
var ignoredKeys = map[string]struct{}{
	"up":     {},
	"down":   {},
	"left":   {},
	"right":  {},
	"home":   {},
	"end":    {},
	"pgup":   {},
	"pgdown": {},
	"tab":    {},
	"esc":    {},
	"alt":    {},
	"ctrl":   {},
	"shift":  {},
	"meta":   {},
}

// IgnoredKey reports whether key is a pure navigation or modifier key.
// Modifier chords ("ctrl+a", "alt+left") are ignored as well.
func IgnoredKey(key string) bool {
	if _, ok := ignoredKeys[key]; ok {
		return true
	}
	for _, prefix := range []string{"alt+", "ctrl+", "meta+"} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
