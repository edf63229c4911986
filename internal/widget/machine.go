// Package widget implements the event-driven state machine behind the login
// widget: field validation flags, mode transitions, orchestration of the
// auth service calls, and the notifications their outcomes produce.
//
// The machine owns the single mutable [FormState]. Input events arrive
// through the [Router]; network calls run in their own goroutines and
// re-enter the machine through mutex-guarded completion methods, so no
// handler ever blocks its caller on I/O.
package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-login-widget/internal/adapter"
	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/internal/notify"
	"github.com/MKhiriev/go-login-widget/internal/prefs"
	"github.com/MKhiriev/go-login-widget/internal/validators"
	"github.com/MKhiriev/go-login-widget/models"
)

// Mode is the widget's current panel state.
type Mode int

const (
	// ModeAnonymous is the initial state: no identity, login form shown.
	ModeAnonymous Mode = iota
	// ModeIdentified is the steady state once an identity is known.
	ModeIdentified
	// ModeAdding is the account-creation panel (verify sub-panel active).
	ModeAdding
	// ModeEditing is the password-change panel (verify sub-panel active).
	ModeEditing
	// ModeForgetting is the forgotten-password recovery panel.
	ModeForgetting
)

var modeNames = map[Mode]string{
	ModeAnonymous:  "anonymous",
	ModeIdentified: "identified",
	ModeAdding:     "adding",
	ModeEditing:    "editing",
	ModeForgetting: "forgetting",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Field is the per-field slice of form state: the raw draft plus the flags
// its validator settles.
type Field struct {
	Value    string
	Complete bool
	Empty    bool
}

// FormState is the single mutable aggregate the machine owns. It is reset in
// place by clear, never replaced.
type FormState struct {
	Mode     Mode
	Identity string

	Username Field
	Password Field
	Confirm  Field
	Verify   Field
	Cell     Field
	Email    Field

	// Mismatch aggregates the two confirmation fields: set unless both are
	// valid, equal, and (when editing) different from the old password.
	Mismatch bool
	// Missing is set while no multi-factor contact field is complete.
	Missing bool

	// PasswordHidden and ForgotHidden suppress the password entry and the
	// forgot affordance during the reset-completion flow, where the user
	// has no old password to supply.
	PasswordHidden bool
	ForgotHidden   bool
}

// Navigator is the presentation-side escape hatch: the machine asks it to
// leave the page or to move focus, and otherwise knows nothing about the UI.
type Navigator interface {
	// Navigate leaves the widget for url (login success, acknowledged
	// password change).
	Navigate(url string)
	// Focus moves input focus to the field with the given role.
	Focus(role Role)
}

// Options carries the machine's collaborators.
type Options struct {
	Auth   adapter.AuthService
	Prefs  prefs.Store
	Notify *notify.Channel
	Nav    Navigator
	Logger *logger.Logger

	// DebounceInterval is how long username keystrokes are coalesced
	// before the remote availability check fires.
	DebounceInterval time.Duration

	// RedirectHint is sent with reset requests so the recovery link brings
	// the user back to this widget.
	RedirectHint string
}

// Machine is the widget state machine.
type Machine struct {
	logger *logger.Logger
	auth   adapter.AuthService
	prefs  prefs.Store
	notify *notify.Channel
	nav    Navigator

	ctx          context.Context
	debounce     *Debounce
	redirectHint string
	onChange     func()

	mu        sync.Mutex
	state     FormState
	lookupGen uint64
}

func NewMachine(ctx context.Context, opts Options) *Machine {
	m := &Machine{
		logger:       opts.Logger,
		auth:         opts.Auth,
		prefs:        opts.Prefs,
		notify:       opts.Notify,
		nav:          opts.Nav,
		ctx:          ctx,
		debounce:     NewDebounce(opts.DebounceInterval),
		redirectHint: opts.RedirectHint,
	}
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	return m
}

// SetChangeHook installs fn to be called after every state mutation, outside
// the machine's lock. The TUI uses it to trigger re-renders.
func (m *Machine) SetChangeHook(fn func()) {
	m.onChange = fn
}

// State returns a copy of the current form state.
func (m *Machine) State() FormState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Register wires the machine's handlers into the router.
func (m *Machine) Register(r *Router) {
	r.Handle(KindKeystroke, RoleUsername, m.UsernameKeystroke)
	r.Handle(KindChange, RoleUsername, m.UsernameChange)
	r.Handle(KindKeystroke, RolePassword, m.PasswordInput)
	r.Handle(KindChange, RolePassword, m.PasswordInput)
	r.Handle(KindKeystroke, RoleConfirm, m.ConfirmInput)
	r.Handle(KindChange, RoleConfirm, m.ConfirmInput)
	r.Handle(KindKeystroke, RoleVerify, m.ConfirmInput)
	r.Handle(KindChange, RoleVerify, m.ConfirmInput)
	r.Handle(KindKeystroke, RoleCell, m.ContactInput)
	r.Handle(KindChange, RoleCell, m.ContactInput)
	r.Handle(KindKeystroke, RoleEmail, m.ContactInput)
	r.Handle(KindChange, RoleEmail, m.ContactInput)

	r.Handle(KindClick, RoleCreate, func(Event) { m.Create() })
	r.Handle(KindClick, RoleForgot, func(Event) { m.Forgot() })
	r.Handle(KindClick, RoleOK, func(Event) { m.Login() })
	r.Handle(KindClick, RoleChangePassword, func(Event) { m.ChangePassword() })
	r.Handle(KindClick, RoleForgotSubmit, func(Event) { m.ForgotSubmit() })
	r.Handle(KindClick, RoleForgotCancel, func(Event) { m.ForgotCancel() })
	r.Handle(KindClick, RoleSave, func(Event) { m.Save() })
	r.Handle(KindClick, RoleCancel, func(Event) { m.Cancel() })

	r.Handle(KindDirective, RoleLogout, func(Event) { m.Logout() })
	r.Handle(KindDirective, RoleReset, func(Event) { m.Reset() })
	r.Handle(KindDirective, RoleForgot, func(Event) { m.enterForgetting() })
}

// Init resets the machine, restores the remembered username (validating it
// immediately, bypassing the debounce), and applies the directive carried in
// the navigation context. Unrecognized directives are logged, never shown.
func (m *Machine) Init(directive string) {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	m.changed()

	m.restoreUsername()

	switch directive {
	case "":
	case "logout":
		m.Logout()
	case "reset":
		m.Reset()
	case "forgot":
		m.enterForgetting()
	default:
		m.notify.Post(models.Notification{
			Level:  models.LevelConsole,
			Fields: map[string]string{"message": "unrecognized directive", "directive": directive},
		})
	}
}

// ── field input ───────────────────────────────────────────────────────────────

// UsernameKeystroke records the username draft and re-arms the debounce.
// Navigation and modifier keys update nothing and keep the pending check.
func (m *Machine) UsernameKeystroke(ev Event) {
	if IgnoredKey(ev.Key) {
		return
	}

	m.mu.Lock()
	m.state.Username.Value = ev.Value
	m.mu.Unlock()
	m.changed()

	m.debounce.Trigger(func() {
		m.mu.Lock()
		m.validateUsernameLocked()
		m.mu.Unlock()
		m.changed()
	})
}

// UsernameChange is a committed username value (blur, restore). It validates
// immediately, dropping any pending debounced check.
func (m *Machine) UsernameChange(ev Event) {
	m.debounce.Cancel()

	m.mu.Lock()
	m.state.Username.Value = ev.Value
	m.validateUsernameLocked()
	m.mu.Unlock()
	m.changed()
}

func (m *Machine) PasswordInput(ev Event) {
	m.mu.Lock()
	m.state.Password.Value = ev.Value
	m.state.Password.Complete = validators.Password(ev.Value)
	m.mu.Unlock()
	m.changed()
}

// ContactInput settles the edited contact field's flags and the aggregate
// missing flag.
func (m *Machine) ContactInput(ev Event) {
	m.mu.Lock()
	field := &m.state.Cell
	valid := validators.Cell
	if ev.Role == RoleEmail {
		field = &m.state.Email
		valid = validators.Email
	}
	field.Value = ev.Value
	field.Empty = ev.Value == ""
	field.Complete = valid(ev.Value)
	m.state.Missing = !m.state.Cell.Complete && !m.state.Email.Complete
	m.mu.Unlock()
	m.changed()
}

// ConfirmInput records a confirmation-field draft and recomputes mismatch
// synchronously, so the flag is never stale.
func (m *Machine) ConfirmInput(ev Event) {
	m.mu.Lock()
	if ev.Role == RoleVerify {
		m.state.Verify.Value = ev.Value
	} else {
		m.state.Confirm.Value = ev.Value
	}
	samePassword := m.recomputeMismatchLocked(ev.Value)
	m.mu.Unlock()
	m.changed()

	if samePassword {
		m.notify.Post(models.Notification{
			Fields: map[string]string{"message": "new and old passwords are the same"},
		})
	}
}

// recomputeMismatchLocked applies, in order: the edited value must be a valid
// password, the two confirmation drafts must agree, and when editing the new
// password must differ from the old one. The same-password case additionally
// warrants a visible notification; it is reported to the caller because the
// channel must be invoked outside the lock.
func (m *Machine) recomputeMismatchLocked(edited string) (samePassword bool) {
	switch {
	case !validators.Password(edited):
		m.state.Mismatch = true
	case m.state.Confirm.Value != m.state.Verify.Value:
		m.state.Mismatch = true
	case m.state.Mode == ModeEditing && edited == m.state.Password.Value:
		m.state.Mismatch = true
		samePassword = true
	default:
		m.state.Mismatch = false
	}
	return samePassword
}

// ── username lookup ───────────────────────────────────────────────────────────

// validateUsernameLocked settles the username's complete flag and, when the
// format is acceptable, starts a lookup against the service. Each new check
// bumps the generation counter so responses to superseded lookups are
// discarded on arrival.
func (m *Machine) validateUsernameLocked() {
	username := m.state.Username.Value
	m.state.Username.Complete = validators.Username(username)
	if !m.state.Username.Complete {
		m.state.Identity = ""
		m.settleModeLocked()
		return
	}

	m.lookupGen++
	gen := m.lookupGen
	go m.runLookup(gen, username)
}

func (m *Machine) runLookup(gen uint64, username string) {
	id, err := m.auth.Lookup(m.ctx, username)

	m.mu.Lock()
	if gen != m.lookupGen {
		m.mu.Unlock()
		m.logger.Debug().Str("username", username).Msg("discarding stale lookup response")
		return
	}

	if err != nil {
		m.state.Identity = ""
		m.settleModeLocked()
		m.mu.Unlock()
		m.notify.Post(failureOf(err).Notification(nil))
		m.changed()
		return
	}

	m.state.Identity = id
	m.settleModeLocked()
	m.mu.Unlock()

	if err := m.prefs.SetUsername(m.ctx, username); err != nil {
		m.logger.Err(err).Msg("error persisting username")
	}
	m.changed()
}

// restoreUsername loads the persisted username into the draft and validates
// it immediately, with change-event semantics.
func (m *Machine) restoreUsername() {
	username, err := m.prefs.Username(m.ctx)
	if err != nil {
		m.logger.Err(err).Msg("error reading persisted username")
		return
	}

	m.UsernameChange(Event{Kind: KindChange, Role: RoleUsername, Value: username})
}

// ── clicks ────────────────────────────────────────────────────────────────────

// Create opens the account-creation panel. The password draft is blanked:
// the initial password is set through the verify panel, not the login field.
func (m *Machine) Create() {
	m.mu.Lock()
	m.state.Mode = ModeAdding
	m.passwordMgmtLocked()
	m.state.Password = Field{}
	m.mu.Unlock()
	m.changed()
}

// Forgot opens the recovery panel. It is only honoured once an identity or
// at least a completed username exists; there is nobody to recover otherwise.
func (m *Machine) Forgot() {
	m.mu.Lock()
	if m.state.Identity == "" && !m.state.Username.Complete {
		m.mu.Unlock()
		return
	}
	m.state.Mode = ModeForgetting
	m.mu.Unlock()
	m.changed()
}

func (m *Machine) enterForgetting() {
	m.mu.Lock()
	m.state.Mode = ModeForgetting
	m.mu.Unlock()
	m.changed()
}

// Login submits the login form. Success navigates to the URL the service
// returns; failure is surfaced with a dismissal that refocuses the password
// field for another attempt.
func (m *Machine) Login() {
	m.mu.Lock()
	id := m.state.Identity
	password := m.state.Password.Value
	m.mu.Unlock()

	if id == "" {
		return
	}

	go func() {
		url, err := m.auth.Login(m.ctx, id, password)
		if err != nil {
			m.notify.Post(failureOf(err).Notification(func() {
				m.nav.Focus(RolePassword)
			}))
			return
		}
		m.nav.Navigate(url)
	}()
}

// ChangePassword opens the password-change panel.
func (m *Machine) ChangePassword() {
	m.mu.Lock()
	if m.state.Identity == "" {
		m.mu.Unlock()
		return
	}
	m.state.Mode = ModeEditing
	m.passwordMgmtLocked()
	m.mu.Unlock()
	m.changed()
}

// ForgotSubmit asks the service to send a recovery link to whichever contact
// fields validated. Both outcomes carry the forgot-cancel dismissal, so the
// panel closes once the user acknowledges.
func (m *Machine) ForgotSubmit() {
	m.mu.Lock()
	if m.state.Identity == "" || m.state.Missing {
		m.mu.Unlock()
		return
	}
	req := models.ResetRequest{
		ID:       m.state.Identity,
		Redirect: m.redirectHint,
	}
	if m.state.Email.Complete {
		req.Email = models.OptionalString(m.state.Email.Value)
	}
	if m.state.Cell.Complete {
		req.Cell = models.OptionalString(m.state.Cell.Value)
	}
	m.mu.Unlock()

	go func() {
		err := m.auth.RequestReset(m.ctx, req)
		if err != nil {
			m.notify.Post(failureOf(err).Notification(m.ForgotCancel))
			return
		}
		m.notify.Post(models.Notification{
			Level:     models.LevelInfo,
			Fields:    map[string]string{"message": "follow the link we sent to finish resetting your password"},
			OnDismiss: m.ForgotCancel,
		})
	}()
}

// ForgotCancel leaves the recovery panel.
func (m *Machine) ForgotCancel() {
	m.mu.Lock()
	if m.state.Mode == ModeForgetting {
		// drop the panel mode so settle can derive the steady one
		m.state.Mode = ModeAnonymous
		m.settleModeLocked()
	}
	m.mu.Unlock()
	m.changed()
}

// Save submits the verify panel. While adding it runs the two-step creation
// workflow; otherwise it changes the password of the current identity.
func (m *Machine) Save() {
	m.mu.Lock()
	if m.state.Mismatch {
		m.mu.Unlock()
		return
	}

	if m.state.Mode == ModeAdding {
		req := models.CreateAccountRequest{Username: m.state.Username.Value}
		if m.state.Email.Complete {
			req.Email = models.OptionalString(m.state.Email.Value)
		}
		if m.state.Cell.Complete {
			req.Cell = models.OptionalString(m.state.Cell.Value)
		}
		initialPassword := m.state.Verify.Value
		m.mu.Unlock()

		go m.runCreate(req, initialPassword)
		return
	}

	if m.state.Identity == "" {
		m.mu.Unlock()
		return
	}

	id := m.state.Identity
	oldPassword := m.state.Password.Value
	newPassword := m.state.Verify.Value
	m.mu.Unlock()

	// the server would reject this anyway; save it the round trip
	if oldPassword == newPassword {
		failure := &models.Failure{Status: 400, Message: "passwords match"}
		m.notify.Post(failure.Notification(nil))
		return
	}

	go m.runChangePassword(id, oldPassword, newPassword)
}

// runCreate is step one of account creation: register the account, adopt the
// assigned identity, and persist the username. Step two immediately sets the
// initial password with a blank old password, exactly as a password change
// would.
func (m *Machine) runCreate(req models.CreateAccountRequest, initialPassword string) {
	id, err := m.auth.CreateAccount(m.ctx, req)
	if err != nil {
		m.notify.Post(failureOf(err).Notification(nil))
		return
	}

	m.mu.Lock()
	m.lookupGen++ // the new account supersedes any in-flight availability check
	m.state.Identity = id
	m.state.Mode = ModeIdentified
	m.mu.Unlock()

	if err := m.prefs.SetUsername(m.ctx, req.Username); err != nil {
		m.logger.Err(err).Msg("error persisting username")
	}
	m.changed()

	m.runChangePassword(id, "", initialPassword)
}

func (m *Machine) runChangePassword(id, oldPassword, newPassword string) {
	location, err := m.auth.ChangePassword(m.ctx, id, oldPassword, newPassword)
	if err != nil {
		m.notify.Post(failureOf(err).Notification(nil))
		return
	}

	m.notify.Post(models.Notification{
		Level:          models.LevelInfo,
		TimeoutSeconds: 5,
		Fields:         map[string]string{"message": "password changed"},
		OnDismiss: func() {
			m.nav.Navigate(location)
		},
	})
}

// Cancel closes the verify panel without saving.
func (m *Machine) Cancel() {
	m.mu.Lock()
	if m.state.Mode == ModeAdding || m.state.Mode == ModeEditing {
		m.state.PasswordHidden = false
		m.state.ForgotHidden = false
		// drop the panel mode so settle can derive the steady one
		m.state.Mode = ModeAnonymous
		m.settleModeLocked()
	}
	m.mu.Unlock()
	m.changed()
}

// ── directives ────────────────────────────────────────────────────────────────

// Logout ends the session. The service reporting accepted/pending means the
// logout did not complete and is surfaced as a failure; any other completion
// clears the form and confirms, with the dismissal restoring the remembered
// username for the next sign-in.
func (m *Machine) Logout() {
	go func() {
		if err := m.auth.Logout(m.ctx); err != nil {
			m.notify.Post(failureOf(err).Notification(nil))
			return
		}

		m.mu.Lock()
		m.clearLocked()
		m.mu.Unlock()
		m.changed()

		m.notify.Post(models.Notification{
			Level:          models.LevelInfo,
			TimeoutSeconds: 5,
			Fields:         map[string]string{"message": "signed out"},
			OnDismiss:      m.restoreUsername,
		})
	}()
}

// Reset opens the password-change panel for completing a server-issued reset
// link: the user has no old password, so the password entry and the forgot
// affordance are suppressed.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.state.Mode = ModeEditing
	m.passwordMgmtLocked()
	m.state.PasswordHidden = true
	m.state.ForgotHidden = true
	m.mu.Unlock()
	m.changed()
}

// Clear returns the widget to its initial state.
func (m *Machine) Clear() {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	m.changed()
}

// ── internals ─────────────────────────────────────────────────────────────────

// clearLocked resets the form in place. Blank drafts re-settle every flag:
// nothing is complete, the contact fields are empty, no MFA field validates,
// and the confirmation fields mismatch by default.
func (m *Machine) clearLocked() {
	m.lookupGen++ // orphan any in-flight lookup
	m.state = FormState{
		Mode:     ModeAnonymous,
		Cell:     Field{Empty: true},
		Email:    Field{Empty: true},
		Missing:  true,
		Mismatch: true,
	}
}

// passwordMgmtLocked blanks both confirmation fields and re-settles
// mismatch, hiding the save affordance until the user supplies matching
// values.
func (m *Machine) passwordMgmtLocked() {
	m.state.Confirm = Field{}
	m.state.Verify = Field{}
	m.recomputeMismatchLocked(m.state.Confirm.Value)
}

// settleModeLocked leaves panel modes untouched and otherwise derives the
// steady mode from the identity.
func (m *Machine) settleModeLocked() {
	switch m.state.Mode {
	case ModeAdding, ModeEditing, ModeForgetting:
		return
	}
	if m.state.Identity != "" {
		m.state.Mode = ModeIdentified
	} else {
		m.state.Mode = ModeAnonymous
	}
}

func (m *Machine) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// failureOf normalizes any error into the Failure shape the notification
// channel renders.
func failureOf(err error) *models.Failure {
	var failure *models.Failure
	if errors.As(err, &failure) {
		return failure
	}
	return &models.Failure{Message: err.Error()}
}
