package client

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-login-widget/internal/adapter"
	"github.com/MKhiriev/go-login-widget/internal/config"
	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/internal/notify"
	"github.com/MKhiriev/go-login-widget/internal/prefs"
	"github.com/MKhiriev/go-login-widget/internal/tui"
	"github.com/MKhiriev/go-login-widget/internal/widget"
)

// App owns the widget process: the state machine, the terminal UI, and the
// local preferences database.
type App struct {
	logger    *logger.Logger
	db        *prefs.DB
	machine   *widget.Machine
	model     *tui.Model
	program   *tea.Program
	directive string
}

// NewApp wires the widget runtime from validated configuration. The directive
// is the entry context the embedding page passed on startup ("", "logout",
// "reset" or "forgot").
func NewApp(ctx context.Context, cfg *config.WidgetConfig, directive string, log *logger.Logger) (*App, error) {
	db, err := prefs.NewConnectSQLite(ctx, cfg.PrefsDSN, log)
	if err != nil {
		return nil, fmt.Errorf("connect preferences db: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate preferences db: %w", err)
	}

	auth, err := adapter.NewHTTPAuthService(cfg.Service, log)
	if err != nil {
		return nil, fmt.Errorf("create auth service adapter: %w", err)
	}

	// same normalization the adapter applies, so the hint is well formed
	// whether or not the configured address carries a scheme
	baseURL, err := adapter.ResolveBaseURL(cfg.Service.Address)
	if err != nil {
		return nil, fmt.Errorf("resolve auth service address: %w", err)
	}

	channel := notify.New(log)

	a := &App{logger: log, db: db, directive: directive}

	machine := widget.NewMachine(ctx, widget.Options{
		Auth:             auth,
		Prefs:            prefs.NewStore(db, log),
		Notify:           channel,
		Nav:              tui.NewNavigator(a.send),
		Logger:           log,
		DebounceInterval: cfg.DebounceInterval,
		RedirectHint:     baseURL + "/login",
	})
	a.machine = machine

	router := widget.NewRouter(log)
	machine.Register(router)

	a.model = tui.NewModel(machine, router, channel, log)
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	machine.SetChangeHook(func() { a.send(tui.Refresh()) })
	channel.SetChangeHook(func() { a.send(tui.Refresh()) })

	return a, nil
}

// Run starts the terminal UI and blocks until the user quits or the machine
// navigates away. It returns the redirect URL the machine settled on, empty
// when the user simply quit.
func (a *App) Run() (string, error) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("close preferences db")
		}
	}()

	// The program's message loop is not reading yet, so the directive is
	// applied from a goroutine: its change hooks block on send until Run
	// starts below.
	go a.machine.Init(a.directive)

	final, err := a.program.Run()
	if err != nil {
		return "", fmt.Errorf("run ui: %w", err)
	}

	model, ok := final.(*tui.Model)
	if !ok {
		return "", fmt.Errorf("unexpected final model %T", final)
	}
	return model.RedirectURL, nil
}

func (a *App) send(msg tea.Msg) {
	a.program.Send(msg)
}
