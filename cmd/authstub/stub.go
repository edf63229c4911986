package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/models"
)

const traceIDHeader = "X-Trace-ID"

// welcomePath is where successful sign-ins land.
const welcomePath = "/welcome"

type account struct {
	id       string
	username string
	password string
	email    *string
	cell     *string
}

type handler struct {
	logger *logger.Logger

	mu         sync.Mutex
	byUsername map[string]*account
	byID       map[string]*account
	nextID     int
}

func newHandler(log *logger.Logger) *handler {
	return &handler{
		logger:     log,
		byUsername: make(map[string]*account),
		byID:       make(map[string]*account),
		nextID:     1,
	}
}

func (h *handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	router.Get("/auth/{username}", h.lookup)
	router.Post("/auth", h.login)
	router.Patch("/auth/{id}", h.changePassword)
	router.Delete("/auth", h.reset)
	router.Post("/user", h.createAccount)
	router.Post("/logout", h.logout)
	router.Get(welcomePath, h.welcome)

	return router
}

func (h *handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID).Str("method", r.Method).Str("path", r.URL.Path)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")

	h.mu.Lock()
	acc, ok := h.byUsername[username]
	h.mu.Unlock()

	if !ok {
		log.Debug().Str("username", username).Msg("unknown username")
		http.Error(w, "unknown username", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.LookupResponse{ID: acc.id}); err != nil {
		log.Err(err).Msg("encode lookup response")
	}
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	acc, ok := h.byID[req.ID]
	h.mu.Unlock()

	if !ok || acc.password == "" || acc.password != req.Password {
		log.Debug().Str("id", req.ID).Msg("sign-in rejected")
		http.Error(w, "wrong identity or password", http.StatusUnauthorized)
		return
	}

	// The widget navigates to wherever the success response settles, so
	// send it through a redirect to the welcome page.
	http.Redirect(w, r, welcomePath, http.StatusFound)
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var req models.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	acc, ok := h.byID[id]
	if !ok {
		http.Error(w, "unknown identity", http.StatusNotFound)
		return
	}
	if acc.password != req.Old {
		log.Debug().Str("id", id).Msg("old password mismatch")
		http.Error(w, "old password does not match", http.StatusForbidden)
		return
	}
	if req.New == "" {
		http.Error(w, "empty password", http.StatusBadRequest)
		return
	}

	acc.password = req.New
	w.Header().Set("Location", h.absoluteURL(r, welcomePath))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	_, ok := h.byID[req.ID]
	h.mu.Unlock()

	if !ok {
		http.Error(w, "unknown identity", http.StatusNotFound)
		return
	}

	contact := "nowhere"
	switch {
	case req.Email != nil:
		contact = *req.Email
	case req.Cell != nil:
		contact = *req.Cell
	}
	log.Info().Str("id", req.ID).Str("contact", contact).Str("redirect", req.Redirect).
		Msg("pretending to send a recovery link")

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) createAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "empty username", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.byUsername[req.Username]; exists {
		http.Error(w, "username already exists", http.StatusConflict)
		return
	}

	acc := &account{
		id:       strconv.Itoa(h.nextID),
		username: req.Username,
		email:    req.Email,
		cell:     req.Cell,
	}
	h.nextID++
	h.byUsername[acc.username] = acc
	h.byID[acc.id] = acc

	log.Info().Str("id", acc.id).Str("username", acc.username).Msg("account created")

	w.WriteHeader(http.StatusCreated)
	fmt.Fprint(w, acc.id)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Info().Msg("session ended")
	w.WriteHeader(http.StatusOK)
}

func (h *handler) welcome(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "welcome")
}

func (h *handler) absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
