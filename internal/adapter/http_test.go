package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-widget/internal/config"
	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService points an httpAuthService at a test server.
func newTestService(t *testing.T, serverURL string) AuthService {
	t.Helper()

	svc, err := NewHTTPAuthService(config.Service{
		Address:        serverURL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return svc
}

func asFailure(t *testing.T, err error) *models.Failure {
	t.Helper()

	var failure *models.Failure
	require.Error(t, err)
	require.True(t, errors.As(err, &failure), "expected *models.Failure, got %T", err)
	return failure
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "scheme added", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", raw: "http://svc.local/", want: "http://svc.local"},
		{name: "https kept", raw: "https://svc.local", want: "https://svc.local"},
		{name: "empty rejected", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Lookup ───────────────────────────────────────────────────────────────────

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/johndoe1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Trace-ID"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.LookupResponse{ID: "42"})
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	id, err := svc.Lookup(context.Background(), "johndoe1")

	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestLookup_NotFoundIsConsoleLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such user"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	_, err := svc.Lookup(context.Background(), "newuser1")

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusNotFound, failure.Status)
	assert.Equal(t, http.MethodGet, failure.Method)
	assert.Equal(t, "no such user", failure.Message)
	assert.Equal(t, models.LevelConsole, failure.Level)
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	svc := newTestService(t, srv.URL)
	_, err := svc.Lookup(context.Background(), "johndoe1")

	failure := asFailure(t, err)
	assert.Zero(t, failure.Status)
	assert.NotEmpty(t, failure.Message)
	// transport errors are visible, not console-only
	assert.Equal(t, models.LevelError, failure.Notification(nil).EffectiveLevel())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_SuccessReturnsFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body.ID)
		assert.Equal(t, "abcdefgh", body.Password)

		http.Redirect(w, r, "/welcome", http.StatusFound)
	})
	mux.HandleFunc("/welcome", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	redirect, err := svc.Login(context.Background(), "42", "abcdefgh")

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/welcome", redirect)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	_, err := svc.Login(context.Background(), "42", "wrongpass1")

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.Status)
	assert.Equal(t, "bad credentials", failure.Message)
	assert.Equal(t, http.MethodPost, failure.Method)
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/auth/42", r.URL.Path)

		var body models.PasswordChangeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "oldpass12", body.Old)
		assert.Equal(t, "newpass12", body.New)

		w.Header().Set("Location", "/login?changed")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	location, err := svc.ChangePassword(context.Background(), "42", "oldpass12", "newpass12")

	require.NoError(t, err)
	assert.Equal(t, "/login?changed", location)
}

func TestChangePassword_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("passwords match"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	_, err := svc.ChangePassword(context.Background(), "42", "samepass1", "samepass1")

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.Status)
	assert.Equal(t, "passwords match", failure.Message)
}

// ── RequestReset ─────────────────────────────────────────────────────────────

func TestRequestReset_SuccessSendsExplicitNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/auth", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "42", body["id"])
		assert.Equal(t, "a@bb.com", body["email"])
		assert.Contains(t, body, "cell")
		assert.Nil(t, body["cell"])
		assert.Equal(t, "/login?reset", body["redirect"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	err := svc.RequestReset(context.Background(), models.ResetRequest{
		ID:       "42",
		Email:    models.OptionalString("a@bb.com"),
		Cell:     models.OptionalString(""),
		Redirect: "/login?reset",
	})

	require.NoError(t, err)
}

func TestRequestReset_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("smtp is down"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	err := svc.RequestReset(context.Background(), models.ResetRequest{ID: "42"})

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.Status)
	assert.Equal(t, models.LevelError, failure.Level)
	assert.Equal(t, "smtp is down", failure.Message)
}

// ── CreateAccount ────────────────────────────────────────────────────────────

func TestCreateAccount_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "newuser1", body["username"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("99\n"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	id, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		Username: "newuser1",
		Email:    models.OptionalString("a@bb.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "99", id)
}

func TestCreateAccount_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("username taken"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{Username: "johndoe1"})

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusConflict, failure.Status)
	assert.Equal(t, "username taken", failure.Message)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_AcceptedIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logout", r.URL.Path)

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("logout pending"))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	err := svc.Logout(context.Background())

	failure := asFailure(t, err)
	assert.Equal(t, http.StatusAccepted, failure.Status)
	assert.Equal(t, "logout pending", failure.Message)
}

func TestLogout_AnyOtherStatusIsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		svc := newTestService(t, srv.URL)
		assert.NoError(t, svc.Logout(context.Background()), "status %d", status)

		srv.Close()
	}
}
