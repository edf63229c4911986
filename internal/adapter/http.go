package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-login-widget/internal/config"
	"github.com/MKhiriev/go-login-widget/internal/logger"
	"github.com/MKhiriev/go-login-widget/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

type httpAuthService struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPAuthService constructs an HTTP/REST implementation of [AuthService].
// It normalises and validates the base URL from cfg.Address and configures
// the underlying client with the resolved base URL and request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid URL.
func NewHTTPAuthService(cfg config.Service, log *logger.Logger) (AuthService, error) {
	baseURL, err := ResolveBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid auth service address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpAuthService{client: client, logger: log}, nil
}

// ResolveBaseURL turns a configured service address into an absolute base
// URL: a bare host:port gets an http scheme, a trailing slash is trimmed, and
// an address without host or scheme is rejected.
func ResolveBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Lookup implements [AuthService]. It GETs /auth/{username} and decodes the
// identity from the response body. Non-200 statuses come back as a
// console-level *models.Failure.
func (h *httpAuthService) Lookup(ctx context.Context, username string) (string, error) {
	path := "/auth/" + url.PathEscape(username)

	resp, err := h.request(ctx).Get(path)
	if err != nil {
		return "", h.transportFailure(path, http.MethodGet, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", responseFailure(resp, models.LevelConsole)
	}

	var body models.LookupResponse
	if err = decodeJSON(resp, &body); err != nil {
		return "", err
	}

	return body.ID, nil
}

// Login implements [AuthService]. It POSTs the credentials to /auth and, on
// 200, returns the final response URL (after any redirects) as the address
// the widget should navigate to.
func (h *httpAuthService) Login(ctx context.Context, id, password string) (string, error) {
	resp, err := h.request(ctx).
		SetBody(models.LoginRequest{ID: id, Password: password}).
		Post("/auth")
	if err != nil {
		return "", h.transportFailure("/auth", http.MethodPost, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", responseFailure(resp, "")
	}

	return finalURL(resp), nil
}

// ChangePassword implements [AuthService]. It PATCHes /auth/{id} with the
// old/new pair and, on 204, returns the Location header.
func (h *httpAuthService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (string, error) {
	path := "/auth/" + url.PathEscape(id)

	resp, err := h.request(ctx).
		SetBody(models.PasswordChangeRequest{Old: oldPassword, New: newPassword}).
		Patch(path)
	if err != nil {
		return "", h.transportFailure(path, http.MethodPatch, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return "", responseFailure(resp, "")
	}

	return resp.Header().Get("Location"), nil
}

// RequestReset implements [AuthService]. It DELETEs /auth with the recovery
// request body; 204 is the only success.
func (h *httpAuthService) RequestReset(ctx context.Context, req models.ResetRequest) error {
	resp, err := h.request(ctx).
		SetBody(req).
		Delete("/auth")
	if err != nil {
		return h.transportFailure("/auth", http.MethodDelete, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return responseFailure(resp, models.LevelError)
	}

	return nil
}

// CreateAccount implements [AuthService]. It POSTs the new account to /user
// and, on 201, returns the plain-text response body as the assigned identity.
func (h *httpAuthService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (string, error) {
	resp, err := h.request(ctx).
		SetBody(req).
		Post("/user")
	if err != nil {
		return "", h.transportFailure("/user", http.MethodPost, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return "", responseFailure(resp, "")
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

// Logout implements [AuthService]. It POSTs /logout; a 202 accepted/pending
// status is reported as a failure carrying the response body, every other
// completion is success.
func (h *httpAuthService) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/logout")
	if err != nil {
		return h.transportFailure("/logout", http.MethodPost, err)
	}
	if resp.StatusCode() == http.StatusAccepted {
		return responseFailure(resp, "")
	}

	return nil
}

func (h *httpAuthService) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(traceIDHeader, uuid.NewString())
}

func (h *httpAuthService) transportFailure(path, method string, err error) *models.Failure {
	h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("auth service request failed")

	return &models.Failure{
		URL:     h.client.BaseURL + path,
		Method:  method,
		Message: err.Error(),
	}
}
