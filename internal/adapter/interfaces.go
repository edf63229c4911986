// Package adapter provides the transport layer for communicating with the
// external auth service.
//
// The primary abstraction is [AuthService], which decouples the widget state
// machine from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPAuthService]) built on resty.
//
// Every remote operation returns a classified result: the success payload,
// or a *models.Failure carrying url/method/status/message so callers can
// route it through the notification channel unchanged. The adapter performs
// no retries; a single failed attempt is reported upward immediately.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-login-widget/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_service_mock.go -package=mock

// AuthService defines the five account operations plus logout against the
// external auth service. Implementations are responsible for serialisation
// and for mapping transport-level and HTTP-level errors to *models.Failure.
type AuthService interface {
	// Lookup resolves username to the opaque identity the service has on
	// record (GET /auth/{username}). Any status other than 200 is a
	// console-level failure: a miss is the expected case while the user is
	// still typing or picking a free username.
	Lookup(ctx context.Context, username string) (string, error)

	// Login authenticates id with password (POST /auth). On 200 it returns
	// the URL the widget should navigate to. Any other status is a failure.
	Login(ctx context.Context, id, password string) (string, error)

	// ChangePassword replaces oldPassword with newPassword for id
	// (PATCH /auth/{id}). On 204 it returns the Location header the widget
	// should navigate to after the user acknowledges. Any other status is a
	// failure.
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (string, error)

	// RequestReset asks the service to send a recovery link to the contact
	// fields present in req (DELETE /auth). 204 is the only success.
	RequestReset(ctx context.Context, req models.ResetRequest) error

	// CreateAccount registers a new account (POST /user). On 201 it returns
	// the response body as the newly assigned identity. Any other status is
	// a failure.
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (string, error)

	// Logout ends the current session (POST /logout). A 202 accepted/pending
	// response means the service could not complete the logout and is
	// reported as a failure; every other completion is success.
	Logout(ctx context.Context) error
}
