package models

// Wire bodies exchanged with the auth service. Optional contact fields are
// plain pointers (no omitempty) so an absent value serializes as an explicit
// null, which is what the service expects.

// LookupResponse is the body of a successful GET /auth/{username}.
type LookupResponse struct {
	// ID is the opaque identity the service assigned to the username.
	ID string `json:"id"`
}

// LoginRequest is the body of POST /auth.
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// PasswordChangeRequest is the body of PATCH /auth/{id}.
type PasswordChangeRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ResetRequest is the body of DELETE /auth, asking the service to send a
// recovery link to whichever contact fields are present.
type ResetRequest struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Cell  *string `json:"cell"`

	// Redirect is the page the recovery link should bring the user back to
	// in order to complete the reset.
	Redirect string `json:"redirect"`
}

// CreateAccountRequest is the body of POST /user.
type CreateAccountRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Cell     *string `json:"cell"`
}

// OptionalString maps an empty draft value to an absent (null) wire field.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
