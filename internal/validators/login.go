// Package validators holds the pure field predicates used by the login
// widget. They are intentionally permissive pattern checks, not full RFC
// validation: the auth service is the authority, the client only gates
// obviously-incomplete input to avoid needless requests.
package validators

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)

	// Unanchored on purpose: a valid address anywhere in the value passes,
	// matching the widget's historical behavior.
	emailRe = regexp.MustCompile(`[^@]{2,}@[^.]{2,}\.[A-Za-z]{2,3}`)
)

// Username reports whether s is a plausible username: longer than 7
// characters, every one of them alphanumeric, underscore, or hyphen.
func Username(s string) bool {
	return len(s) > 7 && usernameRe.MatchString(s)
}

// Password reports whether s is a plausible password: longer than 7
// characters and containing at least one letter.
func Password(s string) bool {
	return len(s) > 7 && letterRe.MatchString(s)
}

// Cell reports whether the digit-only projection of s has exactly 10
// characters, so formatted numbers like "(555) 123-4567" pass.
func Cell(s string) bool {
	return len(digitRe.FindAllString(s, -1)) == 10
}

// Email reports whether s contains local@label.tld with a local part of at
// least 2 non-'@' characters, a domain label of at least 2 characters, and
// a 2-3 letter TLD.
func Email(s string) bool {
	return emailRe.MatchString(s)
}
