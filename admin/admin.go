// Package admin holds the admin session model: the credential a visitor
// logs in with, the states a session moves through, and the hidden footer
// trigger that opens the login form.
//
// Nothing here is a security boundary. The credential only decides whether
// editing controls are shown; writes are authorised by GitHub accepting the
// token.
package admin

import (
	"errors"
	"strings"
	"time"
)

// SessionDuration is how long a login stays valid.
const SessionDuration = time.Hour

var ErrMissingCredentials = errors.New("repository and token are required")

type State int

const (
	Anonymous State = iota
	Authenticating
	Admin
	Expired
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Admin:
		return "admin"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Credential is what a logged-in session persists.
type Credential struct {
	Repository string
	Token      string
	LoginAt    time.Time
}

// Login validates repo and token and stamps the login time.
func Login(repo, token string, now time.Time) (Credential, error) {
	repo = strings.Trim(strings.TrimSpace(repo), "/")
	token = strings.TrimSpace(token)
	if repo == "" || token == "" {
		return Credential{}, ErrMissingCredentials
	}
	return Credential{Repository: repo, Token: token, LoginAt: now}, nil
}

// Valid reports whether the credential holds a repository and token.
func (c Credential) Valid() bool {
	return c.Repository != "" && c.Token != ""
}

// Expired reports whether more than d has passed since login.
func (c Credential) Expired(now time.Time, d time.Duration) bool {
	return now.Sub(c.LoginAt) > d
}

// Evaluate returns the session state for a stored credential and the
// current trigger progress.
func Evaluate(c Credential, unlocked bool, now time.Time, d time.Duration) State {
	switch {
	case c.Valid() && c.Expired(now, d):
		return Expired
	case c.Valid():
		return Admin
	case unlocked:
		return Authenticating
	default:
		return Anonymous
	}
}
