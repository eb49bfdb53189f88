// Package session owns the authentication state machine and the bearer
// token. The token lives here and nowhere else; other components borrow
// it per request and never persist it.
package session

import (
	"context"
	"strings"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Authenticator is the slice of the HTTP boundary the session needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) error
}

type Session struct {
	client Authenticator
	state  State
	token  string
	email  string
}

func New(client Authenticator) *Session {
	return &Session{client: client}
}

func (s *Session) State() State        { return s.state }
func (s *Session) Authenticated() bool { return s.state == Authenticated }
func (s *Session) Token() string       { return s.token }
func (s *Session) Email() string       { return s.email }

// Begin moves Anonymous to Authenticating. It is the gate for issuing an
// authentication request; any other starting state is a caller error.
func (s *Session) Begin() error {
	if s.state != Anonymous {
		return &api.ValidationError{Reason: "already " + s.state.String()}
	}
	s.state = Authenticating
	return nil
}

// Complete stores the token obtained for email and moves to Authenticated.
// Ignored unless a Begin is pending, so a login result that lands after a
// logout cannot resurrect a cleared credential.
func (s *Session) Complete(email, token string) {
	if s.state != Authenticating {
		return
	}
	s.email = strings.TrimSpace(email)
	s.token = token
	s.state = Authenticated
}

// Fail abandons a pending authentication and returns to Anonymous.
func (s *Session) Fail() {
	if s.state == Authenticating {
		s.state = Anonymous
	}
}

// Adopt restores a previously persisted token, e.g. at CLI startup.
func (s *Session) Adopt(email, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	s.email = strings.TrimSpace(email)
	s.token = token
	s.state = Authenticated
}

// Logout unconditionally clears the token. Always succeeds, synchronous.
func (s *Session) Logout() {
	s.state = Anonymous
	s.token = ""
	s.email = ""
}

// Login runs the full transition for blocking callers: validate, Begin,
// network call, Complete or Fail. Rejected credentials and transport
// failures surface as one authentication-failed outcome.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	if err := s.Begin(); err != nil {
		return err
	}
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.Fail()
		return err
	}
	s.Complete(email, token)
	return nil
}

// Register creates an account without authenticating; the caller routes
// to login on success. The transition shape matches Login.
func (s *Session) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	if err := s.Begin(); err != nil {
		return err
	}
	err := s.client.Register(ctx, email, password)
	s.Fail()
	return err
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return &api.ValidationError{Reason: "email and password are required"}
	}
	return nil
}
