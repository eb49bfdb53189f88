package session

import (
	"context"
	"errors"
	"testing"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
)

type fakeAuth struct {
	loginCalls    int
	registerCalls int
	token         string
	err           error
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (string, error) {
	f.loginCalls++
	return f.token, f.err
}

func (f *fakeAuth) Register(_ context.Context, _, _ string) error {
	f.registerCalls++
	return f.err
}

func TestLoginSuccessStoresToken(t *testing.T) {
	auth := &fakeAuth{token: "tok-1"}
	s := New(auth)
	if err := s.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if s.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %s", s.State())
	}
	if s.Token() != "tok-1" || s.Email() != "a@b.com" {
		t.Fatalf("unexpected session: token=%q email=%q", s.Token(), s.Email())
	}
}

func TestLoginRejectedStaysAnonymous(t *testing.T) {
	auth := &fakeAuth{err: &api.AuthenticationError{Reason: "authentication failed: Invalid credentials"}}
	s := New(auth)
	err := s.Login(context.Background(), "a@b.com", "bad")
	if err == nil || err.Error() == "" {
		t.Fatal("expected non-empty failure")
	}
	if s.State() != Anonymous {
		t.Fatalf("expected Anonymous after rejection, got %s", s.State())
	}
	if s.Token() != "" {
		t.Fatalf("expected no token, got %q", s.Token())
	}
}

func TestLoginEmptyCredentialsIsLocalValidation(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	s := New(auth)
	err := s.Login(context.Background(), "", "pw")
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if auth.loginCalls != 0 {
		t.Fatalf("expected zero network calls, got %d", auth.loginCalls)
	}
	if s.State() != Anonymous {
		t.Fatalf("expected Anonymous, got %s", s.State())
	}
}

func TestLoginWhileAuthenticatedIsGuarded(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	s := New(auth)
	if err := s.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := s.Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatal("expected guard error on second login")
	}
	if auth.loginCalls != 1 {
		t.Fatalf("expected one network call, got %d", auth.loginCalls)
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	auth := &fakeAuth{}
	s := New(auth)
	if err := s.Register(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if auth.registerCalls != 1 {
		t.Fatalf("expected one register call, got %d", auth.registerCalls)
	}
	if s.State() != Anonymous || s.Token() != "" {
		t.Fatalf("expected Anonymous with no token after register, got %s %q", s.State(), s.Token())
	}
}

func TestLogoutClearsToken(t *testing.T) {
	s := New(&fakeAuth{token: "tok"})
	if err := s.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	s.Logout()
	if s.State() != Anonymous || s.Token() != "" || s.Email() != "" {
		t.Fatalf("expected cleared session, got %s %q %q", s.State(), s.Token(), s.Email())
	}
}

func TestCompleteAfterLogoutIsIgnored(t *testing.T) {
	s := New(&fakeAuth{})
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	s.Logout()
	s.Complete("a@b.com", "stale-token")
	if s.State() != Anonymous || s.Token() != "" {
		t.Fatalf("stale completion must not resurrect the session: %s %q", s.State(), s.Token())
	}
}

func TestAdoptRestoresPersistedToken(t *testing.T) {
	s := New(&fakeAuth{})
	s.Adopt("a@b.com", "tok-saved")
	if !s.Authenticated() || s.Token() != "tok-saved" {
		t.Fatalf("expected adopted session, got %s %q", s.State(), s.Token())
	}
	s.Adopt("x@y.com", "  ")
	if s.Token() != "tok-saved" {
		t.Fatal("blank adopt must be a no-op")
	}
}
