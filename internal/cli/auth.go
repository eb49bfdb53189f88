package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Promzy01/logsentinel-frontend/internal/keychain"
	"github.com/Promzy01/logsentinel-frontend/internal/session"
	"github.com/Promzy01/logsentinel-frontend/internal/state"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = a.cfg.Upload.Email
			}
			var err error
			email, password, err = a.promptCredentials(email, password)
			if err != nil {
				return err
			}
			_, sess := a.apiClient()
			if err := sess.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			saveCredential(a, email, sess.Token())
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			email, password, err = a.promptCredentials(email, password)
			if err != nil {
				return err
			}
			_, sess := a.apiClient()
			if err := sess.Register(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run 'logsentinel login' to sign in.\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess := a.apiClient()
			sess.Logout()
			clearCredential(a)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account attached to the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.restoreSession()
			if !sess.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Email())
			return nil
		},
	}
}

// promptCredentials fills missing credentials interactively. The password
// prompt suppresses echo when stdin is a terminal.
func (a *app) promptCredentials(email, password string) (string, string, error) {
	if email == "" {
		fmt.Fprint(a.stdout, "Email: ")
		r := bufio.NewReader(a.stdin)
		line, err := r.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprint(a.stdout, "Password: ")
			raw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(a.stdout)
			if err != nil {
				return "", "", fmt.Errorf("reading password: %w", err)
			}
			password = string(raw)
		} else {
			r := bufio.NewReader(a.stdin)
			line, err := r.ReadString('\n')
			if err != nil {
				return "", "", fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}
	return email, password, nil
}

// Credentials prefer the OS keychain; the state file is the fallback for
// hosts without one. Email always lands in the state file so prefill and
// whoami work either way.
func saveCredential(a *app, email, token string) {
	st := a.loadState()
	st.SetCredential(email, token)
	if keychain.Available() {
		if err := keychain.StoreToken(email, token); err == nil {
			st.Token = ""
		}
	}
	a.saveState(st)
}

func loadCredential() (email, token string) {
	st, err := state.Load()
	if err != nil {
		return "", ""
	}
	if st.Email == "" {
		return "", ""
	}
	if keychain.Available() {
		if tok, err := keychain.LoadToken(st.Email); err == nil && tok != "" {
			return st.Email, tok
		}
	}
	return st.Email, st.Token
}

func clearCredential(a *app) {
	st := a.loadState()
	if st.Email != "" && keychain.Available() {
		_ = keychain.DeleteToken(st.Email)
	}
	st.ClearCredential()
	a.saveState(st)
}

// requireSession restores a saved credential and fails with a uniform
// message when none exists.
func (a *app) requireSession() (*session.Session, error) {
	sess := a.restoreSession()
	if !sess.Authenticated() {
		return nil, fmt.Errorf("not logged in; run 'logsentinel login' first")
	}
	return sess, nil
}
