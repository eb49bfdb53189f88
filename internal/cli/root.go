// Package cli wires the cobra command tree. Commands are thin: they load
// config and saved state, build the API client and session, and delegate
// to internal/session, internal/alerts and internal/upload.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
	lscfg "github.com/Promzy01/logsentinel-frontend/internal/config"
	"github.com/Promzy01/logsentinel-frontend/internal/session"
	"github.com/Promzy01/logsentinel-frontend/internal/state"
	"github.com/Promzy01/logsentinel-frontend/internal/version"
)

type app struct {
	server  string
	timeout time.Duration

	cfg    *lscfg.Config
	cfgErr error

	clientOnce sync.Once
	client     *api.Client
	sess       *session.Session

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newRootCommand(in, out, errOut)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cfg, cfgErr := lscfg.Load()
	if cfg == nil {
		cfg = lscfg.Default()
	}
	a := &app{
		cfg:    cfg,
		cfgErr: cfgErr,
		stdin:  in,
		stdout: out,
		stderr: errOut,
	}

	cmd := &cobra.Command{
		Use:           "logsentinel",
		Short:         "Terminal dashboard for the LogSentinel log-analysis service",
		Long:          "logsentinel uploads server logs for brute-force analysis, shows risk-classified results, and lets you search past alerts from your account.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.PersistentFlags().StringVar(&a.server, "server", "", "override the backend endpoint URL")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "override the request timeout")

	cmd.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newUploadCmd(a),
		newAlertsCmd(a),
		newDashboardCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	cmd.SetVersionTemplate(fmt.Sprintf("logsentinel {{.Version}} (commit %s, built %s)\n", version.Commit, version.BuildDate))

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if a.cfgErr != nil {
			return fmt.Errorf("invalid %s: %w", configPathSafe(), a.cfgErr)
		}
		if s := strings.TrimSpace(a.server); s != "" && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return fmt.Errorf("--server must start with http:// or https://")
		}
		return nil
	}

	cmd.SetErrPrefix("logsentinel: ")
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

// apiClient builds the shared client and session once, applying flag
// overrides on top of the loaded config.
func (a *app) apiClient() (*api.Client, *session.Session) {
	a.clientOnce.Do(func() {
		endpoint := a.cfg.Server.Endpoint
		if s := strings.TrimSpace(a.server); s != "" {
			endpoint = s
		}
		timeout := a.cfg.TimeoutDuration()
		if a.timeout > 0 {
			timeout = a.timeout
		}
		a.client = api.New(api.Config{
			Endpoint:  endpoint,
			AuthStyle: a.cfg.Server.AuthStyle,
			Timeout:   timeout,
		})
		a.sess = session.New(a.client)
	})
	return a.client, a.sess
}

// restoreSession adopts a previously saved credential, if any, so gated
// commands work across invocations without a fresh login.
func (a *app) restoreSession() *session.Session {
	_, sess := a.apiClient()
	if sess.Authenticated() {
		return sess
	}
	email, token := loadCredential()
	sess.Adopt(email, token)
	return sess
}

func (a *app) loadState() *state.Store {
	st, err := state.Load()
	if err != nil {
		fmt.Fprintf(a.stderr, "Warning: could not read saved state: %v\n", err)
		return &state.Store{}
	}
	return st
}

func (a *app) saveState(st *state.Store) {
	if err := state.Save(st); err != nil {
		fmt.Fprintf(a.stderr, "Warning: could not save state: %v\n", err)
	}
}

func configPathSafe() string {
	p, err := lscfg.FilePath()
	if err != nil {
		return "~/.logsentinel/config.yaml"
	}
	return p
}
