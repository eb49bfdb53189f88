package cli

import (
	"github.com/spf13/cobra"

	"github.com/Promzy01/logsentinel-frontend/internal/alerts"
	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/terminal"
	"github.com/Promzy01/logsentinel-frontend/internal/ui"
	"github.com/Promzy01/logsentinel-frontend/internal/upload"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, _ := a.apiClient()
			sess := a.restoreSession()
			st := a.loadState()

			email := st.LastEmail
			if email == "" {
				email = a.cfg.Upload.Email
			}

			opts := ui.Options{
				Client:  client,
				Session: sess,
				Query:   alerts.New(client, sess),
				Uploads: upload.New(client),
				Email:   email,
				Filter: api.AlertFilter{
					IP:   st.FilterIP,
					From: st.FilterFrom,
					To:   st.FilterTo,
				},
				ShowPastAlerts: a.cfg.TUI.ShowPastAlerts,
				Colors:         a.cfg.TUI.Colors && !terminal.ColorDisabled(),
				OnLogin: func(email, token string) {
					saveCredential(a, email, token)
				},
				OnLogout: func(string) {
					clearCredential(a)
				},
				OnUpload: func(email string) {
					s := a.loadState()
					s.MarkUploaded(email)
					a.saveState(s)
				},
				OnSearch: func(f api.AlertFilter) {
					s := a.loadState()
					s.MarkSearched(f.IP, f.From, f.To)
					a.saveState(s)
				},
			}
			return ui.Run(opts)
		},
	}
}
