package cli

import (
	"github.com/spf13/cobra"

	"github.com/Promzy01/logsentinel-frontend/internal/alerts"
	"github.com/Promzy01/logsentinel-frontend/internal/api"
)

func newAlertsCmd(a *app) *cobra.Command {
	var filter api.AlertFilter
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List past alerts for your account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}
			client, _ := a.apiClient()
			q := alerts.New(client, sess)
			q.SetFilter(filter)
			if _, err := q.Fetch(cmd.Context()); err != nil {
				return err
			}

			if !filter.IsZero() {
				st := a.loadState()
				st.MarkSearched(filter.IP, filter.From, filter.To)
				a.saveState(st)
			}

			renderAlertTable(cmd, q.Records())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.IP, "ip", "", "only alerts for this IP address")
	cmd.Flags().StringVar(&filter.From, "from", "", "only alerts on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "only alerts on or before this date (YYYY-MM-DD)")
	return cmd
}
