package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/risk"
	"github.com/Promzy01/logsentinel-frontend/internal/upload"
)

func newUploadCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "upload <logfile>",
		Short: "Upload a log file for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.cfg.Upload.Email
			}
			client, _ := a.apiClient()
			wf := upload.New(client)
			summary, err := wf.UploadFile(cmd.Context(), args[0], email)
			if err != nil {
				return err
			}

			st := a.loadState()
			st.MarkUploaded(email)
			a.saveState(st)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Analyzed %s (%d lines)\n", summary.Filename, summary.TotalLines)
			for _, line := range summary.Preview {
				fmt.Fprintf(out, "  | %s\n", line)
			}
			if len(summary.SuspiciousIPs) == 0 {
				fmt.Fprintln(out, "No suspicious activity found")
				return nil
			}
			fmt.Fprintf(out, "%d suspicious IP(s):\n", len(summary.SuspiciousIPs))
			for _, ip := range summary.SuspiciousIPs {
				tier := risk.Classify(ip.FailedAttempts)
				fmt.Fprintf(out, "  %-6s %-16s %d failed attempts in %ds\n",
					strings.ToUpper(tier.String()), ip.IP, ip.FailedAttempts, ip.WithinSeconds)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email for the alert (default from config)")
	return cmd
}

func renderAlertTable(cmd *cobra.Command, records []api.AlertRecord) {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No alerts found")
		return
	}
	fmt.Fprintf(out, "%-6s %-16s %-20s %8s %8s\n", "RISK", "IP", "TIME", "ATTEMPTS", "WINDOW")
	for _, rec := range records {
		tier := risk.Classify(rec.FailedAttempts)
		fmt.Fprintf(out, "%-6s %-16s %-20s %8d %7ds\n",
			strings.ToUpper(tier.String()), rec.IP,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.FailedAttempts, rec.WithinSeconds)
	}
}
