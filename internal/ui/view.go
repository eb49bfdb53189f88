package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/risk"
)

type styles struct {
	title  lipgloss.Style
	help   lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
}

func newStyles(colors bool) styles {
	if !colors {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain.Bold(true), help: plain, label: plain,
			ok: plain, err: plain, high: plain, medium: plain, low: plain,
		}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		high:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

func (s styles) tier(t risk.Tier) lipgloss.Style {
	switch t {
	case risk.High:
		return s.high
	case risk.Medium:
		return s.medium
	default:
		return s.low
	}
}

func (m model) View() string {
	switch m.view {
	case viewLogin:
		return m.viewAuth("LogSentinel Login", "enter: log in  ctrl+r: register instead  ctrl+c: quit")
	case viewRegister:
		return m.viewAuth("LogSentinel Register", "enter: create account  ctrl+r: back to login  ctrl+c: quit")
	default:
		return m.viewDashboard()
	}
}

func (m model) viewAuth(title, help string) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(title) + "\n\n")
	b.WriteString(m.styles.label.Render("Email:    ") + m.emailInput.View() + "\n")
	b.WriteString(m.styles.label.Render("Password: ") + m.passwordInput.View() + "\n\n")
	if m.busyAuth {
		b.WriteString("Contacting server...\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString(m.styles.help.Render(help) + "\n")
	return b.String()
}

func (m model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("LogSentinel Dashboard") + "  ")
	b.WriteString(m.styles.help.Render(m.sess.Email()) + "\n\n")

	switch m.mode {
	case modeUpload:
		b.WriteString(m.styles.label.Render("Upload a log file") + "\n")
		b.WriteString("File:  " + m.fileInput.View() + "\n")
		b.WriteString("Email: " + m.contactInput.View() + "\n")
		b.WriteString(m.styles.help.Render("enter: upload  tab: next field  esc: cancel") + "\n\n")
	case modeFilter:
		b.WriteString(m.styles.label.Render("Search past alerts") + "\n")
		b.WriteString("IP:   " + m.ipInput.View() + "\n")
		b.WriteString("From: " + m.fromInput.View() + "\n")
		b.WriteString("To:   " + m.toInput.View() + "\n")
		b.WriteString(m.styles.help.Render("enter: search  tab: next field  esc: cancel") + "\n\n")
	}

	if sum := m.uploads.Summary(); sum != nil {
		b.WriteString(m.renderSummary(sum))
	}

	if m.showPast {
		b.WriteString(m.renderAlerts())
	}

	b.WriteString(m.statusLine())
	if m.mode == modeNormal {
		b.WriteString(m.styles.help.Render("u: upload  /: search  p: toggle past alerts  r: refresh  o: logout  q: quit") + "\n")
	}
	return b.String()
}

func (m model) renderSummary(sum *api.UploadSummary) string {
	var b strings.Builder
	b.WriteString(m.styles.label.Render("Last analysis") + "\n")
	fmt.Fprintf(&b, "%s (%d lines)\n", sum.Filename, sum.TotalLines)
	if len(sum.Preview) > 0 {
		b.WriteString(m.styles.help.Render(strings.Join(sum.Preview, "\n")) + "\n")
	}
	if len(sum.SuspiciousIPs) == 0 {
		b.WriteString(m.styles.ok.Render("No suspicious activity found.") + "\n\n")
		return b.String()
	}
	for _, ip := range sum.SuspiciousIPs {
		tier := risk.Classify(ip.FailedAttempts)
		badge := m.styles.tier(tier).Render(strings.ToUpper(tier.String()))
		fmt.Fprintf(&b, "  %-6s %-16s %d failed attempts in %ds\n",
			badge, ip.IP, ip.FailedAttempts, ip.WithinSeconds)
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) renderAlerts() string {
	var b strings.Builder
	b.WriteString(m.styles.label.Render("Past alerts") + "\n")
	if m.busyFetch {
		b.WriteString("Loading alerts...\n\n")
		return b.String()
	}
	records := m.query.Records()
	if !m.query.Fetched() {
		b.WriteString(m.styles.help.Render("No alerts loaded yet (press r to refresh).") + "\n\n")
		return b.String()
	}
	if len(records) == 0 {
		b.WriteString(m.styles.help.Render("No alerts match the current filter.") + "\n\n")
		return b.String()
	}
	for _, rec := range records {
		tier := risk.Classify(rec.FailedAttempts)
		badge := m.styles.tier(tier).Render(strings.ToUpper(tier.String()))
		fmt.Fprintf(&b, "  %-6s %-16s %s  %d failed attempts in %ds\n",
			badge, rec.IP, rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.FailedAttempts, rec.WithinSeconds)
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.err.Render(m.status) + "\n"
	}
	return m.styles.ok.Render(m.status) + "\n"
}
