// Package ui is the interactive dashboard. It composes the auth session,
// the alert query and the upload workflow; all business state lives in
// those components and every mutation happens on the bubbletea event
// loop, with network calls running inside tea.Cmd closures.
package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Promzy01/logsentinel-frontend/internal/alerts"
	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/session"
	"github.com/Promzy01/logsentinel-frontend/internal/upload"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
)

type mode int

const (
	modeNormal mode = iota
	modeUpload
	modeFilter
)

// Options wires the dashboard to its components and to the persistence
// hooks the CLI layer provides. All hooks are optional.
type Options struct {
	Client  *api.Client
	Session *session.Session
	Query   *alerts.Query
	Uploads *upload.Workflow

	Email          string
	Filter         api.AlertFilter
	ShowPastAlerts bool
	Colors         bool

	OnLogin  func(email, token string)
	OnLogout func(email string)
	OnUpload func(email string)
	OnSearch func(filter api.AlertFilter)
}

type model struct {
	opts    Options
	sess    *session.Session
	query   *alerts.Query
	uploads *upload.Workflow

	view  view
	mode  mode
	focus int

	emailInput    textinput.Model
	passwordInput textinput.Model
	fileInput     textinput.Model
	contactInput  textinput.Model
	ipInput       textinput.Model
	fromInput     textinput.Model
	toInput       textinput.Model

	showPast   bool
	busyAuth   bool
	busyUpload bool
	busyFetch  bool

	status    string
	statusErr bool

	styles styles
}

type authResultMsg struct {
	register bool
	email    string
	token    string
	err      error
}

type uploadResultMsg struct {
	seq     uint64
	email   string
	summary *api.UploadSummary
	err     error
}

type alertsResultMsg struct {
	seq     uint64
	records []api.AlertRecord
	err     error
}

func Run(opts Options) error {
	m := initialModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func initialModel(opts Options) model {
	newInput := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = width
		return ti
	}

	m := model{
		opts:          opts,
		sess:          opts.Session,
		query:         opts.Query,
		uploads:       opts.Uploads,
		emailInput:    newInput("email", 40),
		passwordInput: newInput("password", 40),
		fileInput:     newInput("path to log file", 40),
		contactInput:  newInput("contact email", 40),
		ipInput:       newInput("search IP", 20),
		fromInput:     newInput("from YYYY-MM-DD", 16),
		toInput:       newInput("to YYYY-MM-DD", 16),
		showPast:      opts.ShowPastAlerts,
		styles:        newStyles(opts.Colors),
	}
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.emailInput.SetValue(opts.Email)
	m.contactInput.SetValue(opts.Email)
	m.ipInput.SetValue(opts.Filter.IP)
	m.fromInput.SetValue(opts.Filter.From)
	m.toInput.SetValue(opts.Filter.To)
	m.query.SetFilter(opts.Filter)

	if m.sess.Authenticated() {
		m.view = viewDashboard
	} else {
		m.view = viewLogin
		m.emailInput.Focus()
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.view == viewDashboard {
		return m.fetchAlertsCmd()
	}
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewLogin, viewRegister:
			return m.updateAuthView(msg)
		default:
			return m.updateDashboard(msg)
		}
	case authResultMsg:
		return m.applyAuthResult(msg)
	case uploadResultMsg:
		return m.applyUploadResult(msg)
	case alertsResultMsg:
		return m.applyAlertsResult(msg)
	}
	return m, nil
}

func (m model) updateAuthView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, textinput.Blink
	case "ctrl+r":
		// Toggle between the login and register screens.
		if m.view == viewLogin {
			m.view = viewRegister
		} else {
			m.view = viewLogin
		}
		m.status = ""
		m.statusErr = false
		return m, nil
	case "enter":
		return m.submitAuth()
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m model) submitAuth() (tea.Model, tea.Cmd) {
	if m.busyAuth {
		return m, nil
	}
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		return m.fail("Email and password are required."), nil
	}
	if err := m.sess.Begin(); err != nil {
		return m.fail(err.Error()), nil
	}
	m.busyAuth = true
	m.status = ""
	register := m.view == viewRegister
	client := m.opts.Client
	return m, func() tea.Msg {
		if register {
			err := client.Register(context.Background(), email, password)
			return authResultMsg{register: true, email: email, err: err}
		}
		token, err := client.Login(context.Background(), email, password)
		return authResultMsg{email: email, token: token, err: err}
	}
}

func (m model) applyAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.busyAuth = false
	if msg.err != nil {
		m.sess.Fail()
		return m.fail(msg.err.Error()), nil
	}
	if msg.register {
		// Registration never authenticates; route back to login.
		m.sess.Fail()
		m.view = viewLogin
		m.passwordInput.SetValue("")
		return m.ok("Registration successful! You can now log in."), nil
	}
	m.sess.Complete(msg.email, msg.token)
	if !m.sess.Authenticated() {
		// The session was logged out while the request was in flight;
		// discard the stale completion.
		return m, nil
	}
	if m.opts.OnLogin != nil {
		m.opts.OnLogin(msg.email, msg.token)
	}
	m.view = viewDashboard
	m.mode = modeNormal
	m.passwordInput.SetValue("")
	m = m.ok("Logged in as " + msg.email)
	return m, m.fetchAlertsCmd()
}

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeUpload:
		return m.updateUploadForm(msg)
	case modeFilter:
		return m.updateFilterForm(msg)
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "u":
		m.mode = modeUpload
		m.focus = 0
		m.fileInput.Focus()
		m.contactInput.Blur()
		return m, textinput.Blink
	case "/":
		m.mode = modeFilter
		m.focus = 0
		m.ipInput.Focus()
		m.fromInput.Blur()
		m.toInput.Blur()
		return m, textinput.Blink
	case "p":
		m.showPast = !m.showPast
		return m, nil
	case "r":
		return m.startFetch()
	case "o":
		email := m.sess.Email()
		m.sess.Logout()
		if m.opts.OnLogout != nil {
			m.opts.OnLogout(email)
		}
		m.view = viewLogin
		m.focus = 0
		m.emailInput.Focus()
		m.passwordInput.SetValue("")
		return m.ok("Logged out."), textinput.Blink
	}
	return m, nil
}

func (m model) updateUploadForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.fileInput.Blur()
		m.contactInput.Blur()
		return m, nil
	case "tab", "shift+tab":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.fileInput.Focus()
			m.contactInput.Blur()
		} else {
			m.fileInput.Blur()
			m.contactInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		return m.submitUpload()
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.fileInput, cmd = m.fileInput.Update(msg)
	} else {
		m.contactInput, cmd = m.contactInput.Update(msg)
	}
	return m, cmd
}

func (m model) submitUpload() (tea.Model, tea.Cmd) {
	if m.busyUpload {
		return m, nil
	}
	path := strings.TrimSpace(m.fileInput.Value())
	email := strings.TrimSpace(m.contactInput.Value())
	seq, err := m.uploads.Begin(path, email)
	if err != nil {
		return m.fail("Please select a log file and enter your email"), nil
	}
	m.busyUpload = true
	m.mode = modeNormal
	m.fileInput.Blur()
	m.contactInput.Blur()
	m.status = ""
	client := m.opts.Client
	return m, func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadResultMsg{seq: seq, email: email, err: &api.ValidationError{Reason: "cannot read log file: " + err.Error()}}
		}
		defer f.Close()
		sum, err := client.UploadLog(context.Background(), filepath.Base(path), f, email)
		return uploadResultMsg{seq: seq, email: email, summary: sum, err: err}
	}
}

func (m model) applyUploadResult(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	m.busyUpload = false
	applied, err := m.uploads.Apply(msg.seq, msg.summary, msg.err)
	if err != nil {
		return m.fail("Upload failed: " + err.Error()), nil
	}
	if !applied {
		return m, nil
	}
	if m.opts.OnUpload != nil {
		m.opts.OnUpload(msg.email)
	}
	m = m.ok("Log uploaded and analyzed")
	// A successful upload may have produced new alerts; refresh the list
	// with the active filter while a credential is held.
	return m, m.fetchAlertsCmd()
}

func (m model) updateFilterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&m.ipInput, &m.fromInput, &m.toInput}
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		for _, in := range inputs {
			in.Blur()
		}
		return m, nil
	case "tab", "shift+tab", "up", "down":
		step := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			step = len(inputs) - 1
		}
		m.focus = (m.focus + step) % len(inputs)
		for i, in := range inputs {
			if i == m.focus {
				in.Focus()
			} else {
				in.Blur()
			}
		}
		return m, textinput.Blink
	case "enter":
		m.mode = modeNormal
		for _, in := range inputs {
			in.Blur()
		}
		filter := api.AlertFilter{
			IP:   strings.TrimSpace(m.ipInput.Value()),
			From: strings.TrimSpace(m.fromInput.Value()),
			To:   strings.TrimSpace(m.toInput.Value()),
		}
		m.query.SetFilter(filter)
		if m.opts.OnSearch != nil {
			m.opts.OnSearch(filter)
		}
		m.showPast = true
		return m.startFetch()
	}
	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.ipInput, cmd = m.ipInput.Update(msg)
	case 1:
		m.fromInput, cmd = m.fromInput.Update(msg)
	default:
		m.toInput, cmd = m.toInput.Update(msg)
	}
	return m, cmd
}

func (m model) startFetch() (tea.Model, tea.Cmd) {
	cmd := m.fetchAlertsCmd()
	if cmd != nil {
		m.busyFetch = true
	}
	return m, cmd
}

// fetchAlertsCmd gates and issues one alert fetch. The sequence token and
// the borrowed bearer token are captured on the event loop; only the
// network call runs in the returned command.
func (m *model) fetchAlertsCmd() tea.Cmd {
	seq, token, ok := m.query.Begin()
	if !ok {
		return nil
	}
	filter := m.query.Filter()
	client := m.opts.Client
	return func() tea.Msg {
		records, err := client.Alerts(context.Background(), filter, token)
		return alertsResultMsg{seq: seq, records: records, err: err}
	}
}

func (m model) applyAlertsResult(msg alertsResultMsg) (tea.Model, tea.Cmd) {
	m.busyFetch = false
	if _, err := m.query.Apply(msg.seq, msg.records, msg.err); err != nil {
		// The previous result set is retained; just report the failure.
		return m.fail("Could not load alerts: " + err.Error()), nil
	}
	return m, nil
}

func (m model) ok(text string) model {
	m.status = text
	m.statusErr = false
	return m
}

func (m model) fail(text string) model {
	m.status = text
	m.statusErr = true
	return m
}
