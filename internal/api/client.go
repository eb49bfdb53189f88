// Package api is the HTTP boundary to the LogSentinel backend. The
// parsing and anomaly-detection engine lives entirely on the server; this
// client only submits work and reads results back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	// AuthStylePrefixed mounts auth under /auth (e.g. /auth/login).
	AuthStylePrefixed = "prefixed"
	// AuthStyleBare mounts auth at the root (e.g. /login). Some deployments
	// of the backend expose this layout instead.
	AuthStyleBare = "bare"
)

type Config struct {
	Endpoint  string
	AuthStyle string
	Timeout   time.Duration
}

func (c Config) normalized() Config {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	c.AuthStyle = strings.ToLower(strings.TrimSpace(c.AuthStyle))
	if c.AuthStyle != AuthStyleBare {
		c.AuthStyle = AuthStylePrefixed
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) *Client {
	cfg = cfg.normalized()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Endpoint returns the normalized base URL this client talks to.
func (c *Client) Endpoint() string { return c.cfg.Endpoint }

func (c *Client) authPath(leaf string) string {
	if c.cfg.AuthStyle == AuthStyleBare {
		return c.cfg.Endpoint + "/" + leaf
	}
	return c.cfg.Endpoint + "/auth/" + leaf
}

// Login exchanges credentials for a bearer token. Any rejection, whether
// bad credentials or an unreachable server, surfaces as a single
// authentication failure; callers do not need to tell them apart.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, c.authPath("login"), payload, "", &out); err != nil {
		return "", &AuthenticationError{Reason: "authentication failed: " + errReason(err)}
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", &AuthenticationError{Reason: "authentication failed: server returned no token"}
	}
	return out.Token, nil
}

// Register creates an account. It does not authenticate; the caller is
// expected to log in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, c.authPath("register"), payload, "", &out); err != nil {
		return &AuthenticationError{Reason: "registration failed: " + errReason(err)}
	}
	return nil
}

// UploadLog submits a log file plus contact email as multipart form data
// and returns the computed summary.
func (c *Client) UploadLog(ctx context.Context, filename string, file io.Reader, email string) (*UploadSummary, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("logfile", filename)
	if err != nil {
		return nil, transportErrorf("upload", "build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, transportErrorf("upload", "read log file: %w", err)
	}
	if err := w.WriteField("email", email); err != nil {
		return nil, transportErrorf("upload", "build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, transportErrorf("upload", "build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/upload-log", &body)
	if err != nil {
		return nil, transportErrorf("upload", "%w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out UploadSummary
	if err := c.do(req, "upload", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts fetches historical alerts matching the filter. Filtering is
// evaluated server-side; the returned order is whatever the server sent.
func (c *Client) Alerts(ctx context.Context, filter AlertFilter, token string) ([]AlertRecord, error) {
	if strings.TrimSpace(token) == "" {
		return nil, validationErrorf("alert query requires a bearer token")
	}
	u := c.cfg.Endpoint + "/alerts"
	if q := filter.Query().Encode(); q != "" {
		u += "?" + q
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportErrorf("alerts", "%w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out struct {
		Alerts []AlertRecord `json:"alerts"`
	}
	if err := c.do(req, "alerts", &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload any, token string, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return transportErrorf("request", "%w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return transportErrorf("request", "%w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, "request", out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErrorf(op, "read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthenticationError{Reason: serverMessage(body, fmt.Sprintf("request rejected (%d)", resp.StatusCode))}
	}
	if resp.StatusCode >= 400 {
		return transportErrorf(op, "server returned %d: %s", resp.StatusCode, serverMessage(body, "no detail"))
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return transportErrorf(op, "unexpected response shape: %w", err)
	}
	return nil
}

// serverMessage extracts a displayable message from an error body. The
// backend uses {"message": ...}; some paths use {"error": ...}.
func serverMessage(body []byte, fallback string) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &m); err == nil {
		if strings.TrimSpace(m.Message) != "" {
			return strings.TrimSpace(m.Message)
		}
		if strings.TrimSpace(m.Error) != "" {
			return strings.TrimSpace(m.Error)
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 240 {
		msg = msg[:240]
	}
	if msg == "" {
		return fallback
	}
	return msg
}

func errReason(err error) string {
	if err == nil {
		return "unknown error"
	}
	if ae, ok := err.(*AuthenticationError); ok {
		return ae.Reason
	}
	return err.Error()
}
