package api

import (
	"net/url"
	"strings"
	"time"
)

// AlertFilter narrows an alert query. Empty fields mean "no constraint";
// the server ANDs whatever is set (IP substring match, inclusive date
// bounds). Dates are YYYY-MM-DD strings as entered by the user.
type AlertFilter struct {
	IP   string
	From string
	To   string
}

// Query encodes the set constraints as URL query parameters.
func (f AlertFilter) Query() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.IP); s != "" {
		v.Set("ip", s)
	}
	if s := strings.TrimSpace(f.From); s != "" {
		v.Set("from", s)
	}
	if s := strings.TrimSpace(f.To); s != "" {
		v.Set("to", s)
	}
	return v
}

// IsZero reports whether no constraint is set.
func (f AlertFilter) IsZero() bool {
	return strings.TrimSpace(f.IP) == "" && strings.TrimSpace(f.From) == "" && strings.TrimSpace(f.To) == ""
}

// AlertRecord is one historical alert as returned by the server. Records
// are immutable once received; each query replaces the prior set wholesale.
type AlertRecord struct {
	IP             string    `json:"ip"`
	Timestamp      time.Time `json:"timestamp"`
	FailedAttempts int       `json:"failedAttempts"`
	WithinSeconds  int       `json:"withinSeconds"`
}

// SuspiciousIP is one flagged address in an upload result. The risk tier
// is derived at render time and never stored here.
type SuspiciousIP struct {
	IP             string `json:"ip"`
	FailedAttempts int    `json:"failedAttempts"`
	WithinSeconds  int    `json:"withinSeconds"`
}

// UploadSummary is the analysis result for one uploaded log file.
type UploadSummary struct {
	Filename      string         `json:"filename"`
	TotalLines    int            `json:"totalLines"`
	Preview       []string       `json:"preview"`
	SuspiciousIPs []SuspiciousIP `json:"suspiciousIPs"`
}
