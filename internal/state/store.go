// Package state persists small per-user client state under
// ~/.logsentinel/state.json: the last contact email, the last alert
// filter, recent IP searches and, when the OS keychain is unavailable,
// the bearer token itself.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDirName  = ".logsentinel"
	stateFileName = "state.json"
	maxRecentIPs  = 10
)

type Store struct {
	// Token is only populated as a fallback when the OS keychain cannot
	// hold it. The file is written 0600 either way.
	Token       string   `json:"token,omitempty"`
	Email       string   `json:"email,omitempty"`
	LastEmail   string   `json:"lastEmail,omitempty"`
	FilterIP    string   `json:"filterIp,omitempty"`
	FilterFrom  string   `json:"filterFrom,omitempty"`
	FilterTo    string   `json:"filterTo,omitempty"`
	RecentIPs   []string `json:"recentIps,omitempty"`
}

func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName, stateFileName), nil
}

func Load() (*Store, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{}, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return &Store{}, nil
	}
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func Save(s *Store) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// MarkSearched records the filter of the latest alert query so the next
// session starts where the user left off.
func (s *Store) MarkSearched(ip, from, to string) {
	s.FilterIP = strings.TrimSpace(ip)
	s.FilterFrom = strings.TrimSpace(from)
	s.FilterTo = strings.TrimSpace(to)
	if s.FilterIP != "" {
		s.RecentIPs = addUniqueFront(s.RecentIPs, s.FilterIP, maxRecentIPs)
	}
}

// MarkUploaded records the contact email used for the latest upload.
func (s *Store) MarkUploaded(email string) {
	email = strings.TrimSpace(email)
	if email != "" {
		s.LastEmail = email
	}
}

// SetCredential stores the fallback token alongside the account email.
func (s *Store) SetCredential(email, token string) {
	s.Email = strings.TrimSpace(email)
	s.Token = token
}

// ClearCredential drops any fallback token. Idempotent.
func (s *Store) ClearCredential() {
	s.Email = ""
	s.Token = ""
}

func addUniqueFront(list []string, value string, limit int) []string {
	if value == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
