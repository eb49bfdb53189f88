// Package upload submits a log file for analysis and keeps the returned
// summary. The workflow is independent of the auth session; a successful
// upload only signals the composition layer to refresh alerts.
package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
)

// Submitter is the slice of the HTTP boundary the workflow needs.
type Submitter interface {
	UploadLog(ctx context.Context, filename string, file io.Reader, email string) (*api.UploadSummary, error)
}

type Workflow struct {
	client  Submitter
	summary *api.UploadSummary
	seq     uint64
}

func New(client Submitter) *Workflow {
	return &Workflow{client: client}
}

// Summary returns the most recent successful upload result, nil if none.
func (w *Workflow) Summary() *api.UploadSummary { return w.summary }

// Validate applies the local preconditions: a selected file and a contact
// email, both before any network traffic.
func Validate(path, email string) error {
	if strings.TrimSpace(path) == "" || strings.TrimSpace(email) == "" {
		return &api.ValidationError{Reason: "a log file and a contact email are required"}
	}
	return nil
}

// Begin validates and hands out the sequence token the completion must
// carry. Zero network calls happen on validation failure.
func (w *Workflow) Begin(path, email string) (uint64, error) {
	if err := Validate(path, email); err != nil {
		return 0, err
	}
	w.seq++
	return w.seq, nil
}

// Apply installs a completed upload. Stale completions are discarded; a
// failed upload leaves the previous summary untouched.
func (w *Workflow) Apply(seq uint64, summary *api.UploadSummary, err error) (bool, error) {
	if seq != w.seq {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	w.summary = summary
	return true, nil
}

// Upload submits the given content in one blocking call.
func (w *Workflow) Upload(ctx context.Context, filename string, file io.Reader, email string) (*api.UploadSummary, error) {
	seq, err := w.Begin(filename, email)
	if err != nil {
		return nil, err
	}
	summary, err := w.client.UploadLog(ctx, filename, file, email)
	if _, err := w.Apply(seq, summary, err); err != nil {
		return nil, err
	}
	return w.summary, nil
}

// UploadFile reads path from disk and submits it. An unreadable path is a
// local validation failure, not a transport one.
func (w *Workflow) UploadFile(ctx context.Context, path, email string) (*api.UploadSummary, error) {
	if err := Validate(path, email); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &api.ValidationError{Reason: "cannot read log file: " + err.Error()}
	}
	defer f.Close()
	return w.Upload(ctx, filepath.Base(path), f, email)
}
