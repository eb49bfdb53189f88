package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/risk"
)

type fakeSubmitter struct {
	calls    int
	filename string
	email    string
	content  string
	summary  *api.UploadSummary
	err      error
}

func (f *fakeSubmitter) UploadLog(_ context.Context, filename string, file io.Reader, email string) (*api.UploadSummary, error) {
	f.calls++
	f.filename = filename
	f.email = email
	b, _ := io.ReadAll(file)
	f.content = string(b)
	return f.summary, f.err
}

func TestUploadValidationSkipsNetwork(t *testing.T) {
	f := &fakeSubmitter{}
	w := New(f)

	cases := []struct{ file, email string }{
		{"", "a@b.com"},
		{"x.log", ""},
		{"", ""},
		{"  ", "a@b.com"},
	}
	for _, c := range cases {
		_, err := w.Upload(context.Background(), c.file, strings.NewReader("data"), c.email)
		var ve *api.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("file=%q email=%q: expected ValidationError, got %T: %v", c.file, c.email, err, err)
		}
	}
	if f.calls != 0 {
		t.Fatalf("expected zero network calls, got %d", f.calls)
	}
}

func TestUploadStoresSummaryAndClassifiesHigh(t *testing.T) {
	f := &fakeSubmitter{summary: &api.UploadSummary{
		Filename:   "x.log",
		TotalLines: 120,
		Preview:    []string{"line1", "line2"},
		SuspiciousIPs: []api.SuspiciousIP{
			{IP: "1.2.3.4", FailedAttempts: 12, WithinSeconds: 60},
		},
	}}
	w := New(f)

	sum, err := w.Upload(context.Background(), "x.log", strings.NewReader("line1\nline2\n"), "a@b.com")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if f.calls != 1 || f.filename != "x.log" || f.email != "a@b.com" {
		t.Fatalf("unexpected submission: calls=%d filename=%q email=%q", f.calls, f.filename, f.email)
	}
	if sum.TotalLines != 120 || len(sum.Preview) != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if got := risk.Classify(sum.SuspiciousIPs[0].FailedAttempts); got != risk.High {
		t.Fatalf("expected HIGH for 12 attempts, got %s", got)
	}
	if w.Summary() != sum {
		t.Fatal("expected summary stored on the workflow")
	}
}

func TestUploadFailureKeepsPreviousSummary(t *testing.T) {
	f := &fakeSubmitter{summary: &api.UploadSummary{Filename: "first.log", TotalLines: 10}}
	w := New(f)
	if _, err := w.Upload(context.Background(), "first.log", strings.NewReader("x"), "a@b.com"); err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	f.summary = nil
	f.err = &api.TransportError{Op: "upload", Err: errors.New("connection reset")}
	if _, err := w.Upload(context.Background(), "second.log", strings.NewReader("y"), "a@b.com"); err == nil {
		t.Fatal("expected upload failure")
	}
	if w.Summary() == nil || w.Summary().Filename != "first.log" {
		t.Fatalf("previous summary must survive a failed upload, got %+v", w.Summary())
	}
}

func TestStaleUploadCompletionDiscarded(t *testing.T) {
	w := New(&fakeSubmitter{})
	seqOld, err := w.Begin("a.log", "a@b.com")
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	seqNew, err := w.Begin("b.log", "a@b.com")
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}

	if applied, err := w.Apply(seqNew, &api.UploadSummary{Filename: "b.log"}, nil); err != nil || !applied {
		t.Fatalf("latest completion must apply: %v %v", applied, err)
	}
	if applied, err := w.Apply(seqOld, &api.UploadSummary{Filename: "a.log"}, nil); applied || err != nil {
		t.Fatalf("stale completion must be discarded: %v %v", applied, err)
	}
	if w.Summary().Filename != "b.log" {
		t.Fatalf("expected latest summary retained, got %+v", w.Summary())
	}
}

func TestUploadFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "access.log")
	if err := os.WriteFile(path, []byte("l1\nl2\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f := &fakeSubmitter{summary: &api.UploadSummary{Filename: "access.log"}}
	w := New(f)
	if _, err := w.UploadFile(context.Background(), path, "a@b.com"); err != nil {
		t.Fatalf("UploadFile error: %v", err)
	}
	if f.filename != "access.log" || f.content != "l1\nl2\n" {
		t.Fatalf("unexpected submission: %q %q", f.filename, f.content)
	}

	_, err := w.UploadFile(context.Background(), filepath.Join(dir, "missing.log"), "a@b.com")
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for missing file, got %T: %v", err, err)
	}
	if f.calls != 1 {
		t.Fatalf("missing file must not hit the network, calls=%d", f.calls)
	}
}
