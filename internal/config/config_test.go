package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Endpoint != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", cfg.Server.Endpoint)
	}
	if cfg.Server.AuthStyle != "prefixed" {
		t.Fatalf("expected prefixed auth style, got %q", cfg.Server.AuthStyle)
	}
	if !cfg.TUI.Colors {
		t.Fatal("expected colors enabled by default")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	if err := cfg.SetByKey("server.endpoint", "https://sentinel.example.com/"); err != nil {
		t.Fatalf("SetByKey error: %v", err)
	}
	if err := cfg.SetByKey("server.auth_style", "bare"); err != nil {
		t.Fatalf("SetByKey error: %v", err)
	}
	if err := cfg.SetByKey("upload.email", "ops@example.com"); err != nil {
		t.Fatalf("SetByKey error: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load after save error: %v", err)
	}
	if loaded.Server.Endpoint != "https://sentinel.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", loaded.Server.Endpoint)
	}
	if loaded.Server.AuthStyle != "bare" || loaded.Upload.Email != "ops@example.com" {
		t.Fatalf("unexpected loaded config: %+v", loaded)
	}

	path, err := FilePath()
	if err != nil {
		t.Fatalf("FilePath error: %v", err)
	}
	if want := filepath.Join(home, ".logsentinel", "config.yaml"); path != want {
		t.Fatalf("unexpected config path %q want %q", path, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Save(Default()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	t.Setenv("LOGSENTINEL_ENDPOINT", "https://override.example.com")
	t.Setenv("LOGSENTINEL_AUTH_STYLE", "bare")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Endpoint != "https://override.example.com" {
		t.Fatalf("expected env endpoint, got %q", cfg.Server.Endpoint)
	}
	if cfg.Server.AuthStyle != "bare" {
		t.Fatalf("expected env auth style, got %q", cfg.Server.AuthStyle)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Server.Endpoint = "localhost:5000"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "server.endpoint") {
		t.Fatalf("expected endpoint scheme error, got %v", err)
	}

	cfg = Default()
	if err := cfg.SetByKey("server.authstyle", "fancy"); err == nil {
		t.Fatal("expected auth style error")
	}
	if err := cfg.SetByKey("server.timeout", "soon"); err == nil {
		t.Fatal("expected timeout error")
	}
	if err := cfg.SetByKey("tui.colors", "maybe"); err == nil {
		t.Fatal("expected bool error")
	}
	if err := cfg.SetByKey("nope.key", "x"); err == nil {
		t.Fatal("expected unsupported key error")
	}
}

func TestCorruptFileIsAnError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".logsentinel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: ["), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
