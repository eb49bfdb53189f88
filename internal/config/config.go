// Package config manages the client configuration file under
// ~/.logsentinel. Environment variables (LOGSENTINEL_*) override the
// file; a .env in the working directory is loaded as a convenience.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".logsentinel"
	configFileName = "config.yaml"

	// DefaultEndpoint is the local development backend.
	DefaultEndpoint = "http://localhost:5000"
)

type Config struct {
	Server ServerConfig `yaml:"server" json:"server"`
	Upload UploadConfig `yaml:"upload" json:"upload"`
	TUI    TUIConfig    `yaml:"tui" json:"tui"`
}

type ServerConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	// AuthStyle selects where the backend mounts its auth routes:
	// "prefixed" (/auth/login) or "bare" (/login). Both layouts exist in
	// deployed backends.
	AuthStyle string `yaml:"authStyle" json:"authStyle"`
	Timeout   string `yaml:"timeout" json:"timeout"`
}

type UploadConfig struct {
	Email string `yaml:"email" json:"email"`
}

type TUIConfig struct {
	Colors         bool `yaml:"colors" json:"colors"`
	ShowPastAlerts bool `yaml:"showPastAlerts" json:"showPastAlerts"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Endpoint:  DefaultEndpoint,
			AuthStyle: "prefixed",
			Timeout:   "30s",
		},
		Upload: UploadConfig{Email: ""},
		TUI: TUIConfig{
			Colors:         true,
			ShowPastAlerts: false,
		},
	}
}

func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil && len(strings.TrimSpace(string(b))) > 0 {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("LOGSENTINEL_ENDPOINT")); v != "" {
		c.Server.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("LOGSENTINEL_AUTH_STYLE")); v != "" {
		c.Server.AuthStyle = v
	}
	if v := strings.TrimSpace(os.Getenv("LOGSENTINEL_TIMEOUT")); v != "" {
		c.Server.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("LOGSENTINEL_EMAIL")); v != "" {
		c.Upload.Email = v
	}
	if v := strings.TrimSpace(os.Getenv("LOGSENTINEL_COLORS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TUI.Colors = b
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.Server.Endpoint) == "" {
		return fmt.Errorf("server.endpoint cannot be empty")
	}
	if !strings.HasPrefix(c.Server.Endpoint, "http://") && !strings.HasPrefix(c.Server.Endpoint, "https://") {
		return fmt.Errorf("server.endpoint must start with http:// or https://")
	}
	switch c.Server.AuthStyle {
	case "prefixed", "bare":
	default:
		return fmt.Errorf("server.authStyle must be one of: prefixed, bare")
	}
	if _, err := parsePositiveDuration(c.Server.Timeout, "server.timeout"); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration returns the request timeout, defaulting to 30s when the
// configured value does not parse.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Server.Timeout))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) SetByKey(key, value string) error {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return fmt.Errorf("key cannot be empty")
	}
	v := strings.TrimSpace(value)
	switch k {
	case "server.endpoint":
		c.Server.Endpoint = v
	case "server.authstyle", "server.auth_style":
		c.Server.AuthStyle = strings.ToLower(v)
	case "server.timeout":
		c.Server.Timeout = v
	case "upload.email":
		c.Upload.Email = v
	case "tui.colors":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("tui.colors must be true or false")
		}
		c.TUI.Colors = b
	case "tui.showpastalerts", "tui.show_past_alerts":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("tui.showPastAlerts must be true or false")
		}
		c.TUI.ShowPastAlerts = b
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
	c.normalize()
	return c.Validate()
}

func (c *Config) GetByKey(key string) (any, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	switch k {
	case "server.endpoint":
		return c.Server.Endpoint, nil
	case "server.authstyle", "server.auth_style":
		return c.Server.AuthStyle, nil
	case "server.timeout":
		return c.Server.Timeout, nil
	case "upload.email":
		return c.Upload.Email, nil
	case "tui.colors":
		return c.TUI.Colors, nil
	case "tui.showpastalerts", "tui.show_past_alerts":
		return c.TUI.ShowPastAlerts, nil
	default:
		return nil, fmt.Errorf("unsupported key %q", key)
	}
}

func (c *Config) ToYAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Config) ToJSON() (string, error) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Config) normalize() {
	c.Server.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Server.Endpoint), "/")
	c.Server.AuthStyle = strings.ToLower(strings.TrimSpace(c.Server.AuthStyle))
	if c.Server.AuthStyle == "" {
		c.Server.AuthStyle = "prefixed"
	}
	c.Server.Timeout = strings.TrimSpace(c.Server.Timeout)
	if c.Server.Timeout == "" {
		c.Server.Timeout = "30s"
	}
	c.Upload.Email = strings.TrimSpace(c.Upload.Email)
}

func parsePositiveDuration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
}
