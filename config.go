package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ─── Config ──────────────────────────────────────────────────────────────────

type contactConfig struct {
	Transport string        `koanf:"transport"` // "outbox", "http" or "smtp"
	Endpoint  string        `koanf:"endpoint"`  // http transport target
	Email     string        `koanf:"email"`     // copy-email address; overrides content owner.email
	Timeout   time.Duration `koanf:"timeout"`
}

type serveConfig struct {
	Addr string `koanf:"addr"`
	DB   string `koanf:"db"`
}

type config struct {
	Content          string        `koanf:"content"`            // content file or doublestar glob; empty uses the built-in content
	ColorScheme      string        `koanf:"color_scheme"`       // "auto", "dark", "light" or "none"
	ColorSchemePoll  time.Duration `koanf:"color_scheme_poll"`  // 0 disables following the OS scheme
	SmoothScroll     bool          `koanf:"smooth_scroll"`
	MobileBreakpoint int           `koanf:"mobile_breakpoint"` // columns
	Contact          contactConfig `koanf:"contact"`
	Serve            serveConfig   `koanf:"serve"`
}

func defaultConfig() config {
	return config{
		ColorScheme:      "auto",
		ColorSchemePoll:  5 * time.Second,
		SmoothScroll:     true,
		MobileBreakpoint: 80,
		Contact: contactConfig{
			Transport: "outbox",
			Timeout:   10 * time.Second,
		},
		Serve: serveConfig{
			Addr: ":8080",
		},
	}
}

// stateDir is where folio keeps its config, preferences, log and databases.
func stateDir() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(cfgDir, "folio"), nil
}

func configPath() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// expandHome expands a leading "~/" to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// envKey maps FOLIO_CONTACT_ENDPOINT to contact.endpoint. Only the first
// underscore after a section name separates levels, so
// FOLIO_COLOR_SCHEME_POLL stays color_scheme_poll.
func envKey(s string) string {
	k := strings.ToLower(strings.TrimPrefix(s, "FOLIO_"))
	for _, section := range []string{"contact_", "serve_"} {
		if rest, ok := strings.CutPrefix(k, section); ok {
			return strings.TrimSuffix(section, "_") + "." + rest
		}
	}
	return k
}

// loadConfig reads path (if it exists) over the defaults, then overlays
// FOLIO_* environment variables.
func loadConfig(path string) (config, error) {
	k := koanf.New(".")
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("FOLIO_", ".", envKey), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Content = expandHome(cfg.Content)
	cfg.Serve.DB = expandHome(cfg.Serve.DB)
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.ColorScheme {
	case "auto", "dark", "light", "none":
	default:
		return fmt.Errorf("invalid color_scheme %q: must be one of auto, dark, light, none", c.ColorScheme)
	}
	switch c.Contact.Transport {
	case "outbox", "http", "smtp":
	default:
		return fmt.Errorf("invalid contact.transport %q: must be one of outbox, http, smtp", c.Contact.Transport)
	}
	if c.Contact.Transport == "http" && c.Contact.Endpoint == "" {
		return errors.New("contact.endpoint is required for the http transport")
	}
	if c.Contact.Timeout <= 0 {
		return errors.New("contact.timeout must be positive")
	}
	if c.MobileBreakpoint < 0 {
		return errors.New("mobile_breakpoint must be non-negative")
	}
	return nil
}

// ─── Preferences ─────────────────────────────────────────────────────────────

// prefStore persists the explicit theme choice. An absent value means the
// user never chose.
type prefStore interface {
	Theme() (string, bool)
	SetTheme(theme) error
}

type prefs struct {
	Theme string `json:"theme,omitempty"`
}

// filePrefs keeps preferences in a small JSON file next to the config.
type filePrefs struct {
	path string
	mu   sync.Mutex
	data prefs
}

func loadPrefs(path string) *filePrefs {
	p := &filePrefs{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p.data); err != nil {
		// A corrupt file is the same as no choice.
		p.data = prefs{}
	}
	if _, ok := parseTheme(p.data.Theme); !ok {
		p.data.Theme = ""
	}
	return p
}

func (p *filePrefs) Theme() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Theme, p.data.Theme != ""
}

func (p *filePrefs) SetTheme(t theme) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Theme = string(t)
	return saveJSON(p.path, p.data)
}

// saveJSON writes v atomically: temp file then rename, so a crash mid-write
// can't leave a truncated file behind.
func saveJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	tmp, err := os.CreateTemp(dir, ".prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
