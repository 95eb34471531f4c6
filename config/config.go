// Package config builds the immutable runtime configuration from defaults,
// an optional TOML file and command-line overrides, then validates it. The
// resulting Config is shared read-only by every component.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"dictate/platform"
)

const (
	DefaultModel      = "large-v3-turbo"
	DefaultSampleRate = 16000
	DefaultFrameSize  = 1024
	DefaultMaxTime    = 600 * time.Second
	DefaultCharDelay  = 2500 * time.Microsecond
)

type Config struct {
	// Model is a whisper.cpp model size ("tiny", "base", ...) or an
	// explicit path to a ggml model file. Ignored when ServerURL is set.
	Model string

	// ServerURL selects the HTTP backend: an OpenAI-compatible ASR
	// endpoint (e.g. a local Qwen3-ASR server). Empty means local
	// whisper.cpp inference.
	ServerURL string

	// Hotkey is the two-key combination, e.g. "ctrl+alt".
	Hotkey string

	// DoubleTapKey enables the double-tap listener variant on the given
	// key instead of the combo detector. Empty disables it.
	DoubleTapKey string

	Languages       []string
	DefaultLanguage string

	// MaxRecordingTime auto-stops a recording after this long. Zero means
	// unlimited.
	MaxRecordingTime time.Duration

	SampleRate int
	FrameSize  int

	// CharDelay is the pause between synthesized keystrokes for the
	// per-character injection strategy.
	CharDelay time.Duration

	Notify          bool
	CopyToClipboard bool

	Platform platform.Info
}

type fileConfig struct {
	Model       string   `toml:"model"`
	ServerURL   string   `toml:"server_url"`
	Hotkey      string   `toml:"hotkey"`
	DoubleTap   string   `toml:"double_tap_key"`
	Languages   []string `toml:"languages"`
	MaxSeconds  float64  `toml:"max_seconds"`
	CharDelayMS float64  `toml:"char_delay_ms"`
	Notify      *bool    `toml:"notify"`
	Copy        *bool    `toml:"copy_to_clipboard"`
}

// Default returns the platform-aware baseline configuration.
func Default(pi platform.Info) Config {
	hotkey := "ctrl+alt"
	if pi.IsMacOS() {
		hotkey = "cmd+alt"
	}
	return Config{
		Model:            DefaultModel,
		Hotkey:           hotkey,
		Languages:        []string{"en"},
		DefaultLanguage:  "en",
		MaxRecordingTime: DefaultMaxTime,
		SampleRate:       DefaultSampleRate,
		FrameSize:        DefaultFrameSize,
		CharDelay:        DefaultCharDelay,
		Platform:         pi,
	}
}

// Load merges the user's config file (if any) over the defaults. A missing
// file is not an error; a malformed one is.
func Load(pi platform.Info) (Config, error) {
	cfg := Default(pi)

	path := FilePath()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.Hotkey != "" {
		cfg.Hotkey = fc.Hotkey
	}
	if fc.DoubleTap != "" {
		cfg.DoubleTapKey = fc.DoubleTap
	}
	if len(fc.Languages) > 0 {
		cfg.SetLanguages(fc.Languages)
	}
	if fc.MaxSeconds > 0 {
		cfg.MaxRecordingTime = time.Duration(fc.MaxSeconds * float64(time.Second))
	}
	if fc.CharDelayMS > 0 {
		cfg.CharDelay = time.Duration(fc.CharDelayMS * float64(time.Millisecond))
	}
	if fc.Notify != nil {
		cfg.Notify = *fc.Notify
	}
	if fc.Copy != nil {
		cfg.CopyToClipboard = *fc.Copy
	}

	return cfg, nil
}

// SetLanguages installs the language list; the first entry becomes the
// default transcription language.
func (c *Config) SetLanguages(langs []string) {
	cleaned := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.TrimSpace(l)
		if l != "" {
			cleaned = append(cleaned, l)
		}
	}
	c.Languages = cleaned
	if len(cleaned) > 0 {
		c.DefaultLanguage = cleaned[0]
	} else {
		c.DefaultLanguage = ""
	}
}

// ParseLanguages splits a comma-separated flag value ("en,es,fr").
func ParseLanguages(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			langs = append(langs, p)
		}
	}
	return langs
}

// Validate rejects configurations that cannot work. These are setup errors:
// the process should exit with remediation guidance rather than start.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame size must be positive, got %d", c.FrameSize)
	}
	if c.MaxRecordingTime < 0 {
		return fmt.Errorf("max recording time cannot be negative")
	}

	if c.DoubleTapKey == "" {
		parts := strings.Split(c.Hotkey, "+")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("hotkey must be two keys joined by '+' (e.g. \"ctrl+alt\"), got %q", c.Hotkey)
		}
	}

	// English-only whisper models cannot transcribe other languages.
	if strings.Contains(c.Model, ".en") {
		for _, lang := range c.Languages {
			if lang != "en" {
				return fmt.Errorf("model %q is English-only but language %q was requested", c.Model, lang)
			}
		}
	}

	return nil
}

// FilePath returns the user config file location, or "" if no home
// directory can be determined.
func FilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "dictate")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "dictate")
	} else {
		return ""
	}
	return filepath.Join(configDir, "config.toml")
}
