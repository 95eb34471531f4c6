package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dictate/platform"
)

func linuxInfo() platform.Info {
	return platform.Info{OS: "linux", Session: platform.SessionX11}
}

func TestDefaultHotkeyPerPlatform(t *testing.T) {
	if got := Default(platform.Info{OS: "darwin"}).Hotkey; got != "cmd+alt" {
		t.Errorf("darwin hotkey = %q, want cmd+alt", got)
	}
	if got := Default(linuxInfo()).Hotkey; got != "ctrl+alt" {
		t.Errorf("linux hotkey = %q, want ctrl+alt", got)
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default(linuxInfo())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SampleRate != 16000 || cfg.FrameSize != 1024 {
		t.Errorf("unexpected audio defaults: %d/%d", cfg.SampleRate, cfg.FrameSize)
	}
	if cfg.MaxRecordingTime != 600*time.Second {
		t.Errorf("max time = %v, want 600s", cfg.MaxRecordingTime)
	}
}

func TestSetLanguages(t *testing.T) {
	cfg := Default(linuxInfo())
	cfg.SetLanguages([]string{" en ", "es", "", "fr"})
	if len(cfg.Languages) != 3 {
		t.Fatalf("got %d languages, want 3", len(cfg.Languages))
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("default language = %q, want en", cfg.DefaultLanguage)
	}

	cfg.SetLanguages(nil)
	if cfg.DefaultLanguage != "" {
		t.Errorf("default language after clearing = %q, want empty", cfg.DefaultLanguage)
	}
}

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"en", 1},
		{"en,es,fr", 3},
		{"en, es ,fr", 3},
		{"en,,fr", 2},
	}
	for _, tt := range tests {
		if got := ParseLanguages(tt.in); len(got) != tt.want {
			t.Errorf("ParseLanguages(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}

func TestValidateHotkey(t *testing.T) {
	cfg := Default(linuxInfo())

	cfg.Hotkey = "ctrl"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for single-key hotkey")
	}

	cfg.Hotkey = "ctrl+"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for trailing plus")
	}

	cfg.Hotkey = "ctrl+shift+space"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for three-key hotkey")
	}

	// Double-tap mode does not use the combo hotkey.
	cfg.Hotkey = "nonsense"
	cfg.DoubleTapKey = "cmd"
	if err := cfg.Validate(); err != nil {
		t.Errorf("double-tap config should skip hotkey validation: %v", err)
	}
}

func TestValidateEnglishOnlyModel(t *testing.T) {
	cfg := Default(linuxInfo())
	cfg.Model = "base.en"

	cfg.SetLanguages([]string{"en"})
	if err := cfg.Validate(); err != nil {
		t.Errorf("base.en with en should validate: %v", err)
	}

	cfg.SetLanguages([]string{"en", "es"})
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for base.en with spanish")
	}
}

func TestValidateAudioSettings(t *testing.T) {
	cfg := Default(linuxInfo())
	cfg.SampleRate = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero sample rate")
	}

	cfg = Default(linuxInfo())
	cfg.FrameSize = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative frame size")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "dictate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
model = "small"
hotkey = "ctrl+shift"
languages = ["es", "fr"]
max_seconds = 30.0
notify = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(linuxInfo())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "small" {
		t.Errorf("model = %q, want small", cfg.Model)
	}
	if cfg.Hotkey != "ctrl+shift" {
		t.Errorf("hotkey = %q, want ctrl+shift", cfg.Hotkey)
	}
	if cfg.DefaultLanguage != "es" {
		t.Errorf("default language = %q, want es", cfg.DefaultLanguage)
	}
	if cfg.MaxRecordingTime != 30*time.Second {
		t.Errorf("max time = %v, want 30s", cfg.MaxRecordingTime)
	}
	if !cfg.Notify {
		t.Error("notify should be true")
	}
	// Untouched fields keep defaults.
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("sample rate = %d, want default", cfg.SampleRate)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load(linuxInfo())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want default", cfg.Model)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, "dictate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("model = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(linuxInfo()); err == nil {
		t.Error("expected error for malformed config file")
	}
}
