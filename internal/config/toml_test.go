package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not be an error: %v", err)
	}
	if cfg.Quiz.Lang != nil || cfg.Stats.Last != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[quiz]
lang = "hi"
questions = 15
mode = "attempt"
focus-weak = true
weak-top = 5

[stats]
last = 20
curve-window = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Quiz.Lang == nil || *cfg.Quiz.Lang != "hi" {
		t.Fatalf("unexpected lang: %v", cfg.Quiz.Lang)
	}
	if cfg.Quiz.Questions == nil || *cfg.Quiz.Questions != 15 {
		t.Fatalf("unexpected questions: %v", cfg.Quiz.Questions)
	}
	if cfg.Quiz.Mode == nil || *cfg.Quiz.Mode != "attempt" {
		t.Fatalf("unexpected mode: %v", cfg.Quiz.Mode)
	}
	if cfg.Quiz.FocusWeak == nil || !*cfg.Quiz.FocusWeak {
		t.Fatalf("unexpected focus-weak: %v", cfg.Quiz.FocusWeak)
	}
	if cfg.Quiz.WeakTop == nil || *cfg.Quiz.WeakTop != 5 {
		t.Fatalf("unexpected weak-top: %v", cfg.Quiz.WeakTop)
	}
	// Unset keys stay nil so flag defaults apply.
	if cfg.Quiz.WeakRuns != nil || cfg.Quiz.TopicDir != nil {
		t.Fatalf("expected unset keys to stay nil: %+v", cfg.Quiz)
	}
	if cfg.Stats.Last == nil || *cfg.Stats.Last != 20 {
		t.Fatalf("unexpected last: %v", cfg.Stats.Last)
	}
	if cfg.Stats.CurveWindow == nil || *cfg.Stats.CurveWindow != 7 {
		t.Fatalf("unexpected curve-window: %v", cfg.Stats.CurveWindow)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
