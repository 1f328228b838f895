// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz  QuizConfig  `toml:"quiz"`
	Stats StatsConfig `toml:"stats"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	Lang      *string `toml:"lang"`
	Questions *int    `toml:"questions"`
	Mode      *string `toml:"mode"`
	FocusWeak *bool   `toml:"focus-weak"`
	WeakTop   *int    `toml:"weak-top"`
	WeakRuns  *int    `toml:"weak-runs"`
	TopicDir  *string `toml:"topic-dir"`
}

// StatsConfig maps stats-related settings.
type StatsConfig struct {
	Last        *int `toml:"last"`
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
