package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Zaphoood/rewind/pkg/util"
	"gopkg.in/yaml.v3"
)

const DEFAULT_PATH = "~/.config/rewind/config.yaml"

// Config holds the settings of the rewind editor.
type Config struct {
	// Maximum number of history entries, 0 for no limit
	HistoryLimit int `yaml:"history_limit"`
	// Number of ticks a changed row flashes after undo or redo
	AnimationFrames   int           `yaml:"animation_frames"`
	AnimationInterval time.Duration `yaml:"animation_interval"`
	// Seconds until a yanked value is cleared from the clipboard, 0 to keep it
	ClipboardClearDelay int    `yaml:"clipboard_clear_delay"`
	LogLevel            string `yaml:"log_level"`
	LogFile             string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		HistoryLimit:        1000,
		AnimationFrames:     6,
		AnimationInterval:   60 * time.Millisecond,
		ClipboardClearDelay: 10,
		LogLevel:            "info",
	}
}

// Load reads the YAML file at path on top of the defaults.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	expanded, err := util.Expand(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.AnimationFrames < 0 {
		return fmt.Errorf("animation_frames must not be negative, got %d", c.AnimationFrames)
	}
	if c.AnimationFrames > 0 && c.AnimationInterval <= 0 {
		return fmt.Errorf("animation_interval must be positive, got %s", c.AnimationInterval)
	}
	if c.ClipboardClearDelay < 0 {
		return fmt.Errorf("clipboard_clear_delay must not be negative, got %d", c.ClipboardClearDelay)
	}
	return nil
}
