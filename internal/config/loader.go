package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configFile = "rps.yaml"

// LoadRPS loads the session configuration.
// Search order: customPath -> ~/.rps/configs/rps.yaml -> ./configs/rps.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadRPS(customPath string) (RPSConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RPSConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return RPSConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken files further down the search path are skipped
	if p := userConfigPath(configFile); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultRPSYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// parse decodes data over the defaults. Unknown keys are an error so a
// misspelled field does not silently fall back to its default.
func parse(data []byte) (RPSConfig, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RPSConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rps", "configs", filename)
}

// ApplyPreset modifies the config for a variant preset.
func ApplyPreset(cfg *RPSConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Splash.Enabled = true
		cfg.Round.CycleHaptics = false
		cfg.Match.ResetBestStreak = true
		cfg.Match.TrackBestStreak = false
		cfg.Match.TrackTotalGames = false
		cfg.Feedback.Shake = false
		cfg.Feedback.Tiers = false
	case PresetEnhanced:
		cfg.Splash.Enabled = false
		cfg.Round.CycleHaptics = true
		cfg.Match.ResetBestStreak = false
		cfg.Match.TrackBestStreak = true
		cfg.Match.TrackTotalGames = true
		cfg.Feedback.Shake = true
		cfg.Feedback.Tiers = true
	}
}

// envOverrides holds the environment variables that can override a loaded
// file. Unset variables leave the field nil.
type envOverrides struct {
	ThinkTime       *time.Duration `env:"RPS_THINK_TIME"`
	CycleInterval   *time.Duration `env:"RPS_CYCLE_INTERVAL"`
	ResetBestStreak *bool          `env:"RPS_RESET_BEST_STREAK"`
	Splash          *bool          `env:"RPS_SPLASH"`
	Bell            *bool          `env:"RPS_BELL"`
}

// ApplyEnv applies RPS_* environment overrides on top of cfg.
func ApplyEnv(cfg *RPSConfig) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	if o.ThinkTime != nil {
		cfg.Round.ThinkTime = *o.ThinkTime
	}
	if o.CycleInterval != nil {
		cfg.Round.CycleInterval = *o.CycleInterval
	}
	if o.ResetBestStreak != nil {
		cfg.Match.ResetBestStreak = *o.ResetBestStreak
	}
	if o.Splash != nil {
		cfg.Splash.Enabled = *o.Splash
	}
	if o.Bell != nil {
		cfg.Feedback.Bell = *o.Bell
	}
	return nil
}

// Resolve loads the file, applies the preset and environment overrides and
// validates the result.
func Resolve(customPath string, preset Preset) (RPSConfig, error) {
	cfg, err := LoadRPS(customPath)
	if err != nil {
		return RPSConfig{}, err
	}
	ApplyPreset(&cfg, preset)
	if err := ApplyEnv(&cfg); err != nil {
		return RPSConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RPSConfig{}, err
	}
	return cfg, nil
}
