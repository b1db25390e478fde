// Package config provides YAML-based configuration loading and variant
// presets for the game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// RPSConfig contains all configuration for a rock-paper-scissors session.
type RPSConfig struct {
	Round    RoundConfig    `yaml:"round"`
	Match    MatchConfig    `yaml:"match"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Splash   SplashConfig   `yaml:"splash"`
}

// RoundConfig defines the per-round timing.
type RoundConfig struct {
	ThinkTime     time.Duration `yaml:"think_time"`
	CycleInterval time.Duration `yaml:"cycle_interval"`
	CycleHaptics  bool          `yaml:"cycle_haptics"`
}

// MatchConfig defines match-level bookkeeping policy.
type MatchConfig struct {
	ResetBestStreak bool `yaml:"reset_best_streak"`
	TrackBestStreak bool `yaml:"track_best_streak"` // Show best streak in the score panel
	TrackTotalGames bool `yaml:"track_total_games"` // Show total games and win rate
}

// FeedbackConfig defines visual and audible feedback.
type FeedbackConfig struct {
	Particles       int           `yaml:"particles"`
	ParticleMinLife time.Duration `yaml:"particle_min_life"`
	ParticleMaxLife time.Duration `yaml:"particle_max_life"`
	Shake           bool          `yaml:"shake"`
	ShakeStep       time.Duration `yaml:"shake_step"`
	PulsePeriod     time.Duration `yaml:"pulse_period"`
	Bell            bool          `yaml:"bell"`
	Tiers           bool          `yaml:"tiers"` // Streak-tiered win banners
	OnFireAt        int           `yaml:"on_fire_at"`
	LegendaryAt     int           `yaml:"legendary_at"`
}

// SplashConfig defines the intro screen.
type SplashConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Duration time.Duration `yaml:"duration"`
}

// Validate reports the first invalid setting.
func (c RPSConfig) Validate() error {
	if err := rps.ValidateTiming(c.Round.ThinkTime, c.Round.CycleInterval); err != nil {
		return fmt.Errorf("config: round: %w", err)
	}

	fb := c.Feedback
	if fb.Particles < 0 {
		return fmt.Errorf("config: feedback.particles must be >= 0, got %d", fb.Particles)
	}
	if fb.Particles > 0 && (fb.ParticleMinLife <= 0 || fb.ParticleMaxLife < fb.ParticleMinLife) {
		return fmt.Errorf("config: feedback particle lifetime range %s..%s is invalid", fb.ParticleMinLife, fb.ParticleMaxLife)
	}
	if fb.Shake && fb.ShakeStep <= 0 {
		return fmt.Errorf("config: feedback.shake_step must be positive, got %s", fb.ShakeStep)
	}
	if fb.PulsePeriod <= 0 {
		return fmt.Errorf("config: feedback.pulse_period must be positive, got %s", fb.PulsePeriod)
	}
	if fb.Tiers && (fb.OnFireAt < 1 || fb.LegendaryAt < fb.OnFireAt) {
		return fmt.Errorf("config: feedback tiers need 1 <= on_fire_at <= legendary_at, got %d/%d", fb.OnFireAt, fb.LegendaryAt)
	}

	if c.Splash.Enabled && c.Splash.Duration <= 0 {
		return fmt.Errorf("config: splash.duration must be positive, got %s", c.Splash.Duration)
	}
	return nil
}

// EngineOptions converts the round and match settings into engine options.
func (c RPSConfig) EngineOptions() []rps.Option {
	return []rps.Option{
		rps.WithThinkTime(c.Round.ThinkTime),
		rps.WithCycleInterval(c.Round.CycleInterval),
		rps.WithCycleHaptics(c.Round.CycleHaptics),
		rps.WithResetBestStreak(c.Match.ResetBestStreak),
	}
}

// Preset represents a named variant preset.
type Preset string

const (
	PresetClassic  Preset = "classic"
	PresetEnhanced Preset = "enhanced"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(s); p {
	case "", PresetClassic, PresetEnhanced:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want %s or %s)", s, PresetClassic, PresetEnhanced)
	}
}
