package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/rps-showdown/internal/rps"
)

//go:embed defaults/rps.yaml
var defaultRPSYAML []byte

// DefaultConfig returns the built-in configuration (the enhanced variant).
func DefaultConfig() RPSConfig {
	return RPSConfig{
		Round: RoundConfig{
			ThinkTime:     rps.DefaultThinkTime,
			CycleInterval: rps.DefaultCycleInterval,
			CycleHaptics:  true,
		},
		Match: MatchConfig{
			ResetBestStreak: false,
			TrackBestStreak: true,
			TrackTotalGames: true,
		},
		Feedback: FeedbackConfig{
			Particles:       20,
			ParticleMinLife: time.Second,
			ParticleMaxLife: 1500 * time.Millisecond,
			Shake:           true,
			ShakeStep:       50 * time.Millisecond,
			PulsePeriod:     2 * time.Second,
			Bell:            false,
			Tiers:           true,
			OnFireAt:        3,
			LegendaryAt:     5,
		},
		Splash: SplashConfig{
			Enabled:  false,
			Duration: 5 * time.Second,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRPSYAML
}
