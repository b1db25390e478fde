package rps

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/vovakirdan/rps-showdown/internal/dependencies/random"
)

// Default round timing.
const (
	DefaultThinkTime     = 1200 * time.Millisecond
	DefaultCycleInterval = 100 * time.Millisecond
	DefaultEventBuffer   = 64
)

// ErrInvalidTiming is returned when the round timing cannot produce a
// well-ordered reveal (the think window must dominate the cycle interval).
var ErrInvalidTiming = errors.New("rps: invalid round timing")

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the think and cycle timers.
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRandom sets the source used to draw the computer's move.
func WithRandom(r random.Random) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithLogger sets the transition logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithThinkTime sets the delay between a play request and resolution.
func WithThinkTime(d time.Duration) Option {
	return func(e *Engine) { e.thinkTime = d }
}

// WithCycleInterval sets the cosmetic cycling tick interval.
func WithCycleInterval(d time.Duration) Option {
	return func(e *Engine) { e.cycleInterval = d }
}

// WithResetBestStreak controls whether ResetMatch also zeroes the best streak.
func WithResetBestStreak(reset bool) Option {
	return func(e *Engine) { e.resetBestStreak = reset }
}

// WithCycleHaptics controls whether cycle ticks carry a light haptic pulse.
func WithCycleHaptics(enabled bool) Option {
	return func(e *Engine) { e.cycleHaptics = enabled }
}

// WithEventBuffer sets the feedback stream buffer size.
func WithEventBuffer(size int) Option {
	return func(e *Engine) { e.eventBuffer = size }
}

// ValidateTiming checks a think/cycle pair.
func ValidateTiming(think, cycle time.Duration) error {
	if think <= 0 || cycle <= 0 {
		return fmt.Errorf("%w: durations must be positive (think=%s, cycle=%s)", ErrInvalidTiming, think, cycle)
	}
	if cycle >= think {
		return fmt.Errorf("%w: cycle interval %s must be shorter than think time %s", ErrInvalidTiming, cycle, think)
	}
	return nil
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
