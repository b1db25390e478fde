package rps

import (
	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// GameStateType represents the current screen of the game.
type GameStateType string

const (
	StateSplash      GameStateType = "splash"
	StatePlaying     GameStateType = "playing"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for tests.
type Snapshot struct {
	Tick        uint64
	Variant     string
	State       GameStateType
	Round       rps.Snapshot
	Particles   int
	ShakeOffset int
	Shaking     bool
	Border      core.Color
	Banner      string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.splashTicks > 0:
		state = StateSplash
	}

	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		State:   state,
	}
	if g.engine != nil {
		snap.Round = g.engine.Snapshot()
		snap.Banner, _ = g.banner(snap.Round)
	}
	if g.fx != nil {
		snap.Particles = len(g.fx.particles)
		snap.ShakeOffset = g.fx.shakeOffset()
		snap.Shaking = len(g.fx.shake) > 0
		snap.Border = g.fx.borderColor()
	}
	return snap
}
