// Package rps implements the rock-paper-scissors game on top of the round
// engine: key actions become engine operations and engine feedback events
// become particles, shake, border flashes and the terminal bell.
package rps

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/vovakirdan/rps-showdown/internal/config"
	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/dependencies/random"
	"github.com/vovakirdan/rps-showdown/internal/registry"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// Minimum playable screen size.
const (
	MinWidth  = 40
	MinHeight = 16
)

// Variant identifies a registered flavor of the game.
type Variant struct {
	ID          string
	Title       string
	Description string
	Preset      config.Preset
}

var (
	Showdown = Variant{
		ID:          "rps",
		Title:       "RPS Showdown",
		Description: "Streak tiers, best streak, win rate and full feedback",
		Preset:      config.PresetEnhanced,
	}
	Classic = Variant{
		ID:          "rps_classic",
		Title:       "RPS Classic",
		Description: "Just the score and the streak",
		Preset:      config.PresetClassic,
	}
)

// Variants lists every registered variant.
var Variants = []Variant{Showdown, Classic}

func init() {
	for _, v := range Variants {
		registry.Register(registry.GameInfo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
		}, func() registry.Game {
			return New(v)
		})
	}
}

// PresetFor returns the preset of a variant ID, or "" if unknown.
func PresetFor(id string) config.Preset {
	for _, v := range Variants {
		if v.ID == id {
			return v.Preset
		}
	}
	return ""
}

// Option configures a Game.
type Option func(*Game)

// WithConfig sets the session configuration used on the next Reset.
func WithConfig(cfg config.RPSConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithClock injects the engine clock. Used by tests.
func WithClock(c quartz.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRandom injects the computer's move source. Used by tests.
func WithRandom(r random.Random) Option {
	return func(g *Game) { g.rng = r }
}

// WithLogger sets the logger handed to each engine.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// Game implements registry.Game for one variant.
type Game struct {
	variant Variant
	cfg     config.RPSConfig
	clock   quartz.Clock
	rng     random.Random
	logger  *log.Logger

	engine *rps.Engine
	fx     *effects

	screenW  int
	screenH  int
	tickRate int
	tick     uint64

	splashTicks int // Remaining splash ticks, 0 once dismissed
	tooSmall    bool
}

// New creates a game for the given variant, configured with the defaults
// and the variant preset.
func New(v Variant, opts ...Option) *Game {
	cfg := config.DefaultConfig()
	config.ApplyPreset(&cfg, v.Preset)

	g := &Game{
		variant: v,
		cfg:     cfg,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configure replaces the configuration. It takes effect on the next Reset.
func (g *Game) Configure(cfg config.RPSConfig) {
	g.cfg = cfg
}

// SetLogger replaces the logger. It takes effect on the next Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Config returns the active configuration.
func (g *Game) Config() config.RPSConfig {
	return g.cfg
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset starts a fresh session with a new engine.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Close()

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.fx = newEffects(cfg.Seed, g.tickRate, g.cfg.Feedback.PulsePeriod)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.splashTicks = 0
	if g.cfg.Splash.Enabled {
		g.splashTicks = g.fx.ticks(g.cfg.Splash.Duration)
	}

	engine, err := rps.New(g.engineOptions(cfg.Seed, g.cfg.EngineOptions())...)
	if err != nil {
		// Config was validated upstream; keep playing on default timing
		g.logger.Error("invalid round config, using defaults", "err", err)
		engine, _ = rps.New(g.engineOptions(cfg.Seed, nil)...)
	}
	g.engine = engine

	g.logger.Info("session started", "variant", g.variant.ID, "seed", cfg.Seed)
}

func (g *Game) engineOptions(seed int64, extra []rps.Option) []rps.Option {
	opts := append([]rps.Option{rps.WithLogger(g.logger)}, extra...)
	if g.clock != nil {
		opts = append(opts, rps.WithClock(g.clock))
	}
	if g.rng != nil {
		opts = append(opts, rps.WithRandom(g.rng))
	} else {
		opts = append(opts, rps.WithRandom(random.NewSeeded(seed)))
	}
	return opts
}

// Resize adapts the layout without touching the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < MinWidth || h < MinHeight
}

// Close stops the engine timers.
func (g *Game) Close() {
	if g.engine != nil {
		g.engine.Close()
		g.engine = nil
	}
}

// Step handles one tick of input and feedback.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch {
	case !g.tooSmall:
		g.handleInput(in)
	case g.splashTicks > 0:
		// The intro keeps counting down while the window is too small
		g.splashTicks--
	}

	bell := g.drainEvents()
	g.fx.update()

	return core.StepResult{State: g.State(), Bell: bell}
}

func (g *Game) handleInput(in core.InputFrame) {
	if g.splashTicks > 0 {
		if in.Has(core.ActionConfirm) {
			g.splashTicks = 0
		} else {
			g.splashTicks--
		}
		return
	}

	switch {
	case in.Has(core.ActionRock):
		g.engine.PlayRound(rps.Rock)
	case in.Has(core.ActionPaper):
		g.engine.PlayRound(rps.Paper)
	case in.Has(core.ActionScissors):
		g.engine.PlayRound(rps.Scissors)
	}

	if in.Has(core.ActionReset) {
		g.engine.ResetMatch()
		g.fx.clear()
		return
	}
	if in.Has(core.ActionNewRound) || (in.Has(core.ActionConfirm) && g.engine.Phase() == rps.PhaseSettled) {
		g.engine.NewRound()
	}
}

// drainEvents turns pending engine events into effects. It reports whether
// the terminal bell should ring.
func (g *Game) drainEvents() bool {
	bell := false
	for {
		select {
		case evt, ok := <-g.engine.Events():
			if !ok {
				return bell
			}
			if g.applyEvent(evt) {
				bell = true
			}
		default:
			return bell
		}
	}
}

func (g *Game) applyEvent(evt rps.Event) (bell bool) {
	fb := g.cfg.Feedback
	g.fx.pulse(evt.Haptic)

	switch evt.Effect {
	case rps.EffectCelebrate:
		x, y := g.burstOrigin()
		g.fx.burst(fb.Particles, x, y, fb.ParticleMinLife, fb.ParticleMaxLife)
	case rps.EffectShake:
		if fb.Shake {
			g.fx.startShake(fb.ShakeStep)
		}
	}

	if evt.Kind == rps.EventSettled {
		g.logger.Debug("round result",
			"round", evt.Round,
			"player", evt.PlayerMove,
			"computer", evt.ComputerMove,
			"outcome", evt.Outcome,
		)
	}

	return fb.Bell && (evt.Haptic == rps.HapticSuccess || evt.Haptic == rps.HapticError)
}

// burstOrigin is the banner center, where results are announced.
func (g *Game) burstOrigin() (float64, float64) {
	l := g.layout()
	return float64(g.screenW) / 2, float64(l.banner)
}

// State reports the best streak as the leaderboard score. Play never ends
// the session by itself.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{Score: g.engine.BestStreak()}
}

// Summary returns the session totals for the leaderboard.
func (g *Game) Summary() core.SessionSummary {
	if g.engine == nil {
		return core.SessionSummary{GameID: g.variant.ID}
	}
	snap := g.engine.Snapshot()
	return core.SessionSummary{
		GameID:     g.variant.ID,
		Wins:       snap.Score.Player,
		Losses:     snap.Score.Computer,
		Draws:      snap.Draws,
		TotalGames: snap.TotalGames,
		BestStreak: snap.BestStreak,
		Duration:   time.Duration(g.tick) * time.Second / time.Duration(g.tickRate),
	}
}
