package rps

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rps-showdown/internal/config"
	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/dependencies/mocks"
	"github.com/vovakirdan/rps-showdown/internal/registry"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// Computer draw indexes into rps.AllMoves.
const (
	drawRock     = 0
	drawPaper    = 1
	drawScissors = 2
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42}
}

func newTestGame(t *testing.T, v Variant, mutate func(*config.RPSConfig)) (*Game, *quartz.Mock, *mocks.MockRandom) {
	t.Helper()

	cfg := config.DefaultConfig()
	config.ApplyPreset(&cfg, v.Preset)
	cfg.Splash.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	clock := quartz.NewMock(t)
	rng := mocks.NewMockRandom()
	g := New(v, WithConfig(cfg), WithClock(clock), WithRandom(rng))
	g.Reset(testRuntime())
	t.Cleanup(g.Close)
	return g, clock, rng
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// settle advances the engine clock through a full think window.
func settle(t *testing.T, g *Game, clock *quartz.Mock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	step := g.cfg.Round.CycleInterval
	for elapsed := time.Duration(0); elapsed < g.cfg.Round.ThinkTime; elapsed += step {
		clock.Advance(step).MustWait(ctx)
	}
}

// playRound throws m against a scripted draw and returns the step result of
// the tick that consumed the settle event.
func playRound(t *testing.T, g *Game, clock *quartz.Mock, rng *mocks.MockRandom, action core.Action, draw int) core.StepResult {
	t.Helper()
	rng.QueueIntn(draw)
	g.Step(frame(action))
	require.Equal(t, rps.PhaseRevealing, g.Snapshot().Round.Phase)

	settle(t, g, clock)
	res := g.Step(frame())
	require.Equal(t, rps.PhaseSettled, g.Snapshot().Round.Phase)
	return res
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		require.True(t, registry.Exists(v.ID), v.ID)

		info, ok := registry.Lookup(v.ID)
		require.True(t, ok)
		assert.Equal(t, v.Title, info.Title)

		g, err := registry.Create(v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.ID, g.ID())
		assert.Equal(t, v.Title, g.Title())
	}

	assert.Equal(t, config.PresetEnhanced, PresetFor("rps"))
	assert.Equal(t, config.PresetClassic, PresetFor("rps_classic"))
	assert.Equal(t, config.Preset(""), PresetFor("pong"))
}

func TestNewAppliesVariantPreset(t *testing.T) {
	classic := New(Classic)
	assert.True(t, classic.Config().Match.ResetBestStreak)
	assert.False(t, classic.Config().Feedback.Shake)

	showdown := New(Showdown)
	assert.False(t, showdown.Config().Match.ResetBestStreak)
	assert.True(t, showdown.Config().Feedback.Tiers)

	// Only the classic variant opens with the intro screen
	assert.True(t, classic.Config().Splash.Enabled)
	assert.False(t, showdown.Config().Splash.Enabled)
}

func TestSplashCountsDownWhileTooSmall(t *testing.T) {
	g, _, _ := newTestGame(t, Showdown, func(c *config.RPSConfig) {
		c.Splash.Enabled = true
		c.Splash.Duration = 100 * time.Millisecond // 3 ticks at 30 fps
	})
	g.Resize(30, 10)

	for range 3 {
		g.Step(frame())
	}
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	g.Resize(MinWidth, MinHeight)
	assert.Equal(t, StatePlaying, g.Snapshot().State)
}

func TestSplashSkipOnConfirm(t *testing.T) {
	g, _, _ := newTestGame(t, Showdown, func(c *config.RPSConfig) { c.Splash.Enabled = true })
	assert.Equal(t, StateSplash, g.Snapshot().State)

	// Moves are swallowed while the splash is up
	g.Step(frame(core.ActionRock))
	assert.Equal(t, rps.PhaseIdle, g.Snapshot().Round.Phase)

	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, StatePlaying, g.Snapshot().State)
}

func TestSplashTimesOut(t *testing.T) {
	g, _, _ := newTestGame(t, Showdown, func(c *config.RPSConfig) {
		c.Splash.Enabled = true
		c.Splash.Duration = 100 * time.Millisecond // 3 ticks at 30 fps
	})

	for range 2 {
		g.Step(frame())
	}
	assert.Equal(t, StateSplash, g.Snapshot().State)
	g.Step(frame())
	assert.Equal(t, StatePlaying, g.Snapshot().State)
}

func TestWinBurstsParticles(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)

	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	snap := g.Snapshot()
	assert.Equal(t, rps.OutcomePlayer, snap.Round.Outcome)
	assert.Equal(t, rps.Score{Player: 1}, snap.Round.Score)
	assert.Equal(t, 20, snap.Particles)
	assert.Equal(t, core.ColorBrightGreen, snap.Border)
	assert.Equal(t, "YOU WIN!", snap.Banner)
	assert.False(t, snap.Shaking)
}

func TestParticlesExpire(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionPaper, drawRock)
	require.NotZero(t, g.Snapshot().Particles)

	// Max lifetime is 1.5s, 45 ticks at 30 fps
	for range 46 {
		g.Step(frame())
	}
	assert.Zero(t, g.Snapshot().Particles)
}

func TestLossShakes(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)

	playRound(t, g, clock, rng, core.ActionRock, drawPaper)

	snap := g.Snapshot()
	assert.Equal(t, rps.OutcomeComputer, snap.Round.Outcome)
	assert.True(t, snap.Shaking)
	assert.Equal(t, core.ColorBrightRed, snap.Border)
	assert.Equal(t, "YOU LOSE!", snap.Banner)
	assert.Zero(t, snap.Particles)

	for range 10 {
		g.Step(frame())
	}
	assert.False(t, g.Snapshot().Shaking)
	assert.Zero(t, g.Snapshot().ShakeOffset)
}

func TestClassicHasNoShake(t *testing.T) {
	g, clock, rng := newTestGame(t, Classic, nil)

	playRound(t, g, clock, rng, core.ActionRock, drawPaper)
	assert.False(t, g.Snapshot().Shaking)
}

func TestDrawBanner(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)

	playRound(t, g, clock, rng, core.ActionScissors, drawScissors)
	snap := g.Snapshot()
	assert.Equal(t, rps.OutcomeDraw, snap.Round.Outcome)
	assert.Equal(t, "IT'S A DRAW!", snap.Banner)
}

func TestBellOnResult(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, func(c *config.RPSConfig) { c.Feedback.Bell = true })

	res := playRound(t, g, clock, rng, core.ActionRock, drawPaper)
	assert.True(t, res.Bell)

	res = playRound(t, g, clock, rng, core.ActionRock, drawRock)
	assert.False(t, res.Bell, "draws are a light pulse")

	quiet, qclock, qrng := newTestGame(t, Showdown, nil)
	res = playRound(t, quiet, qclock, qrng, core.ActionRock, drawScissors)
	assert.False(t, res.Bell)
}

func TestConfirmStartsNewRoundWhenSettled(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	g.Step(frame(core.ActionConfirm))
	snap := g.Snapshot().Round
	assert.Equal(t, rps.PhaseIdle, snap.Phase)
	assert.Equal(t, rps.Score{Player: 1}, snap.Score)
}

func TestNewRoundAction(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	g.Step(frame(core.ActionNewRound))
	assert.Equal(t, rps.PhaseIdle, g.Snapshot().Round.Phase)
	assert.Equal(t, "Choose your weapon!", g.Snapshot().Banner)
}

func TestResetActionClearsMatchAndEffects(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)
	require.NotZero(t, g.Snapshot().Particles)

	g.Step(frame(core.ActionReset))
	snap := g.Snapshot()
	assert.Equal(t, rps.Score{}, snap.Round.Score)
	assert.Zero(t, snap.Round.TotalGames)
	assert.Equal(t, 1, snap.Round.BestStreak, "showdown keeps the best streak")
	assert.Zero(t, snap.Particles)
}

func TestClassicResetClearsBestStreak(t *testing.T) {
	g, clock, rng := newTestGame(t, Classic, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	g.Step(frame(core.ActionReset))
	assert.Zero(t, g.State().Score)
}

func TestTooSmallIgnoresInput(t *testing.T) {
	g, _, _ := newTestGame(t, Showdown, nil)
	g.Resize(30, 10)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	g.Step(frame(core.ActionRock))
	assert.Equal(t, rps.PhaseIdle, g.Snapshot().Round.Phase)

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	g.Resize(MinWidth, MinHeight)
	g.Step(frame(core.ActionRock))
	assert.Equal(t, rps.PhaseRevealing, g.Snapshot().Round.Phase)
}

func TestResizeKeepsMatch(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	g.Resize(120, 40)
	assert.Equal(t, rps.Score{Player: 1}, g.Snapshot().Round.Score)
}

func TestStateAndSummary(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)

	assert.False(t, g.Summary().Played())

	playRound(t, g, clock, rng, core.ActionRock, drawScissors)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)
	playRound(t, g, clock, rng, core.ActionRock, drawPaper)
	playRound(t, g, clock, rng, core.ActionRock, drawRock)

	state := g.State()
	assert.Equal(t, 2, state.Score)
	assert.False(t, state.GameOver)

	sum := g.Summary()
	assert.Equal(t, "rps", sum.GameID)
	assert.Equal(t, 2, sum.Wins)
	assert.Equal(t, 1, sum.Losses)
	assert.Equal(t, 1, sum.Draws)
	assert.Equal(t, 4, sum.TotalGames)
	assert.Equal(t, 2, sum.BestStreak)
	assert.True(t, sum.Played())
	assert.Positive(t, sum.Duration)
}

func TestRenderPlaying(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	playRound(t, g, clock, rng, core.ActionRock, drawScissors)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "ROCK PAPER SCISSORS")
	assert.Contains(t, out, "Ultimate Showdown")
	assert.Contains(t, out, "YOU 1")
	assert.Contains(t, out, "AI 0")
	assert.Contains(t, out, "Win 100.0%")
	assert.Contains(t, out, "Rock beats scissors")
}

func TestRenderClassicHidesTrackedStats(t *testing.T) {
	g, _, _ := newTestGame(t, Classic, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Streak 0")
	assert.NotContains(t, out, "Best")
	assert.NotContains(t, out, "Win ")
}

func TestRenderSplash(t *testing.T) {
	g, _, _ := newTestGame(t, Showdown, func(c *config.RPSConfig) { c.Splash.Enabled = true })

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Get ready to play...")
}

func TestRenderThinking(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	rng.QueueIntn(drawRock)
	g.Step(frame(core.ActionPaper))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(g.cfg.Round.CycleInterval).MustWait(ctx)
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "AI is thinking"))
}

func TestResultTextTiers(t *testing.T) {
	fb := config.DefaultConfig().Feedback
	flat := fb
	flat.Tiers = false

	tests := []struct {
		name    string
		outcome rps.Outcome
		streak  int
		fb      config.FeedbackConfig
		want    string
	}{
		{"first win", rps.OutcomePlayer, 1, fb, "YOU WIN!"},
		{"on fire", rps.OutcomePlayer, 3, fb, "ON FIRE!"},
		{"still on fire", rps.OutcomePlayer, 4, fb, "ON FIRE!"},
		{"legendary", rps.OutcomePlayer, 5, fb, "LEGENDARY!"},
		{"no tiers", rps.OutcomePlayer, 9, flat, "YOU WIN!"},
		{"loss", rps.OutcomeComputer, 0, fb, "YOU LOSE!"},
		{"draw", rps.OutcomeDraw, 2, fb, "IT'S A DRAW!"},
		{"none", rps.OutcomeNone, 0, fb, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := resultText(tt.outcome, tt.streak, tt.fb)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreakBannerInGame(t *testing.T) {
	g, clock, rng := newTestGame(t, Showdown, nil)
	for range 3 {
		playRound(t, g, clock, rng, core.ActionRock, drawScissors)
	}
	assert.Equal(t, "ON FIRE!", g.Snapshot().Banner)
}
