package rps

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/vovakirdan/rps-showdown/internal/dependencies/random"
)

// errStaleRound stops a cycling ticker that outlived its round.
var errStaleRound = errors.New("rps: stale round")

// Score is the match tally.
type Score struct {
	Player   int
	Computer int
}

// Snapshot is a point-in-time copy of the engine state.
type Snapshot struct {
	Phase        Phase
	Round        uint64 // Sequence number; bumps on every accepted play and reset
	PlayerMove   Move
	ComputerMove Move // May hold a cosmetic cycling value while revealing
	Outcome      Outcome
	Score        Score
	Streak       int
	BestStreak   int
	Draws        int
	TotalGames   int
}

// WinRate returns player wins as a percentage of total games.
func (s Snapshot) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Score.Player) / float64(s.TotalGames) * 100
}

// Engine runs rounds and owns all match state.
// All methods are safe for concurrent use; timer callbacks and callers are
// serialized by a single mutex.
type Engine struct {
	mu sync.Mutex

	clock         quartz.Clock
	rng           random.Random
	logger        *log.Logger
	thinkTime     time.Duration
	cycleInterval time.Duration

	resetBestStreak bool
	cycleHaptics    bool
	eventBuffer     int
	events          *eventStream

	phase        Phase
	round        uint64
	playerMove   Move
	computerMove Move
	outcome      Outcome
	cycleIndex   int

	score      Score
	streak     int
	bestStreak int
	draws      int
	totalGames int

	stopCycle    context.CancelFunc
	resolveTimer *quartz.Timer
	closed       bool
}

// New creates an idle engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:         quartz.NewReal(),
		rng:           random.New(),
		logger:        discardLogger(),
		thinkTime:     DefaultThinkTime,
		cycleInterval: DefaultCycleInterval,
		cycleHaptics:  true,
		eventBuffer:   DefaultEventBuffer,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := ValidateTiming(e.thinkTime, e.cycleInterval); err != nil {
		return nil, err
	}

	e.events = newEventStream(e.eventBuffer)
	return e, nil
}

// Events returns the feedback stream. It is closed by Close.
func (e *Engine) Events() <-chan Event {
	return e.events.events
}

// PlayRound commits the player's move and starts a round.
// It is a silent no-op (returning false) while a round is in flight, for an
// invalid move, or after Close.
func (e *Engine) PlayRound(m Move) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	if !m.Valid() {
		e.logger.Debug("play rejected", "reason", "invalid move", "move", int(m))
		return false
	}
	if e.phase.InFlight() {
		e.logger.Debug("play rejected", "reason", "round in flight", "round", e.round, "phase", e.phase)
		return false
	}

	// Nothing from the previous round may survive into this one
	e.cancelTimersLocked()

	e.round++
	round := e.round
	e.phase = PhaseRevealing
	e.playerMove = m
	e.computerMove = MoveNone
	e.outcome = OutcomeNone
	e.cycleIndex = 0
	e.totalGames++

	e.events.send(Event{
		Kind:       EventPlay,
		Round:      round,
		Haptic:     HapticMedium,
		PlayerMove: m,
	})

	ctx, cancel := context.WithCancel(context.Background())
	e.stopCycle = cancel
	e.clock.TickerFunc(ctx, e.cycleInterval, func() error {
		return e.cycle(round)
	}, "rps", "cycle")
	e.resolveTimer = e.clock.AfterFunc(e.thinkTime, func() {
		e.resolve(round)
	}, "rps", "resolve")

	e.logger.Debug("round started", "round", round, "move", m)
	return true
}

// cycle advances the cosmetic computer display for the given round.
func (e *Engine) cycle(round uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || round != e.round || e.phase != PhaseRevealing {
		return errStaleRound
	}

	shown := AllMoves[e.cycleIndex%len(AllMoves)]
	e.cycleIndex++
	e.computerMove = shown

	haptic := HapticNone
	if e.cycleHaptics {
		haptic = HapticLight
	}
	e.events.send(Event{
		Kind:         EventCycle,
		Round:        round,
		Haptic:       haptic,
		PlayerMove:   e.playerMove,
		ComputerMove: shown,
	})
	return nil
}

// resolve draws the computer's final move and settles the round.
func (e *Engine) resolve(round uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || round != e.round || e.phase != PhaseRevealing {
		return
	}

	// Cycling stops before the draw; its values are never consulted
	if e.stopCycle != nil {
		e.stopCycle()
		e.stopCycle = nil
	}
	e.resolveTimer = nil

	e.phase = PhaseResolving
	e.computerMove = e.drawMove()
	e.outcome = Resolve(e.playerMove, e.computerMove)

	evt := Event{
		Kind:         EventSettled,
		Round:        round,
		PlayerMove:   e.playerMove,
		ComputerMove: e.computerMove,
		Outcome:      e.outcome,
	}

	switch e.outcome {
	case OutcomePlayer:
		e.score.Player++
		e.streak++
		if e.streak > e.bestStreak {
			e.bestStreak = e.streak
		}
		evt.Haptic = HapticSuccess
		evt.Effect = EffectCelebrate
	case OutcomeComputer:
		e.score.Computer++
		e.streak = 0
		evt.Haptic = HapticError
		evt.Effect = EffectShake
	case OutcomeDraw:
		e.draws++
		evt.Haptic = HapticLight
	}

	e.phase = PhaseSettled
	e.events.send(evt)

	e.logger.Debug("round settled",
		"round", round,
		"player", e.playerMove,
		"computer", e.computerMove,
		"outcome", e.outcome,
		"streak", e.streak,
	)
}

// drawMove picks the computer's move uniformly from AllMoves.
func (e *Engine) drawMove() Move {
	i := e.rng.Intn(len(AllMoves))
	if i < 0 || i >= len(AllMoves) {
		i = ((i % len(AllMoves)) + len(AllMoves)) % len(AllMoves)
	}
	return AllMoves[i]
}

// NewRound clears the current round and returns to idle.
// Score and streaks are untouched. No-op while a round is in flight.
func (e *Engine) NewRound() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if e.phase.InFlight() {
		e.logger.Debug("new round ignored", "reason", "round in flight", "round", e.round)
		return
	}

	e.clearRoundLocked()
	e.events.send(Event{Kind: EventCleared, Round: e.round, Haptic: HapticLight})
}

// ResetMatch zeroes score, streak and totals and returns to idle from any
// phase. An in-flight round is abandoned. The best streak is zeroed only
// when the engine was built WithResetBestStreak(true).
func (e *Engine) ResetMatch() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	abandoned := e.phase.InFlight()
	e.cancelTimersLocked()

	// Bumping the round invalidates callbacks of an abandoned round
	e.round++
	e.score = Score{}
	e.streak = 0
	e.draws = 0
	e.totalGames = 0
	if e.resetBestStreak {
		e.bestStreak = 0
	}
	e.clearRoundLocked()

	e.events.send(Event{Kind: EventReset, Round: e.round, Haptic: HapticMedium})
	e.logger.Debug("match reset", "abandoned", abandoned, "best_streak", e.bestStreak)
}

// Close stops all timers and closes the event stream.
// Every later call is a no-op.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.cancelTimersLocked()
	e.closed = true
	e.events.close()
}

func (e *Engine) clearRoundLocked() {
	e.phase = PhaseIdle
	e.playerMove = MoveNone
	e.computerMove = MoveNone
	e.outcome = OutcomeNone
	e.cycleIndex = 0
}

func (e *Engine) cancelTimersLocked() {
	if e.stopCycle != nil {
		e.stopCycle()
		e.stopCycle = nil
	}
	if e.resolveTimer != nil {
		e.resolveTimer.Stop()
		e.resolveTimer = nil
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Phase:        e.phase,
		Round:        e.round,
		PlayerMove:   e.playerMove,
		ComputerMove: e.computerMove,
		Outcome:      e.outcome,
		Score:        e.score,
		Streak:       e.streak,
		BestStreak:   e.bestStreak,
		Draws:        e.draws,
		TotalGames:   e.totalGames,
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Score returns the current tally.
func (e *Engine) Score() Score {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Streak returns the number of consecutive player wins.
func (e *Engine) Streak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streak
}

// BestStreak returns the highest streak seen.
func (e *Engine) BestStreak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bestStreak
}

// TotalGames returns the number of accepted play requests since the last reset.
func (e *Engine) TotalGames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalGames
}

// ThinkTime returns the configured reveal duration.
func (e *Engine) ThinkTime() time.Duration {
	return e.thinkTime
}
