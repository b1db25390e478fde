package rps

import "sync"

// EventKind identifies which transition produced a feedback event.
type EventKind int

const (
	EventPlay    EventKind = iota // Play request accepted, round entered revealing
	EventCycle                    // Cosmetic computer-move cycle tick
	EventSettled                  // Round resolved and settled
	EventCleared                  // New round: round state cleared
	EventReset                    // Match reset
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventCycle:
		return "cycle"
	case EventSettled:
		return "settled"
	case EventCleared:
		return "cleared"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Haptic is the tactile pulse a presentation layer should fire.
type Haptic int

const (
	HapticNone Haptic = iota
	HapticLight
	HapticMedium
	HapticSuccess
	HapticError
)

// String returns the haptic name.
func (h Haptic) String() string {
	switch h {
	case HapticLight:
		return "light"
	case HapticMedium:
		return "medium"
	case HapticSuccess:
		return "success"
	case HapticError:
		return "error"
	default:
		return "none"
	}
}

// Effect is a transient visual effect triggered by a settle.
type Effect int

const (
	EffectNone      Effect = iota
	EffectCelebrate        // Particle burst on a player win
	EffectShake            // Screen shake on a computer win
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectCelebrate:
		return "celebrate"
	case EffectShake:
		return "shake"
	default:
		return "none"
	}
}

// Event is one entry of the feedback stream.
type Event struct {
	Kind   EventKind
	Round  uint64 // Round sequence number the event belongs to
	Haptic Haptic
	Effect Effect

	// Set for EventCycle (cosmetic value) and EventSettled (final values).
	PlayerMove   Move
	ComputerMove Move
	Outcome      Outcome
}

// eventStream is a buffered, never-blocking event channel.
// If the buffer is full the oldest event is dropped to make room.
type eventStream struct {
	events    chan Event
	closeOnce sync.Once
	closed    bool
}

func newEventStream(size int) *eventStream {
	if size < 1 {
		size = 64
	}
	return &eventStream{events: make(chan Event, size)}
}

// send delivers evt without blocking. Callers hold the engine lock, which
// also serializes send against close.
func (s *eventStream) send(evt Event) {
	if s.closed {
		return
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

func (s *eventStream) close() {
	s.closeOnce.Do(func() {
		s.closed = true
		close(s.events)
	})
}
