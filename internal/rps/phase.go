package rps

// Phase is the stage of the round state machine.
type Phase int

const (
	PhaseIdle      Phase = iota // No moves chosen, or previous round cleared
	PhaseRevealing              // Player committed; computer display is cycling
	PhaseResolving              // Computer move drawn; outcome being applied
	PhaseSettled                // Result visible
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRevealing:
		return "revealing"
	case PhaseResolving:
		return "resolving"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// InFlight reports whether a round is running. Play requests are rejected
// while this is true.
func (p Phase) InFlight() bool {
	return p == PhaseRevealing || p == PhaseResolving
}
