package rps

// Outcome is the result of comparing the player's move to the computer's.
// The zero value means the round has not been resolved.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayer
	OutcomeComputer
	OutcomeDraw
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlayer:
		return "player"
	case OutcomeComputer:
		return "computer"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// Resolve decides a round. It is total over valid move pairs; an invalid
// move on either side yields OutcomeNone.
func Resolve(player, computer Move) Outcome {
	if !player.Valid() || !computer.Valid() {
		return OutcomeNone
	}
	switch {
	case player == computer:
		return OutcomeDraw
	case player.Beats() == computer:
		return OutcomePlayer
	default:
		return OutcomeComputer
	}
}
