// Package rps implements the round engine for Rock-Paper-Scissors against a
// randomized computer opponent.
//
// The engine owns all match state (score, streaks, the live round) and runs
// each round through an explicit state machine:
//
//	idle ──PlayRound──▶ revealing ──think timer──▶ resolving ──▶ settled
//	  ▲                                                             │
//	  └───────────────────────NewRound──────────────────────────────┘
//
// A settled round also accepts PlayRound directly. Presentation layers observe
// the engine through Snapshot and the feedback stream returned by Events.
package rps

import "strings"

// Move is one of the three hand shapes. The zero value means "no move".
type Move int

const (
	MoveNone Move = iota
	Rock
	Paper
	Scissors
)

// AllMoves lists the valid moves in draw order.
// The computer's move is AllMoves[rand.Intn(len(AllMoves))].
var AllMoves = [...]Move{Rock, Paper, Scissors}

// Valid reports whether m is one of rock, paper or scissors.
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// String returns the lowercase move name.
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	case MoveNone:
		return "none"
	default:
		return "invalid"
	}
}

// Beats returns the move that m defeats.
func (m Move) Beats() Move {
	switch m {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	case Scissors:
		return Paper
	default:
		return MoveNone
	}
}

// ParseMove converts a name ("rock", "Paper", "s") into a Move.
// Returns MoveNone and false for anything else.
func ParseMove(s string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, true
	case "paper", "p":
		return Paper, true
	case "scissors", "s":
		return Scissors, true
	default:
		return MoveNone, false
	}
}
