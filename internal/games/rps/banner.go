package rps

import (
	"github.com/vovakirdan/rps-showdown/internal/config"
	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// resultText returns the settled banner. Win banners escalate with the
// streak when tiers are enabled.
func resultText(o rps.Outcome, streak int, fb config.FeedbackConfig) (string, core.Color) {
	switch o {
	case rps.OutcomePlayer:
		if fb.Tiers {
			switch {
			case streak >= fb.LegendaryAt:
				return "LEGENDARY!", core.ColorOrange
			case streak >= fb.OnFireAt:
				return "ON FIRE!", core.ColorBrightYellow
			}
		}
		return "YOU WIN!", core.ColorBrightGreen
	case rps.OutcomeComputer:
		return "YOU LOSE!", core.ColorBrightRed
	case rps.OutcomeDraw:
		return "IT'S A DRAW!", core.ColorBrightYellow
	default:
		return "", core.ColorDefault
	}
}
