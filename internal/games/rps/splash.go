package rps

import (
	"strings"

	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// renderSplash draws the intro screen: the three hands, the title and a
// pulsing row of dots.
func (g *Game) renderSplash(dst *core.Screen) {
	l := g.layout()
	dst.DrawBoxColored(core.NewRect(0, l.top, g.screenW, MinHeight), core.ColorPurple)

	// Hands take turns lighting up
	lit := int(g.tick/10) % len(rps.AllMoves)
	labels := []string{"ROCK", "PAPER", "SCISSORS"}
	colWidth := (g.screenW - 4) / len(rps.AllMoves)
	for i, m := range rps.AllMoves {
		color := core.ColorGray
		if i == lit {
			color = particlePalette[i]
		}
		x := 2 + i*colWidth + (colWidth-len(labels[i]))/2
		dst.DrawTextColored(x, l.hands-1, labels[i], color)
		dst.DrawTextColored(2+i*colWidth+(colWidth-3)/2, l.hands, glyph(m), color)
	}

	dst.DrawTextCenteredColored(l.hands+2, "ROCK PAPER SCISSORS", core.ColorBrightWhite)
	dst.DrawTextCenteredColored(l.hands+3, "Get ready to play...", core.ColorGray)

	dots := strings.Repeat("● ", int(g.tick/6)%3+1)
	dst.DrawTextCenteredColored(l.hands+5, strings.TrimSpace(dots), core.ColorPurple)
	dst.DrawTextCenteredColored(l.help, "[Enter] skip", core.ColorGray)
}

// glyph is a three-cell icon for a move.
func glyph(m rps.Move) string {
	switch m {
	case rps.Rock:
		return "(o)"
	case rps.Paper:
		return "[=]"
	case rps.Scissors:
		return ">8 "
	default:
		return " ? "
	}
}
