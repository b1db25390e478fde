package rps

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/rps-showdown/internal/config"
	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// layout holds the row of every element, vertically centered.
type layout struct {
	top      int
	title    int
	subtitle int
	score    int
	stats    int
	labels   int
	hands    int
	banner   int
	detail   int
	help     int
	bottom   int
}

func (g *Game) layout() layout {
	top := max(0, (g.screenH-MinHeight)/2)
	return layout{
		top:      top,
		title:    top + 1,
		subtitle: top + 2,
		score:    top + 3,
		stats:    top + 4,
		labels:   top + 5,
		hands:    top + 6,
		banner:   top + 6 + handHeight,
		detail:   top + 7 + handHeight,
		help:     top + 8 + handHeight,
		bottom:   top + MinHeight - 1,
	}
}

// Render draws the current state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.engine == nil {
		return
	}
	if g.splashTicks > 0 {
		g.renderSplash(dst)
		return
	}

	snap := g.engine.Snapshot()
	l := g.layout()
	dx := g.fx.shakeOffset()

	border := g.fx.borderColor()
	if border == core.ColorDefault {
		border = core.ColorGray
	}
	dst.DrawBoxColored(core.NewRect(0, l.top, g.screenW, MinHeight), border)

	dst.DrawTextCenteredColored(l.title, "ROCK PAPER SCISSORS", core.ColorBrightWhite)
	subtitle := "Ultimate Showdown"
	if g.variant.Preset == config.PresetClassic {
		subtitle = "Classic"
	}
	dst.DrawTextCenteredColored(l.subtitle, subtitle, core.ColorPurple)

	g.renderScore(dst, l, snap)
	g.renderHands(dst, l, snap, dx)

	banner, color := g.banner(snap)
	drawCenteredShifted(dst, l.banner, banner, color, dx)
	drawCenteredShifted(dst, l.detail, g.detail(snap), core.ColorGray, dx)

	dst.DrawTextCenteredColored(l.help, g.helpLine(snap.Phase), core.ColorGray)

	g.fx.render(dst)
}

func (g *Game) renderScore(dst *core.Screen, l layout, snap rps.Snapshot) {
	// Score brightens on the upper half of the pulse
	youColor, aiColor := core.ColorGreen, core.ColorRed
	if g.fx.pulseLevel() > 0.5 {
		youColor, aiColor = core.ColorBrightGreen, core.ColorBrightRed
	}

	you := fmt.Sprintf("YOU %d", snap.Score.Player)
	ai := fmt.Sprintf("AI %d", snap.Score.Computer)
	sep := "   ·   "
	line := you + sep + ai
	x := (g.screenW - len([]rune(line))) / 2
	dst.DrawTextColored(x, l.score, you, youColor)
	dst.DrawTextColored(x+len([]rune(you)), l.score, sep, core.ColorGray)
	dst.DrawTextColored(x+len([]rune(you+sep)), l.score, ai, aiColor)

	dst.DrawTextCenteredColored(l.stats, g.statsLine(snap), core.ColorYellow)
}

func (g *Game) statsLine(snap rps.Snapshot) string {
	m := g.cfg.Match
	parts := []string{fmt.Sprintf("Streak %d", snap.Streak)}
	if m.TrackBestStreak {
		parts = append(parts, fmt.Sprintf("Best %d", snap.BestStreak))
	}
	if m.TrackTotalGames {
		parts = append(parts, fmt.Sprintf("Games %d", snap.TotalGames), fmt.Sprintf("Win %.1f%%", snap.WinRate()))
	}
	return strings.Join(parts, "  ")
}

func (g *Game) renderHands(dst *core.Screen, l layout, snap rps.Snapshot, dx int) {
	leftX := 2 + dx
	rightX := g.screenW - 2 - handWidth + dx

	dst.DrawTextColored(leftX+(handWidth-3)/2, l.labels, "YOU", core.ColorBrightCyan)
	dst.DrawTextColored(rightX+(handWidth-2)/2, l.labels, "AI", core.ColorBrightMagenta)
	dst.DrawTextColored((g.screenW-2)/2+dx, l.labels+handHeight/2, "VS", core.ColorOrange)

	playerColor, computerColor := core.ColorCyan, core.ColorMagenta
	switch snap.Outcome {
	case rps.OutcomePlayer:
		playerColor = core.ColorBrightGreen
	case rps.OutcomeComputer:
		computerColor = core.ColorBrightGreen
	}
	if snap.Phase == rps.PhaseRevealing {
		computerColor = core.ColorGray
	}

	for i, line := range handLines(snap.PlayerMove, false) {
		dst.DrawTextColored(leftX, l.hands+i, line, playerColor)
	}
	for i, line := range handLines(snap.ComputerMove, true) {
		dst.DrawTextColored(rightX, l.hands+i, line, computerColor)
	}
}

// banner returns the headline for the current phase.
func (g *Game) banner(snap rps.Snapshot) (string, core.Color) {
	switch snap.Phase {
	case rps.PhaseRevealing, rps.PhaseResolving:
		dots := strings.Repeat(".", int(g.tick/8%4))
		return "AI is thinking" + dots, core.ColorYellow
	case rps.PhaseSettled:
		return resultText(snap.Outcome, snap.Streak, g.cfg.Feedback)
	default:
		return "Choose your weapon!", core.ColorWhite
	}
}

func (g *Game) detail(snap rps.Snapshot) string {
	if snap.Phase != rps.PhaseSettled {
		return ""
	}
	switch snap.Outcome {
	case rps.OutcomePlayer:
		return fmt.Sprintf("%s beats %s", title(snap.PlayerMove), snap.ComputerMove)
	case rps.OutcomeComputer:
		return fmt.Sprintf("%s beats %s", title(snap.ComputerMove), snap.PlayerMove)
	default:
		return fmt.Sprintf("both threw %s", snap.PlayerMove)
	}
}

func (g *Game) helpLine(phase rps.Phase) string {
	if phase == rps.PhaseSettled {
		return "[R/P/S] again  [N]ew  [X] reset  [Q]uit"
	}
	return "[R]ock [P]aper [S]cissors  [X] reset  [Q]uit"
}

func title(m rps.Move) string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func drawCenteredShifted(dst *core.Screen, y int, text string, c core.Color, dx int) {
	x := (dst.Width()-len([]rune(text)))/2 + dx
	dst.DrawTextColored(x, y, text, c)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	midY := g.screenH / 2
	dst.DrawTextCenteredColored(midY-1, "Window too small", core.ColorBrightRed)
	dst.DrawTextCenteredColored(midY, fmt.Sprintf("Need %dx%d, have %dx%d", MinWidth, MinHeight, g.screenW, g.screenH), core.ColorGray)
	dst.DrawTextCenteredColored(midY+1, "Resize to continue", core.ColorGray)
}
