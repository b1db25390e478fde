package rps

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/rps-showdown/internal/core"
	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// Celebration palette: mint, violet, blue, coral, orange.
var particlePalette = [...]core.Color{
	core.ColorBrightGreen,
	core.ColorPurple,
	core.ColorBlue,
	core.ColorBrightRed,
	core.ColorOrange,
}

var particleGlyphs = [...]rune{'*', '+', '•', '✦', '·'}

// Particle motion, in cells per tick.
const (
	particleMinSpeed = 0.15
	particleMaxSpeed = 0.5
	particleGravity  = 0.015
	cellAspect       = 2.0 // Terminal cells are about twice as tall as wide
)

// shakeOffsets is the horizontal displacement sequence of a loss shake.
var shakeOffsets = [...]int{1, -1, 1, 0}

type particle struct {
	x, y    float64
	vx, vy  float64
	life    int
	maxLife int
	color   core.Color
	glyph   rune
}

// effects holds transient, tick-driven visuals. It never touches match state.
type effects struct {
	rng      *rand.Rand
	tickRate int

	particles []particle

	shake     []int
	shakeHold int
	shakeTick int

	flash      core.Color
	flashRank  int
	flashTicks int

	pulseTick   int
	pulsePeriod int
}

func newEffects(seed int64, tickRate int, pulsePeriod time.Duration) *effects {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	fx := &effects{
		rng:      rand.New(rand.NewSource(seed)),
		tickRate: tickRate,
	}
	fx.pulsePeriod = max(2, fx.ticks(pulsePeriod))
	return fx
}

// ticks converts a duration to a whole number of ticks (at least 1).
func (fx *effects) ticks(d time.Duration) int {
	return max(1, int(math.Round(d.Seconds()*float64(fx.tickRate))))
}

// burst spawns n particles at (x, y) spreading upward.
func (fx *effects) burst(n int, x, y float64, minLife, maxLife time.Duration) {
	lo, hi := fx.ticks(minLife), fx.ticks(maxLife)
	for range n {
		// Upper half-plane, centered on straight up
		angle := -math.Pi/2 + (fx.rng.Float64()-0.5)*math.Pi
		speed := particleMinSpeed + fx.rng.Float64()*(particleMaxSpeed-particleMinSpeed)
		life := lo
		if hi > lo {
			life += fx.rng.Intn(hi - lo + 1)
		}

		fx.particles = append(fx.particles, particle{
			x:       x,
			y:       y,
			vx:      math.Cos(angle) * speed * cellAspect,
			vy:      math.Sin(angle) * speed,
			life:    life,
			maxLife: life,
			color:   particlePalette[fx.rng.Intn(len(particlePalette))],
			glyph:   particleGlyphs[fx.rng.Intn(len(particleGlyphs))],
		})
	}
}

// startShake begins the loss shake, each offset held for step.
func (fx *effects) startShake(step time.Duration) {
	fx.shake = append(fx.shake[:0], shakeOffsets[:]...)
	fx.shakeHold = fx.ticks(step)
	fx.shakeTick = 0
}

// shakeOffset returns the current horizontal displacement.
func (fx *effects) shakeOffset() int {
	if len(fx.shake) == 0 {
		return 0
	}
	return fx.shake[0]
}

// pulse flashes the border for a haptic. A weaker pulse never cuts short a
// stronger one that is still showing.
func (fx *effects) pulse(h rps.Haptic) {
	var (
		color core.Color
		rank  int
		d     time.Duration
	)
	switch h {
	case rps.HapticLight:
		color, rank, d = core.ColorCyan, 1, 80*time.Millisecond
	case rps.HapticMedium:
		color, rank, d = core.ColorBrightBlue, 2, 150*time.Millisecond
	case rps.HapticSuccess:
		color, rank, d = core.ColorBrightGreen, 3, 400*time.Millisecond
	case rps.HapticError:
		color, rank, d = core.ColorBrightRed, 3, 400*time.Millisecond
	default:
		return
	}

	if fx.flashTicks > 0 && rank < fx.flashRank {
		return
	}
	fx.flash = color
	fx.flashRank = rank
	fx.flashTicks = fx.ticks(d)
}

// borderColor returns the flash color, or ColorDefault when idle.
func (fx *effects) borderColor() core.Color {
	if fx.flashTicks > 0 {
		return fx.flash
	}
	return core.ColorDefault
}

// pulseLevel returns the score pulse position in [0, 1]: up for half the
// period, down for the other half.
func (fx *effects) pulseLevel() float64 {
	half := float64(fx.pulsePeriod) / 2
	p := float64(fx.pulseTick % fx.pulsePeriod)
	if p < half {
		return p / half
	}
	return (float64(fx.pulsePeriod) - p) / half
}

// update advances every effect by one tick.
func (fx *effects) update() {
	fx.pulseTick++

	if fx.flashTicks > 0 {
		fx.flashTicks--
	}

	if len(fx.shake) > 0 {
		fx.shakeTick++
		if fx.shakeTick >= fx.shakeHold {
			fx.shake = fx.shake[1:]
			fx.shakeTick = 0
		}
	}

	alive := fx.particles[:0]
	for _, p := range fx.particles {
		p.life--
		if p.life <= 0 {
			continue
		}
		p.x += p.vx
		p.y += p.vy
		p.vy += particleGravity
		alive = append(alive, p)
	}
	fx.particles = alive
}

// render draws particles over dst. Faded particles dim to gray.
func (fx *effects) render(dst *core.Screen) {
	for _, p := range fx.particles {
		color := p.color
		if p.life*4 < p.maxLife {
			color = core.ColorGray
		}
		dst.SetColored(int(math.Round(p.x)), int(math.Round(p.y)), p.glyph, color)
	}
}

// clear drops every active effect.
func (fx *effects) clear() {
	fx.particles = fx.particles[:0]
	fx.shake = fx.shake[:0]
	fx.flashTicks = 0
}
