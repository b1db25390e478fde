package rps

import (
	"strings"

	"github.com/vovakirdan/rps-showdown/internal/rps"
)

// Hand art is drawn for the player's right hand; the computer's side is the
// mirror image.
const (
	handWidth  = 17
	handHeight = 6
)

var handArt = map[rps.Move][handHeight]string{
	rps.Rock: {
		"    _______      ",
		"---'   ____)     ",
		"      (_____)    ",
		"      (_____)    ",
		"      (____)     ",
		"---.__(___)      ",
	},
	rps.Paper: {
		"    _______      ",
		"---'   ____)____ ",
		"          ______)",
		"         _______)",
		"        _______) ",
		"---.__________)  ",
	},
	rps.Scissors: {
		"    _______      ",
		"---'   ____)____ ",
		"          ______)",
		"      __________)",
		"      (____)     ",
		"---.__(___)      ",
	},
}

var unknownArt = [handHeight]string{
	"                 ",
	"      .---.      ",
	"     (  ?  )     ",
	"      `---'      ",
	"                 ",
	"                 ",
}

// handLines returns the padded art for m. Mirrored art faces left.
func handLines(m rps.Move, mirrored bool) [handHeight]string {
	art, ok := handArt[m]
	if !ok {
		art = unknownArt
	}

	var out [handHeight]string
	for i, line := range art {
		line = pad(line, handWidth)
		if mirrored {
			line = mirror(line)
		}
		out[i] = line
	}
	return out
}

func pad(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return string([]rune(s)[:w])
	}
	return s + strings.Repeat(" ", w-n)
}

var mirrorRunes = map[rune]rune{
	'(':  ')',
	')':  '(',
	'/':  '\\',
	'\\': '/',
	'\'': '`',
	'`':  '\'',
}

// mirror reverses a line horizontally, swapping direction-sensitive glyphs.
func mirror(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	for i, c := range r {
		if m, ok := mirrorRunes[c]; ok {
			r[i] = m
		}
	}
	return string(r)
}
