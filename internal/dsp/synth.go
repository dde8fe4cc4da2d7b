package dsp

import (
	"math"

	"github.com/Jeredozaeta/soundlab-pro/internal/session"
)

// Synthesize renders the base mix, three equal-weight sine tones:
//
//	mono[i] = (sin(2π·f1·t) + sin(2π·f2·t) + sin(2π·f3·t)) / 3
//
// The returned state has Left and Right referencing the same buffer as
// Mono; they stay in lockstep until the first stereo stage of the chain
// replaces them.
func Synthesize(p session.Params, g TimeGrid) State {
	f1 := float64(p.Freq1)
	f2 := float64(p.Freq2)
	f3 := float64(p.Freq3)

	mono := make([]float64, g.Len())
	for i := range mono {
		t := g.At(i)
		mono[i] = (math.Sin(2*math.Pi*f1*t) + math.Sin(2*math.Pi*f2*t) + math.Sin(2*math.Pi*f3*t)) / 3
	}
	return State{Mono: mono, Left: mono, Right: mono}
}
