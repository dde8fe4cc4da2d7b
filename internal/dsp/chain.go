package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Jeredozaeta/soundlab-pro/internal/session"
)

// ErrComputation is wrapped by every non-finite-value failure.
var ErrComputation = errors.New("computation produced a non-finite value")

// ComputationError reports a NaN or Inf sample escaping an effect stage.
type ComputationError struct {
	Stage string
	Index int
	Value float64
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("stage %s produced %v at sample %d", e.Stage, e.Value, e.Index)
}

func (e *ComputationError) Unwrap() error { return ErrComputation }

// State carries the signal through the chain: the mono mix plus the
// stereo pair derived from it. Stages never write into a buffer they
// received; they allocate fresh output for whatever they change and pass
// the rest through.
//
// Left and Right reference the Mono buffer until the first stereo stage
// replaces them. The chain order guarantees every mono-writing stage
// (1-3) runs before any stereo-writing stage (4-13), so mono stages
// republish their output to all three fields and from stage 4 on Mono is
// frozen. The flanger reads that frozen post-echo mono on purpose: its
// sweep is taken from the signal before panning, pulsing, or binaural
// replacement.
type State struct {
	Mono  []float64
	Left  []float64
	Right []float64
}

// withMono republishes a new mono buffer to all three fields. Only valid
// while Left and Right still track Mono, which the fixed stage order
// guarantees for every caller.
func (st State) withMono(m []float64) State {
	return State{Mono: m, Left: m, Right: m}
}

// Chain applies the fixed 13-stage effect sequence to a synthesized
// state. Stage order never varies; disabled stages are identity.
type Chain struct {
	params session.Params
	fx     session.Config
	rng    *rand.Rand
}

// NewChain builds a chain for one rendering pass. The noise generator is
// seeded from fx.NoiseSeed, or from the clock when the seed is zero.
func NewChain(params session.Params, fx session.Config) *Chain {
	seed := fx.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Chain{
		params: params,
		fx:     fx,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

type stage struct {
	effect session.Effect
	apply  func(State, TimeGrid) State
}

func (c *Chain) stages() [13]stage {
	return [13]stage{
		{session.AmplitudeModulation, c.amplitudeModulation},
		{session.Reverb, c.reverb},
		{session.Echo, c.echo},
		{session.StereoPan, c.stereoPan},
		{session.IsochronicPulses, c.isochronicPulses},
		{session.BinauralBeats, c.binauralBeats},
		{session.Chorus, c.chorus},
		{session.Flanger, c.flanger},
		{session.Tremolo, c.tremolo},
		{session.Lowpass, c.lowpass},
		{session.Highpass, c.highpass},
		{session.Distortion, c.distortion},
		{session.NoiseLayer, c.noiseLayer},
	}
}

// Apply runs every enabled stage in order and scans each stage's output
// for non-finite values so a numeric blowup is attributed to the stage
// that produced it.
func (c *Chain) Apply(st State, g TimeGrid) (State, error) {
	for _, s := range c.stages() {
		if !c.fx.Enabled(s.effect) {
			continue
		}
		st = s.apply(st, g)
		if err := checkFinite(s.effect.String(), st); err != nil {
			return State{}, err
		}
	}
	return st, nil
}

// checkFinite scans both output channels. Mono never changes after the
// last stage where Left still aliases it, so the two channels cover every
// buffer a later stage can read.
func checkFinite(stage string, st State) error {
	for _, ch := range [2][]float64{st.Left, st.Right} {
		for i, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ComputationError{Stage: stage, Index: i, Value: v}
			}
		}
	}
	return nil
}
