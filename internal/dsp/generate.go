package dsp

import "github.com/Jeredozaeta/soundlab-pro/internal/session"

// Result holds one rendered session. Channels are equal length,
// normalized into [-1, 1], and owned by the caller.
type Result struct {
	Left  []float64
	Right []float64
	// Peak is the largest absolute sample before normalization. Zero
	// means the session rendered to silence.
	Peak float64
}

// Generate renders a complete session: validate, synthesize the
// three-tone mix on the time grid, run the effect chain, normalize.
//
// The call is synchronous and pure given its inputs (including the noise
// seed); it shares no state with other calls, so independent sessions may
// render concurrently.
func Generate(params session.Params, fx session.Config) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}

	g := NewTimeGrid(params.SampleRate, params.SampleCount())
	st := Synthesize(params, g)

	st, err := NewChain(params, fx).Apply(st, g)
	if err != nil {
		return nil, err
	}

	left, right, peak := Normalize(st.Left, st.Right)
	return &Result{Left: left, Right: right, Peak: peak}, nil
}
