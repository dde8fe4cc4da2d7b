package dsp

import (
	"errors"
	"math"
	"testing"

	"github.com/Jeredozaeta/soundlab-pro/internal/session"
)

func TestChainAllDisabledIsIdentity(t *testing.T) {
	p := session.DefaultParams()
	p.SampleRate = 1000
	g := NewTimeGrid(1000, 1000)

	st := Synthesize(p, g)
	out, err := NewChain(p, session.DefaultConfig()).Apply(st, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range st.Mono {
		if out.Left[i] != st.Mono[i] || out.Right[i] != st.Mono[i] {
			t.Fatalf("sample %d: expected untouched base mix", i)
		}
	}
}

// TestChainOrderingFlangerAfterPan verifies the stage ordering contract:
// the flanger contribution is derived from the post-echo mono and is not
// affected by the pan sweep applied before it.
func TestChainOrderingFlangerAfterPan(t *testing.T) {
	p := session.DefaultParams()
	p.SampleRate = 100
	fx := session.DefaultConfig()
	fx.Echo = true
	fx.StereoPan = true
	fx.Flanger = true

	g := NewTimeGrid(100, 500)
	st := Synthesize(p, g)
	base := append([]float64(nil), st.Mono...)

	out, err := NewChain(p, fx).Apply(st, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reference pipeline, spelled out by hand.
	d := int(math.Round(0.3 * 100))
	echoed := append([]float64(nil), base...)
	for i := d; i < len(echoed); i++ {
		echoed[i] += 0.5 * base[i-d]
	}
	sweep := rotate(echoed, 400)
	for i := 0; i < g.Len(); i++ {
		pan := math.Sin(2 * math.Pi * 0.25 * g.At(i))
		wantL := (1-pan)*echoed[i] + 0.5*sweep[i]
		wantR := (1+pan)*echoed[i] + 0.5*sweep[i]
		if math.Abs(out.Left[i]-wantL) > 1e-12 {
			t.Fatalf("left sample %d: expected %v, got %v", i, wantL, out.Left[i])
		}
		if math.Abs(out.Right[i]-wantR) > 1e-12 {
			t.Fatalf("right sample %d: expected %v, got %v", i, wantR, out.Right[i])
		}
	}

	// The flanger term is the half-difference remainder: removing it must
	// leave pure pan, which sums to 2x the echoed mono.
	for i := 0; i < g.Len(); i++ {
		sum := out.Left[i] + out.Right[i] - sweep[i]
		if math.Abs(sum-2*echoed[i]) > 1e-12 {
			t.Fatalf("sample %d: flanger term entangled with pan", i)
		}
	}
}

func TestChainMonoFrozenAfterStereoStages(t *testing.T) {
	p := session.DefaultParams()
	p.SampleRate = 100
	fx := session.DefaultConfig()
	fx.Echo = true
	fx.BinauralBeats = true
	fx.Tremolo = true

	g := NewTimeGrid(100, 300)
	st := Synthesize(p, g)

	// Expected frozen mono: synth + echo.
	d := int(math.Round(0.3 * 100))
	want := append([]float64(nil), st.Mono...)
	for i := d; i < len(want); i++ {
		want[i] += 0.5 * st.Mono[i-d]
	}

	out, err := NewChain(p, fx).Apply(st, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range want {
		if math.Abs(out.Mono[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: mono must stay frozen after echo, expected %v, got %v",
				i, want[i], out.Mono[i])
		}
	}
}

func TestChainReportsNonFiniteStage(t *testing.T) {
	p := session.DefaultParams()
	p.SampleRate = 100
	fx := session.DefaultConfig()
	fx.Reverb = true

	g := NewTimeGrid(100, 50)
	m := make([]float64, 50)
	m[5] = math.NaN()
	st := State{Mono: m, Left: m, Right: m}

	_, err := NewChain(p, fx).Apply(st, g)
	if err == nil {
		t.Fatal("expected a computation error, got nil")
	}
	if !errors.Is(err, ErrComputation) {
		t.Errorf("expected ErrComputation, got %v", err)
	}
	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputationError, got %T", err)
	}
	if ce.Stage != "reverb" {
		t.Errorf("expected stage reverb, got %q", ce.Stage)
	}
	if ce.Index != 5 {
		t.Errorf("expected first bad sample at 5, got %d", ce.Index)
	}
}

func TestChainStageOrderMatchesEffectOrder(t *testing.T) {
	c := NewChain(session.DefaultParams(), session.DefaultConfig())
	for i, s := range c.stages() {
		if int(s.effect) != i {
			t.Errorf("stage %d wired to %v", i, s.effect)
		}
	}
}
