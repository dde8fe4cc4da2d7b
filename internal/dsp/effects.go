package dsp

import "math"

// Fixed effect parameters. Everything user-tunable lives in
// session.Config; these are part of the chain's sound.
const (
	reverbDecayRate = 0.0005 // kernel exp(-rate·j)
	reverbWetGain   = 0.5
	echoDelaySec    = 0.3
	echoGain        = 0.5
	panRateHz       = 0.25
	chorusShift     = 200 // samples
	chorusGain      = 0.02
	flangerShift    = 400 // samples
	flangerGain     = 0.5
	tremoloRateHz   = 5.0
	lowpassWindow   = 100  // samples
	highpassCutoff  = 0.01 // fraction of Nyquist
	distortionDrive = 5.0
	noiseStdDev     = 0.03
)

// amplitudeModulation multiplies the mono mix by a slow sine envelope in
// [0, 1]. A zero rate leaves the stage off even when enabled.
func (c *Chain) amplitudeModulation(st State, g TimeGrid) State {
	rate := c.fx.AMRateHz
	if rate == 0 {
		return st
	}
	out := make([]float64, g.Len())
	for i := range out {
		out[i] = st.Mono[i] * 0.5 * (1 + math.Sin(2*math.Pi*rate*g.At(i)))
	}
	return st.withMono(out)
}

// reverb adds an exponentially decaying tail: half the full convolution
// of the mono mix with exp(-0.0005·j), truncated to session length.
func (c *Chain) reverb(st State, g TimeGrid) State {
	wet := convolveExpDecay(st.Mono, reverbDecayRate)
	out := make([]float64, len(st.Mono))
	for i := range out {
		out[i] = st.Mono[i] + reverbWetGain*wet[i]
	}
	return st.withMono(out)
}

// echo adds a single half-gain repeat 0.3 s behind the dry signal. Echo
// sources are pre-echo values, so the repeat does not feed back. Delays
// of zero or beyond the buffer are a no-op.
func (c *Chain) echo(st State, g TimeGrid) State {
	d := int(math.Round(echoDelaySec * float64(g.SampleRate())))
	if d <= 0 || d >= len(st.Mono) {
		return st
	}
	out := make([]float64, len(st.Mono))
	copy(out, st.Mono)
	for i := d; i < len(out); i++ {
		out[i] += echoGain * st.Mono[i-d]
	}
	return st.withMono(out)
}

// stereoPan sweeps the mono mix between the channels at 0.25 Hz,
// replacing whatever Left and Right held. Channel gains are (1∓pan), so
// each channel swings between 0 and 2x.
func (c *Chain) stereoPan(st State, g TimeGrid) State {
	left := make([]float64, g.Len())
	right := make([]float64, g.Len())
	for i := range left {
		pan := math.Sin(2 * math.Pi * panRateHz * g.At(i))
		left[i] = (1 - pan) * st.Mono[i]
		right[i] = (1 + pan) * st.Mono[i]
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}

// isochronicPulses gates both channels with the square wave
// 0.5·(1+sign(sin(2π·rate·t))). The gate is 1 on positive half-periods,
// 0 on negative ones, and 0.5 at exact zero crossings of the sine.
func (c *Chain) isochronicPulses(st State, g TimeGrid) State {
	rate := float64(c.fx.PulseRateHz)
	left := make([]float64, g.Len())
	right := make([]float64, g.Len())
	for i := range left {
		gate := 0.5 * (1 + sign(math.Sin(2*math.Pi*rate*g.At(i))))
		left[i] = st.Left[i] * gate
		right[i] = st.Right[i] * gate
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}

// binauralBeats replaces both channels outright with pure tones: freq1 on
// the left, freq1+diff on the right. Everything the chain built into the
// stereo pair so far is discarded; the frozen mono stays available for
// the flanger.
func (c *Chain) binauralBeats(st State, g TimeGrid) State {
	f1 := float64(c.params.Freq1)
	f2 := f1 + float64(c.fx.BinauralDiffHz)
	left := make([]float64, g.Len())
	right := make([]float64, g.Len())
	for i := range left {
		t := g.At(i)
		left[i] = math.Sin(2 * math.Pi * f1 * t)
		right[i] = math.Sin(2 * math.Pi * f2 * t)
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}

// chorus thickens each channel with a faint copy of itself rotated 200
// samples, wrapping the tail to the front.
func (c *Chain) chorus(st State, g TimeGrid) State {
	return State{
		Mono:  st.Mono,
		Left:  addRotated(st.Left, st.Left, chorusShift, chorusGain),
		Right: addRotated(st.Right, st.Right, chorusShift, chorusGain),
	}
}

// flanger adds half the 400-sample rotation of the frozen post-echo mono
// to both channels. It deliberately ignores the current stereo content;
// see the State ordering contract.
func (c *Chain) flanger(st State, g TimeGrid) State {
	return State{
		Mono:  st.Mono,
		Left:  addRotated(st.Left, st.Mono, flangerShift, flangerGain),
		Right: addRotated(st.Right, st.Mono, flangerShift, flangerGain),
	}
}

// addRotated returns base + gain·rotate(src, shift).
func addRotated(base, src []float64, shift int, gain float64) []float64 {
	rot := rotate(src, shift)
	out := make([]float64, len(base))
	for i := range out {
		out[i] = base[i] + gain*rot[i]
	}
	return out
}

// tremolo multiplies both channels by a fixed 5 Hz sine envelope in
// [0, 1], the stereo counterpart of amplitudeModulation.
func (c *Chain) tremolo(st State, g TimeGrid) State {
	left := make([]float64, g.Len())
	right := make([]float64, g.Len())
	for i := range left {
		env := 0.5 * (1 + math.Sin(2*math.Pi*tremoloRateHz*g.At(i)))
		left[i] = st.Left[i] * env
		right[i] = st.Right[i] * env
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}

// lowpass smooths each channel with a 100-sample moving average.
func (c *Chain) lowpass(st State, g TimeGrid) State {
	return State{
		Mono:  st.Mono,
		Left:  movingAverage(st.Left, lowpassWindow),
		Right: movingAverage(st.Right, lowpassWindow),
	}
}

// highpass removes rumble and DC with a first-order Butterworth filter at
// 1% of Nyquist, run forward-backward for zero phase shift.
func (c *Chain) highpass(st State, g TimeGrid) State {
	b, a := butterHighpass(highpassCutoff)
	return State{
		Mono:  st.Mono,
		Left:  filtfilt(b, a, st.Left),
		Right: filtfilt(b, a, st.Right),
	}
}

// distortion drives each channel through tanh(5x) soft clipping.
func (c *Chain) distortion(st State, g TimeGrid) State {
	left := make([]float64, g.Len())
	right := make([]float64, g.Len())
	for i := range left {
		left[i] = math.Tanh(distortionDrive * st.Left[i])
		right[i] = math.Tanh(distortionDrive * st.Right[i])
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}

// noiseLayer adds Gaussian noise with σ = 0.03. The channels draw
// independently from the chain's generator, left first, so a fixed seed
// reproduces the exact same stereo texture.
func (c *Chain) noiseLayer(st State, g TimeGrid) State {
	left := make([]float64, g.Len())
	for i := range left {
		left[i] = st.Left[i] + c.rng.NormFloat64()*noiseStdDev
	}
	right := make([]float64, g.Len())
	for i := range right {
		right[i] = st.Right[i] + c.rng.NormFloat64()*noiseStdDev
	}
	return State{Mono: st.Mono, Left: left, Right: right}
}
