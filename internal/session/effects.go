package session

import "fmt"

// Effect identifies one stage of the fixed 13-stage chain. The constant
// order below is the processing order and never changes.
type Effect int

const (
	AmplitudeModulation Effect = iota
	Reverb
	Echo
	StereoPan
	IsochronicPulses
	BinauralBeats
	Chorus
	Flanger
	Tremolo
	Lowpass
	Highpass
	Distortion
	NoiseLayer

	numEffects
)

var effectNames = [numEffects]string{
	AmplitudeModulation: "amplitudeModulation",
	Reverb:              "reverb",
	Echo:                "echo",
	StereoPan:           "stereoPan",
	IsochronicPulses:    "isochronicPulses",
	BinauralBeats:       "binauralBeats",
	Chorus:              "chorus",
	Flanger:             "flanger",
	Tremolo:             "tremolo",
	Lowpass:             "lowpass",
	Highpass:            "highpass",
	Distortion:          "distortion",
	NoiseLayer:          "noiseLayer",
}

func (e Effect) String() string {
	if e < 0 || e >= numEffects {
		return fmt.Sprintf("effect(%d)", int(e))
	}
	return effectNames[e]
}

// Parameter ranges and defaults for the three configurable effects.
const (
	MinPulseRateHz    = 1
	MaxPulseRateHz    = 20
	MinBinauralDiffHz = 0
	MaxBinauralDiffHz = 50

	DefaultPulseRateHz    = 10
	DefaultBinauralDiffHz = 10
)

// Config selects which effects run and carries their parameters. An AM
// rate of zero leaves the modulator off even when the flag is set.
// NoiseSeed makes the noise layer reproducible; zero means "seed from
// entropy".
type Config struct {
	AmplitudeModulation bool
	AMRateHz            float64
	Reverb              bool
	Echo                bool
	StereoPan           bool
	IsochronicPulses    bool
	PulseRateHz         int
	BinauralBeats       bool
	BinauralDiffHz      int
	Chorus              bool
	Flanger             bool
	Tremolo             bool
	Lowpass             bool
	Highpass            bool
	Distortion          bool
	NoiseLayer          bool
	NoiseSeed           int64
}

// DefaultConfig returns an all-off config with stock rates: 10 Hz pulses
// and a 10 Hz binaural difference.
func DefaultConfig() Config {
	return Config{
		PulseRateHz:    DefaultPulseRateHz,
		BinauralDiffHz: DefaultBinauralDiffHz,
	}
}

// Enabled reports whether the given effect is switched on.
func (c Config) Enabled(e Effect) bool {
	switch e {
	case AmplitudeModulation:
		return c.AmplitudeModulation
	case Reverb:
		return c.Reverb
	case Echo:
		return c.Echo
	case StereoPan:
		return c.StereoPan
	case IsochronicPulses:
		return c.IsochronicPulses
	case BinauralBeats:
		return c.BinauralBeats
	case Chorus:
		return c.Chorus
	case Flanger:
		return c.Flanger
	case Tremolo:
		return c.Tremolo
	case Lowpass:
		return c.Lowpass
	case Highpass:
		return c.Highpass
	case Distortion:
		return c.Distortion
	case NoiseLayer:
		return c.NoiseLayer
	}
	return false
}

// EnabledEffects lists the switched-on effects in chain order.
func (c Config) EnabledEffects() []Effect {
	var out []Effect
	for e := Effect(0); e < numEffects; e++ {
		if c.Enabled(e) {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the parameters of every enabled effect. Parameters of
// disabled effects are ignored.
func (c Config) Validate() error {
	if c.AmplitudeModulation && c.AMRateHz < 0 {
		return &ParamError{Field: "amRateHz", Value: c.AMRateHz, Allowed: ">= 0"}
	}
	if c.IsochronicPulses && (c.PulseRateHz < MinPulseRateHz || c.PulseRateHz > MaxPulseRateHz) {
		return &ParamError{
			Field:   "pulseRateHz",
			Value:   c.PulseRateHz,
			Allowed: fmt.Sprintf("[%d, %d] Hz", MinPulseRateHz, MaxPulseRateHz),
		}
	}
	if c.BinauralBeats && (c.BinauralDiffHz < MinBinauralDiffHz || c.BinauralDiffHz > MaxBinauralDiffHz) {
		return &ParamError{
			Field:   "binauralDiffHz",
			Value:   c.BinauralDiffHz,
			Allowed: fmt.Sprintf("[%d, %d] Hz", MinBinauralDiffHz, MaxBinauralDiffHz),
		}
	}
	return nil
}
