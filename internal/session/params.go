package session

import (
	"errors"
	"fmt"
)

// Allowed parameter ranges. The HTTP and CLI surfaces clamp or reject
// before calling the pipeline, but the pipeline validates again rather
// than trusting the caller.
const (
	MinFrequency       = 20
	MaxFrequency       = 20000
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
	DefaultSampleRate  = 44100

	DefaultFreq1           = 528
	DefaultFreq2           = 963
	DefaultFreq3           = 40
	DefaultDurationMinutes = 5
)

// ErrInvalidParameter is wrapped by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports a single parameter outside its allowed range.
type ParamError struct {
	Field   string
	Value   any
	Allowed string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s = %v outside allowed %s", e.Field, e.Value, e.Allowed)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// Params describes one generation request: three base tone frequencies,
// the session length, and the output sample rate.
type Params struct {
	Freq1           int
	Freq2           int
	Freq3           int
	DurationMinutes int
	SampleRate      int
}

// DefaultParams returns the stock session: 528/963/40 Hz, five minutes,
// 44.1 kHz.
func DefaultParams() Params {
	return Params{
		Freq1:           DefaultFreq1,
		Freq2:           DefaultFreq2,
		Freq3:           DefaultFreq3,
		DurationMinutes: DefaultDurationMinutes,
		SampleRate:      DefaultSampleRate,
	}
}

// SampleCount returns the number of samples per channel for these params.
func (p Params) SampleCount() int {
	return p.SampleRate * p.DurationMinutes * 60
}

// Validate checks every field against its allowed range.
func (p Params) Validate() error {
	freqs := []struct {
		field string
		value int
	}{
		{"freq1", p.Freq1},
		{"freq2", p.Freq2},
		{"freq3", p.Freq3},
	}
	for _, f := range freqs {
		if f.value < MinFrequency || f.value > MaxFrequency {
			return &ParamError{
				Field:   f.field,
				Value:   f.value,
				Allowed: fmt.Sprintf("[%d, %d] Hz", MinFrequency, MaxFrequency),
			}
		}
	}
	if p.DurationMinutes < MinDurationMinutes || p.DurationMinutes > MaxDurationMinutes {
		return &ParamError{
			Field:   "durationMinutes",
			Value:   p.DurationMinutes,
			Allowed: fmt.Sprintf("[%d, %d]", MinDurationMinutes, MaxDurationMinutes),
		}
	}
	if p.SampleRate <= 0 {
		return &ParamError{Field: "sampleRate", Value: p.SampleRate, Allowed: "> 0"}
	}
	return nil
}
