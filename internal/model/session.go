package model

import "time"

// CreateSessionRequest carries the tone parameters and effect toggles
// for POST /v1/sessions. Zero-valued fields fall back to the stock
// session defaults.
type CreateSessionRequest struct {
	Freq1           int     `json:"freq1"`
	Freq2           int     `json:"freq2"`
	Freq3           int     `json:"freq3"`
	DurationMinutes int     `json:"durationMinutes"`
	SampleRate      int     `json:"sampleRate"`
	Effects         Effects `json:"effects"`
}

// Effects mirrors the effect toggles. BinauralDiffHz is a pointer
// because 0 Hz is a meaningful setting, distinct from absent.
type Effects struct {
	AmplitudeModulation bool    `json:"amplitudeModulation"`
	AMRateHz            float64 `json:"amRateHz"`
	Reverb              bool    `json:"reverb"`
	Echo                bool    `json:"echo"`
	StereoPan           bool    `json:"stereoPan"`
	IsochronicPulses    bool    `json:"isochronicPulses"`
	PulseRateHz         int     `json:"pulseRateHz"`
	BinauralBeats       bool    `json:"binauralBeats"`
	BinauralDiffHz      *int    `json:"binauralDiffHz"`
	Chorus              bool    `json:"chorus"`
	Flanger             bool    `json:"flanger"`
	Tremolo             bool    `json:"tremolo"`
	Lowpass             bool    `json:"lowpass"`
	Highpass            bool    `json:"highpass"`
	Distortion          bool    `json:"distortion"`
	NoiseLayer          bool    `json:"noiseLayer"`
	NoiseSeed           int64   `json:"noiseSeed"`
}

type SessionResponse struct {
	SessionID       string    `json:"sessionId"`
	CreatedAt       time.Time `json:"createdAt"`
	Freq1           int       `json:"freq1"`
	Freq2           int       `json:"freq2"`
	Freq3           int       `json:"freq3"`
	DurationSeconds int       `json:"durationSeconds"`
	SampleRate      int       `json:"sampleRate"`
	Effects         []string  `json:"effects"`
	Peak            float64   `json:"peak"`
	FileBytes       int64     `json:"fileBytes"`
	DownloadPath    string    `json:"downloadPath"`
}

type WaveformResponse struct {
	SessionID string    `json:"sessionId"`
	Points    []float64 `json:"points"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
