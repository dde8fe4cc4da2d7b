package studio

import (
	"time"

	"github.com/Jeredozaeta/soundlab-pro/internal/session"
)

// Session is a rendered take held in the registry until it expires or
// is deleted: the WAV artifact on disk plus the metadata the API serves.
type Session struct {
	ID        string
	Params    session.Params
	Effects   session.Config
	CreatedAt time.Time

	FilePath string
	FileSize int64
	Peak     float64

	// Preview is a fixed-size amplitude envelope for waveform displays.
	Preview []float64

	expire *time.Timer
}

// DurationSeconds returns the session length in seconds.
func (s *Session) DurationSeconds() int {
	return s.Params.DurationMinutes * 60
}
