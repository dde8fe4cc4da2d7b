// Package studio renders sessions and keeps the resulting WAV files
// available for download until they expire.
package studio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Jeredozaeta/soundlab-pro/internal/config"
	"github.com/Jeredozaeta/soundlab-pro/internal/dsp"
	"github.com/Jeredozaeta/soundlab-pro/internal/metrics"
	"github.com/Jeredozaeta/soundlab-pro/internal/pcm"
	"github.com/Jeredozaeta/soundlab-pro/internal/session"
	"github.com/Jeredozaeta/soundlab-pro/internal/wavfile"
)

const previewPoints = 1024

var (
	// ErrCapacity is returned when the registry already holds the
	// configured maximum number of sessions.
	ErrCapacity = errors.New("session capacity reached")

	// ErrClosed is returned for renders requested after shutdown began.
	ErrClosed = errors.New("studio is shut down")
)

// Studio owns the render pipeline and the session registry. Renders run
// at bounded concurrency; finished sessions are evicted after a TTL.
type Studio struct {
	cfg    *config.Config
	logger *zap.Logger

	// sessionSlots caps how many rendered sessions may exist at once;
	// a slot is held from admission until the session is deleted.
	sessionSlots chan struct{}
	// renderSem bounds concurrent renders, which are CPU and memory
	// heavy (four float64 buffers per minute-scale take).
	renderSem chan struct{}

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// New creates a Studio using cfg for capacity limits and output paths.
func New(cfg *config.Config, logger *zap.Logger) *Studio {
	return &Studio{
		cfg:          cfg,
		logger:       logger,
		sessionSlots: make(chan struct{}, cfg.MaxSessions),
		renderSem:    make(chan struct{}, cfg.MaxConcurrentRenders),
		sessions:     make(map[string]*Session),
	}
}

// Count returns the current number of live sessions.
func (st *Studio) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Get returns the session with the given id, or nil.
func (st *Studio) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Render generates the session audio, writes the WAV artifact, and
// registers the session under id. It fails fast with ErrCapacity when
// the registry is full and blocks on the render semaphore otherwise.
func (st *Studio) Render(ctx context.Context, id string, p session.Params, fx session.Config) (*Session, error) {
	logger := st.logger.With(zap.String("session", id))

	st.mu.RLock()
	closed := st.closed
	st.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	// Claim a registry slot up front so concurrent renders cannot
	// overshoot the session cap. Released on failure and on delete.
	select {
	case st.sessionSlots <- struct{}{}:
	default:
		metrics.RendersRejectedTotal.Inc()
		logger.Warn("session capacity reached", zap.Int("max", st.cfg.MaxSessions))
		return nil, ErrCapacity
	}

	select {
	case st.renderSem <- struct{}{}:
	case <-ctx.Done():
		<-st.sessionSlots
		metrics.RendersTotal.WithLabelValues("canceled").Inc()
		return nil, ctx.Err()
	}
	defer func() { <-st.renderSem }()

	metrics.ActiveRenders.Inc()
	defer metrics.ActiveRenders.Dec()

	logger.Info("render started",
		zap.Int("sampleRate", p.SampleRate),
		zap.Int("durationMin", p.DurationMinutes),
		zap.Int("effects", len(fx.EnabledEffects())),
	)
	start := time.Now()

	sess, err := st.render(id, p, fx)
	if err != nil {
		<-st.sessionSlots
		if errors.Is(err, session.ErrInvalidParameter) {
			metrics.RendersTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.RendersTotal.WithLabelValues("error").Inc()
		}
		logger.Error("render failed", zap.Error(err))
		return nil, err
	}

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		<-st.sessionSlots
		os.Remove(sess.FilePath)
		return nil, ErrClosed
	}
	st.sessions[id] = sess
	ttl := time.Duration(st.cfg.SessionTTLSec) * time.Second
	sess.expire = time.AfterFunc(ttl, func() {
		if st.Delete(id) {
			st.logger.Info("session expired", zap.String("session", id))
		}
	})
	st.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RendersTotal.WithLabelValues("success").Inc()
	metrics.RenderDuration.Observe(elapsed.Seconds())
	metrics.WAVBytesWrittenTotal.Add(float64(sess.FileSize))
	metrics.ActiveSessions.Inc()

	logger.Info("render complete",
		zap.Duration("elapsed", elapsed),
		zap.Int64("bytes", sess.FileSize),
		zap.Float64("peak", sess.Peak),
	)
	return sess, nil
}

// render runs the generate → quantize → write pipeline.
func (st *Studio) render(id string, p session.Params, fx session.Config) (*Session, error) {
	res, err := dsp.Generate(p, fx)
	if err != nil {
		return nil, err
	}

	samples := pcm.EncodeStereo(res.Left, res.Right)

	path := filepath.Join(st.cfg.OutputDir, "soundlab-"+id+".wav")
	size, err := wavfile.Write(path, samples, p.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("write session audio: %w", err)
	}

	return &Session{
		ID:        id,
		Params:    p,
		Effects:   fx,
		CreatedAt: time.Now(),
		FilePath:  path,
		FileSize:  size,
		Peak:      res.Peak,
		Preview:   dsp.AmplitudePreview(res.Left, res.Right, previewPoints),
	}, nil
}

// Delete removes a session from the registry and deletes its WAV file.
// It reports whether the session existed.
func (st *Studio) Delete(id string) bool {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if !ok {
		return false
	}

	if sess.expire != nil {
		sess.expire.Stop()
	}
	if err := os.Remove(sess.FilePath); err != nil && !os.IsNotExist(err) {
		st.logger.Warn("remove session file", zap.String("session", id), zap.Error(err))
	}
	<-st.sessionSlots
	metrics.ActiveSessions.Dec()
	st.logger.Info("session deleted", zap.String("session", id))
	return true
}

// Close rejects new renders and deletes every live session and its file.
func (st *Studio) Close() {
	st.mu.Lock()
	st.closed = true
	sessions := make(map[string]*Session, len(st.sessions))
	for k, v := range st.sessions {
		sessions[k] = v
	}
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for id, sess := range sessions {
		if sess.expire != nil {
			sess.expire.Stop()
		}
		if err := os.Remove(sess.FilePath); err != nil && !os.IsNotExist(err) {
			st.logger.Warn("remove session file", zap.String("session", id), zap.Error(err))
		}
	}
	metrics.ActiveSessions.Set(0)

	st.logger.Info("studio shutdown complete", zap.Int("deleted", len(sessions)))
}
