package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jeredozaeta/soundlab-pro/internal/dsp"
	"github.com/Jeredozaeta/soundlab-pro/internal/metrics"
	"github.com/Jeredozaeta/soundlab-pro/internal/model"
	"github.com/Jeredozaeta/soundlab-pro/internal/session"
	"github.com/Jeredozaeta/soundlab-pro/internal/studio"
)

const (
	downloadFilename = "soundlab_output.wav"

	defaultWaveformPoints = 100
	minWaveformPoints     = 2
	maxWaveformPoints     = 4096
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	studio        *studio.Studio
	logger        *zap.Logger
	maxSampleRate int
	start         time.Time
}

// NewHandlers creates handlers backed by the given studio.
func NewHandlers(st *studio.Studio, logger *zap.Logger, maxSampleRate int) *Handlers {
	return &Handlers{
		studio:        st,
		logger:        logger,
		maxSampleRate: maxSampleRate,
		start:         time.Now(),
	}
}

// CreateSession handles POST /v1/sessions.
// Renders the session synchronously and returns its summary.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	p := paramsFromRequest(req)
	if p.SampleRate > h.maxSampleRate {
		writeError(w, http.StatusBadRequest, "sample rate above configured maximum", "sampleRate")
		return
	}
	fx := configFromRequest(req.Effects)

	id := uuid.New().String()
	sess, err := h.studio.Render(r.Context(), id, p, fx)
	if err != nil {
		h.renderError(w, id, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sessionResponse(sess))
}

// GetSession handles GET /v1/sessions/{sessionId}.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := h.studio.Get(chi.URLParam(r, "sessionId"))
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse(sess))
}

// DownloadAudio handles GET /v1/sessions/{sessionId}/audio.wav.
func (h *Handlers) DownloadAudio(w http.ResponseWriter, r *http.Request) {
	sess := h.studio.Get(chi.URLParam(r, "sessionId"))
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found", "")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	http.ServeFile(w, r, sess.FilePath)
	metrics.DownloadsTotal.Inc()
}

// GetWaveform handles GET /v1/sessions/{sessionId}/waveform?points=N.
func (h *Handlers) GetWaveform(w http.ResponseWriter, r *http.Request) {
	sess := h.studio.Get(chi.URLParam(r, "sessionId"))
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found", "")
		return
	}

	points := defaultWaveformPoints
	if raw := r.URL.Query().Get("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "points must be an integer", "points")
			return
		}
		points = n
	}
	if points < minWaveformPoints {
		points = minWaveformPoints
	}
	if points > maxWaveformPoints {
		points = maxWaveformPoints
	}

	resp := model.WaveformResponse{
		SessionID: sess.ID,
		Points:    dsp.Decimate(sess.Preview, points),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteSession handles DELETE /v1/sessions/{sessionId}.
// Deletes are idempotent: removing an unknown id is still a 204.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.studio.Delete(chi.URLParam(r, "sessionId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) renderError(w http.ResponseWriter, id string, err error) {
	var paramErr *session.ParamError
	switch {
	case errors.As(err, &paramErr):
		writeError(w, http.StatusBadRequest, paramErr.Error(), paramErr.Field)
	case errors.Is(err, dsp.ErrComputation):
		h.logger.Error("render produced non-finite audio", zap.String("session", id), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
	case errors.Is(err, studio.ErrCapacity):
		writeError(w, http.StatusTooManyRequests, "session capacity reached, delete a session or retry later", "")
	case errors.Is(err, studio.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "service is shutting down", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away mid-render.
		writeError(w, http.StatusRequestTimeout, "render canceled", "")
	default:
		h.logger.Error("render failed", zap.String("session", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render failed", "")
	}
}

func writeError(w http.ResponseWriter, code int, msg, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg, Field: field})
}

// paramsFromRequest applies the stock defaults to zero-valued fields.
func paramsFromRequest(req model.CreateSessionRequest) session.Params {
	p := session.Params{
		Freq1:           req.Freq1,
		Freq2:           req.Freq2,
		Freq3:           req.Freq3,
		DurationMinutes: req.DurationMinutes,
		SampleRate:      req.SampleRate,
	}
	if p.Freq1 == 0 {
		p.Freq1 = session.DefaultFreq1
	}
	if p.Freq2 == 0 {
		p.Freq2 = session.DefaultFreq2
	}
	if p.Freq3 == 0 {
		p.Freq3 = session.DefaultFreq3
	}
	if p.DurationMinutes == 0 {
		p.DurationMinutes = session.DefaultDurationMinutes
	}
	if p.SampleRate == 0 {
		p.SampleRate = session.DefaultSampleRate
	}
	return p
}

func configFromRequest(e model.Effects) session.Config {
	fx := session.Config{
		AmplitudeModulation: e.AmplitudeModulation,
		AMRateHz:            e.AMRateHz,
		Reverb:              e.Reverb,
		Echo:                e.Echo,
		StereoPan:           e.StereoPan,
		IsochronicPulses:    e.IsochronicPulses,
		PulseRateHz:         e.PulseRateHz,
		BinauralBeats:       e.BinauralBeats,
		Chorus:              e.Chorus,
		Flanger:             e.Flanger,
		Tremolo:             e.Tremolo,
		Lowpass:             e.Lowpass,
		Highpass:            e.Highpass,
		Distortion:          e.Distortion,
		NoiseLayer:          e.NoiseLayer,
		NoiseSeed:           e.NoiseSeed,
	}
	if fx.PulseRateHz == 0 {
		fx.PulseRateHz = session.DefaultPulseRateHz
	}
	if e.BinauralDiffHz != nil {
		fx.BinauralDiffHz = *e.BinauralDiffHz
	} else {
		fx.BinauralDiffHz = session.DefaultBinauralDiffHz
	}
	return fx
}

func sessionResponse(sess *studio.Session) model.SessionResponse {
	enabled := sess.Effects.EnabledEffects()
	names := make([]string, 0, len(enabled))
	for _, e := range enabled {
		names = append(names, e.String())
	}

	return model.SessionResponse{
		SessionID:       sess.ID,
		CreatedAt:       sess.CreatedAt,
		Freq1:           sess.Params.Freq1,
		Freq2:           sess.Params.Freq2,
		Freq3:           sess.Params.Freq3,
		DurationSeconds: sess.DurationSeconds(),
		SampleRate:      sess.Params.SampleRate,
		Effects:         names,
		Peak:            sess.Peak,
		FileBytes:       sess.FileSize,
		DownloadPath:    "/v1/sessions/" + sess.ID + "/audio.wav",
	}
}
