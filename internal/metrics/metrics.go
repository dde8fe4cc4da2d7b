package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "soundlab_active_sessions",
		Help: "Number of rendered sessions currently held in memory",
	})
	ActiveRenders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "soundlab_active_renders",
		Help: "Number of renders currently executing",
	})
)

// Counters
var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundlab_renders_total",
		Help: "Total render requests by outcome",
	}, []string{"outcome"})
	RendersRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundlab_renders_rejected_total",
		Help: "Renders rejected due to the session capacity limit",
	})
	DownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundlab_downloads_total",
		Help: "Total WAV downloads served",
	})
	WAVBytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundlab_wav_bytes_written_total",
		Help: "Total bytes of WAV audio written to the output directory",
	})
)

// Histograms
var (
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "soundlab_render_duration_seconds",
		Help:    "End-to-end render duration in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)
