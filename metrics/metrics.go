package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RecordingsProcessedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "verdiq_recordings_processed",
		Help: "Number of voice recordings processed end to end",
	},
)

var RecordingsFailedCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "verdiq_recordings_failed_total",
		Help: "Number of voice pipeline failures by stage",
	},
	[]string{"stage"},
)

var TranscriptionSecondsHistogram = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "verdiq_transcription_seconds",
		Help:    "Duration of transcription model calls",
		Buckets: prometheus.DefBuckets,
	},
)

var RecorderSessionsGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "verdiq_recorder_sessions",
		Help: "Currently open websocket recorder sessions",
	},
)
