package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream label values.
const (
	UpstreamItems    = "items"
	UpstreamIBGE     = "ibge"
	UpstreamPoints   = "points"
	UpstreamGeocoder = "geocoder"
)

type Metrics struct {
	Submissions     *prometheus.CounterVec
	UpstreamErrors  *prometheus.CounterVec
	UpstreamSeconds *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ecoleta_point_submissions_total",
			Help: "Total number of collection point submissions by outcome.",
		}, []string{"status"}),
		UpstreamErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ecoleta_upstream_api_errors_total",
			Help: "Total number of errors received from upstream APIs.",
		}, []string{"upstream"}),
		UpstreamSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecoleta_upstream_request_duration_seconds",
			Help:    "Duration of requests to upstream APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "ecoleta_outbox_active_workers",
			Help: "Current number of workers redelivering queued submissions.",
		}),
	}
}
