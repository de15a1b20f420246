package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records dispatcher and HTTP events as Prometheus metrics. It
// implements both [DispatchHooks] and [HTTPHooks].
type Metrics struct {
	Updates       *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	FetchResults  *prometheus.HistogramVec
	Answers       *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPErrors    *prometheus.CounterVec
}

var durationBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Updates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cratesbot_updates_total",
				Help: "Updates received, by kind",
			},
			[]string{"kind"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cratesbot_fetch_duration_seconds",
				Help:    "Registry fetch duration in seconds",
				Buckets: durationBuckets,
			},
			[]string{"mode", "result"},
		),
		FetchResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cratesbot_fetch_results",
				Help:    "Crates returned by successful registry fetches",
				Buckets: []float64{0, 1, 5, 10, 25, 50},
			},
			[]string{"mode"},
		),
		Answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cratesbot_answers_total",
				Help: "Replies sent to the platform, by kind and result",
			},
			[]string{"kind", "result"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cratesbot_http_request_duration_seconds",
				Help:    "Outbound HTTP request duration in seconds",
				Buckets: durationBuckets,
			},
			[]string{"host", "status"},
		),
		HTTPErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cratesbot_http_errors_total",
				Help: "Outbound HTTP requests that failed without a response",
			},
			[]string{"host"},
		),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnUpdate(_ context.Context, kind string) {
	m.Updates.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnFetch(_ context.Context, mode string, count int, d time.Duration, err error) {
	m.FetchDuration.WithLabelValues(mode, result(err)).Observe(d.Seconds())
	if err == nil {
		m.FetchResults.WithLabelValues(mode).Observe(float64(count))
	}
}

func (m *Metrics) OnAnswer(_ context.Context, kind string, _ int, _ time.Duration, err error) {
	m.Answers.WithLabelValues(kind, result(err)).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.HTTPDuration.WithLabelValues(host, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.HTTPErrors.WithLabelValues(host).Inc()
}
