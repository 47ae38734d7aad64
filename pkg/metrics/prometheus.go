package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportsTotal  *prometheus.CounterVec
	modelFailures *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	signalScore   *prometheus.GaugeVec
	ensembleConf  *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_reports_generated_total",
				Help: "Total number of reports generated",
			},
			[]string{"symbol", "signal"},
		),
		modelFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_model_failures_total",
				Help: "Total number of analysis model failures",
			},
			[]string{"model"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		signalScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_signal_confidence",
				Help: "Confidence of the last signal generated for a symbol",
			},
			[]string{"symbol"},
		),
		ensembleConf: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_ensemble_confidence",
				Help: "Ensemble confidence of the last report for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordReport records one generated report.
func (r *Recorder) RecordReport(symbol, signal string) {
	r.reportsTotal.WithLabelValues(symbol, signal).Inc()
}

// RecordModelFailure records an analysis model failure.
func (r *Recorder) RecordModelFailure(model string) {
	r.modelFailures.WithLabelValues(model).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSignalConfidence records the last signal confidence for a symbol.
func (r *Recorder) RecordSignalConfidence(symbol string, confidence float64) {
	r.signalScore.WithLabelValues(symbol).Set(confidence)
}

// RecordEnsembleConfidence records the last ensemble confidence for a symbol.
func (r *Recorder) RecordEnsembleConfidence(symbol string, confidence float64) {
	r.ensembleConf.WithLabelValues(symbol).Set(confidence)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
