package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "websettings"

// Upload results.
const (
	UploadSucceeded = "succeeded"
	UploadFailed    = "failed"
)

// Metrics groups the coordinator counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	documents      prometheus.Counter
	chunks         prometheus.Counter
	bytes          prometheus.Counter
	statics        *prometheus.CounterVec
	saves          prometheus.Counter
	snapshots      prometheus.Counter
	challenges     prometheus.Counter
	throttled      prometheus.Counter
	uploads        *prometheus.CounterVec
	generatorError prometheus.Counter
}

// New registers the collectors on reg. A nil reg uses a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		gatherer: reg,
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Settings documents started.",
		}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_chunks_total",
			Help:      "Non-empty document chunks written.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_bytes_total",
			Help:      "Document bytes written.",
		}),
		statics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "static_payloads_total",
			Help:      "Static payloads served, by path.",
		}, []string{"path"}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Accepted settings posts.",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Settings snapshot requests answered.",
		}),
		challenges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_challenges_total",
			Help:      "Authentication challenges issued.",
		}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_throttled_total",
			Help:      "Requests refused while authentication failures were throttled.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Firmware uploads, by result.",
		}, []string{"result"}),
		generatorError: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_errors_total",
			Help:      "Document generations aborted by an error.",
		}),
	}

	reg.MustRegister(
		m.documents,
		m.chunks,
		m.bytes,
		m.statics,
		m.saves,
		m.snapshots,
		m.challenges,
		m.throttled,
		m.uploads,
		m.generatorError,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) DocumentStarted() {
	if m != nil {
		m.documents.Inc()
	}
}

func (m *Metrics) ChunkWritten(n int) {
	if m != nil && n > 0 {
		m.chunks.Inc()
		m.bytes.Add(float64(n))
	}
}

func (m *Metrics) StaticServed(path string) {
	if m != nil {
		m.statics.WithLabelValues(path).Inc()
	}
}

func (m *Metrics) Saved() {
	if m != nil {
		m.saves.Inc()
	}
}

func (m *Metrics) SnapshotServed() {
	if m != nil {
		m.snapshots.Inc()
	}
}

func (m *Metrics) Challenged() {
	if m != nil {
		m.challenges.Inc()
	}
}

func (m *Metrics) Throttled() {
	if m != nil {
		m.throttled.Inc()
	}
}

func (m *Metrics) Upload(result string) {
	if m != nil {
		m.uploads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) GeneratorFailed() {
	if m != nil {
		m.generatorError.Inc()
	}
}
