package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

const namespace = "slidemaker"

// Pipeline records extraction, synthesis and export outcomes. It also
// observes retries and breaker transitions of the resilience executor.
type Pipeline struct {
	service string

	extractionsTotal   *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	synthesisTotal     *prometheus.CounterVec
	synthesisDuration  *prometheus.HistogramVec
	candidateRepairs   *prometheus.CounterVec
	decksTotal         *prometheus.CounterVec
	deckSlides         *prometheus.HistogramVec
	exportsTotal       *prometheus.CounterVec
	exportBytes        *prometheus.HistogramVec
	retriesTotal       *prometheus.CounterVec
	breakerTransitions *prometheus.CounterVec
}

func newPipeline(service string, registerer prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		service: service,
		extractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extraction",
			Name:      "total",
			Help:      "Document extractions by format and status.",
		}, []string{"service", "format", "status"}),
		extractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "extraction",
			Name:      "duration_seconds",
			Help:      "Document extraction duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "format"}),
		synthesisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "synthesis",
			Name:      "total",
			Help:      "Synthesis calls by status.",
		}, []string{"service", "status"}),
		synthesisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "synthesis",
			Name:      "duration_seconds",
			Help:      "Synthesis call duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"service"}),
		candidateRepairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "candidate",
			Name:      "repairs_total",
			Help:      "Repairs applied to synthesized slide candidates by field.",
		}, []string{"service", "field"}),
		decksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deck",
			Name:      "generated_total",
			Help:      "Generated decks.",
		}, []string{"service"}),
		deckSlides: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "deck",
			Name:      "slides",
			Help:      "Slides per generated deck.",
			Buckets:   []float64{1, 3, 5, 10, 20, 50, 100},
		}, []string{"service"}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "total",
			Help:      "Presentation exports by status.",
		}, []string{"service", "status"}),
		exportBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "bytes",
			Help:      "Size of encoded presentations.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 2, 10),
		}, []string{"service"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "retries_total",
			Help:      "Retried calls to external services by operation.",
		}, []string{"service", "operation"}),
		breakerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions by operation.",
		}, []string{"service", "operation", "to"}),
	}

	registerer.MustRegister(
		p.extractionsTotal,
		p.extractionDuration,
		p.synthesisTotal,
		p.synthesisDuration,
		p.candidateRepairs,
		p.decksTotal,
		p.deckSlides,
		p.exportsTotal,
		p.exportBytes,
		p.retriesTotal,
		p.breakerTransitions,
	)
	return p
}

func (p *Pipeline) ObserveExtraction(format domain.Format, duration time.Duration, err error) {
	label := string(format)
	if label == "" {
		label = "unknown"
	}
	p.extractionsTotal.WithLabelValues(p.service, label, statusOf(err)).Inc()
	p.extractionDuration.WithLabelValues(p.service, label).Observe(duration.Seconds())
}

func (p *Pipeline) ObserveSynthesis(duration time.Duration, err error) {
	p.synthesisTotal.WithLabelValues(p.service, statusOf(err)).Inc()
	p.synthesisDuration.WithLabelValues(p.service).Observe(duration.Seconds())
}

func (p *Pipeline) ObserveDeck(slides int) {
	p.decksTotal.WithLabelValues(p.service).Inc()
	p.deckSlides.WithLabelValues(p.service).Observe(float64(slides))
}

func (p *Pipeline) ObserveExport(size int, err error) {
	p.exportsTotal.WithLabelValues(p.service, statusOf(err)).Inc()
	if err == nil {
		p.exportBytes.WithLabelValues(p.service).Observe(float64(size))
	}
}

// RecordCandidateRepairs counts repaired fields. Non-object elements and
// dropped bullets are reported under their own pseudo-fields.
func (p *Pipeline) RecordCandidateRepairs(fields map[string]int, nonObjects, droppedBullets int) {
	for field, n := range fields {
		if n > 0 {
			p.candidateRepairs.WithLabelValues(p.service, field).Add(float64(n))
		}
	}
	if nonObjects > 0 {
		p.candidateRepairs.WithLabelValues(p.service, "non_object").Add(float64(nonObjects))
	}
	if droppedBullets > 0 {
		p.candidateRepairs.WithLabelValues(p.service, "dropped_bullet").Add(float64(droppedBullets))
	}
}

func (p *Pipeline) OnRetry(operation string, _ int) {
	p.retriesTotal.WithLabelValues(p.service, operation).Inc()
}

func (p *Pipeline) OnStateChange(operation string, _ string, to string) {
	p.breakerTransitions.WithLabelValues(p.service, operation, to).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
