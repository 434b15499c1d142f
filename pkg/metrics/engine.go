package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// EngineMetrics records generation, validation, and pricing activity.
type EngineMetrics struct {
	generationDuration *prometheus.HistogramVec
	generatedDrafts    *prometheus.CounterVec
	validations        *prometheus.CounterVec
	issues             *prometheus.CounterVec
	priceQuotes        *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "variation_generation_duration_seconds",
		Help:    "Duration of variation generation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	generatedDrafts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "variation_drafts_generated_total",
		Help: "Variation drafts produced by the generator.",
	}, []string{"kind"})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grade_validations_total",
		Help: "Validator executions by outcome.",
	}, []string{"validator", "outcome"})
	issues := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grade_validation_issues_total",
		Help: "Validation errors and warnings by code.",
	}, []string{"validator", "severity", "code"})
	priceQuotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_quotes_total",
		Help: "Price quotes by price model and resolved tier slot.",
	}, []string{"price_model", "tier"})
	reg.MustRegister(generationDuration, generatedDrafts, validations, issues, priceQuotes)
	return &EngineMetrics{
		generationDuration: generationDuration,
		generatedDrafts:    generatedDrafts,
		validations:        validations,
		issues:             issues,
		priceQuotes:        priceQuotes,
	}
}

// ObserveGeneration records one generator run.
func (m *EngineMetrics) ObserveGeneration(kind string, duration time.Duration, drafts int) {
	if m == nil || m.generationDuration == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.generationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	m.generatedDrafts.WithLabelValues(kind).Add(float64(drafts))
}

// ObserveValidation records a validator outcome.
func (m *EngineMetrics) ObserveValidation(validator string, valid bool) {
	if m == nil || m.validations == nil {
		return
	}
	outcome := OutcomeInvalid
	if valid {
		outcome = OutcomeValid
	}
	m.validations.WithLabelValues(normalizeLabel(validator), outcome).Inc()
}

// IncIssue counts a single error or warning emitted by a validator.
func (m *EngineMetrics) IncIssue(validator, severity, code string) {
	if m == nil || m.issues == nil {
		return
	}
	m.issues.WithLabelValues(normalizeLabel(validator), normalizeLabel(severity), normalizeLabel(code)).Inc()
}

// IncPriceQuote counts a resolved price quote. A negative slot means no tier applied.
func (m *EngineMetrics) IncPriceQuote(priceModel string, slot int) {
	if m == nil || m.priceQuotes == nil {
		return
	}
	tier := "none"
	if slot >= 0 {
		tier = strconv.Itoa(slot + 1)
	}
	m.priceQuotes.WithLabelValues(normalizeLabel(priceModel), tier).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
