// file: internals/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter domain evaluasi, di-expose lewat GET /metrics.
var (
	AssessmentsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jurnalku",
		Name:      "assessments_submitted_total",
		Help:      "Assessments moved from draft to submitted.",
	})

	AssessmentsReviewed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jurnalku",
		Name:      "assessments_reviewed_total",
		Help:      "Assessments moved from submitted to reviewed.",
	})

	TemplatesCloned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jurnalku",
		Name:      "templates_cloned_total",
		Help:      "Deep copies of evaluation templates.",
	})

	LegacyIndicatorsMigrated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jurnalku",
		Name:      "legacy_indicators_migrated_total",
		Help:      "Legacy indicators processed by the migrator, by outcome.",
	}, []string{"outcome"})

	DeletesBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jurnalku",
		Name:      "hierarchy_deletes_blocked_total",
		Help:      "Delete/deactivate attempts rejected by the integrity guard.",
	}, []string{"entity"})
)
