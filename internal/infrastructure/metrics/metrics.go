package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus metrics.
type Metrics struct {
	OperationsApplied  *prometheus.CounterVec
	OperationsRejected *prometheus.CounterVec
	RecordsRejected    prometheus.Counter
	LinesSkipped       prometheus.Counter
}

// New creates the pipeline metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OperationsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payflow_operations_applied_total",
				Help: "Total operations applied to the ledger by type",
			},
			[]string{"operation"},
		),
		OperationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payflow_operations_rejected_total",
				Help: "Total operations rejected by the engine by reason",
			},
			[]string{"reason"},
		),
		RecordsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "payflow_records_rejected_total",
			Help: "Total input records rejected by the normalizer",
		}),
		LinesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "payflow_lines_skipped_total",
			Help: "Total malformed input lines dropped before normalization",
		}),
	}
}
