package measurements

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters about a generation run.
type Metrics struct {
	rowsGenerated  prometheus.Counter
	bytesWritten   prometheus.Counter
	batchesFlushed prometheus.Counter
	flushDuration  prometheus.Histogram
}

// NewMetrics creates run metrics and registers them with reg.
// reg can be nil, in which case nothing is registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "measurements_rows_generated_total",
			Help: "Total number of measurement lines generated.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "measurements_bytes_written_total",
			Help: "Total number of bytes written to the output file.",
		}),
		batchesFlushed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "measurements_batches_flushed_total",
			Help: "Total number of batches flushed to the output file.",
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "measurements_batch_flush_duration_seconds",
			Help:    "Time taken to write one batch to the output file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.rowsGenerated,
			m.bytesWritten,
			m.batchesFlushed,
			m.flushDuration,
		)
	}

	return m
}
