package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheet_gateway",
		Subsystem: "store",
		Name:      "calls_total",
		Help:      "Store adapter calls by operation, table and result.",
	}, []string{"op", "table", "result"})
	storeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sheet_gateway",
		Subsystem: "store",
		Name:      "call_duration_seconds",
		Help:      "Latency of store adapter calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
	validations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheet_gateway",
		Subsystem: "keys",
		Name:      "validations_total",
		Help:      "Key validations by outcome.",
	}, []string{"outcome"})
	batchRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheet_gateway",
		Subsystem: "records",
		Name:      "batch_rows_total",
		Help:      "Rows received in write batches, split by accepted and skipped.",
	}, []string{"result"})
	lockWait = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sheet_gateway",
		Subsystem: "lock",
		Name:      "wait_seconds",
		Help:      "Time spent waiting for table locks.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	})
)

func init() {
	prometheus.MustRegister(storeCalls, storeLatency, validations, batchRows, lockWait)
}

// ObserveStoreCall records the outcome and latency of one store adapter call.
func ObserveStoreCall(op, table string, err error, took time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeCalls.WithLabelValues(op, table, result).Inc()
	storeLatency.WithLabelValues(op).Observe(took.Seconds())
}

// RecordValidation counts a validation by outcome (valid, quota_blocked,
// key_blocked, user_blocked, not_found).
func RecordValidation(outcome string) {
	validations.WithLabelValues(outcome).Inc()
}

func RecordBatch(accepted, skipped int) {
	batchRows.WithLabelValues("accepted").Add(float64(accepted))
	batchRows.WithLabelValues("skipped").Add(float64(skipped))
}

func ObserveLockWait(took time.Duration) {
	lockWait.Observe(took.Seconds())
}
