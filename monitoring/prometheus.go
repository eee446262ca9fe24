package monitoring

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mezonai/syncstate/logx"
)

type OpResult string

var (
	OpSuccess        OpResult = "success"
	OpNotInitialized OpResult = "not_initialized"
	OpDecodeError    OpResult = "decode_error"
	OpFormatError    OpResult = "format_error"
	OpDatabaseError  OpResult = "database_error"
)

type syncPromMetrics struct {
	upUnixSeconds     prometheus.Gauge
	syncBlockHeight   prometheus.Gauge
	syncingTipCount   prometheus.Gauge
	latestBlockNumber prometheus.Gauge
	metaStoreOps      *prometheus.CounterVec
	panicCount        prometheus.Counter
}

func newSyncPromMetrics(reg prometheus.Registerer) *syncPromMetrics {
	factory := promauto.With(reg)
	return &syncPromMetrics{
		upUnixSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "syncstate_up_timestamp_unix_seconds",
				Help: "Unix timestamp at which metrics were initialized",
			},
		),
		syncBlockHeight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "syncstate_sync_block_height",
				Help: "Height up to which historical sync has progressed",
			},
		),
		syncingTipCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "syncstate_syncing_tips",
				Help: "Number of chain tips currently being synced",
			},
		),
		latestBlockNumber: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "syncstate_latest_block_number",
				Help: "Height of the latest canonical block",
			},
		),
		metaStoreOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "syncstate_meta_store_operations_total",
				Help: "Meta store reads and writes by operation and result",
			},
			[]string{"op", "result"},
		),
		panicCount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "syncstate_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var (
	metricsOnce sync.Once
	metrics     atomic.Pointer[syncPromMetrics]
)

// InitMetrics registers metrics on the default registry. Safe to call more than once,
// and concurrently with the recorders.
func InitMetrics() {
	metricsOnce.Do(func() {
		m := newSyncPromMetrics(prometheus.DefaultRegisterer)
		m.upUnixSeconds.SetToCurrentTime()
		metrics.Store(m)
	})
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("METRICS", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

// The recorders below are no-ops until InitMetrics has been called.

func SetSyncBlockHeight(height uint64) {
	m := metrics.Load()
	if m == nil {
		return
	}
	m.syncBlockHeight.Set(float64(height))
}

func SetSyncingTipCount(count int) {
	m := metrics.Load()
	if m == nil {
		return
	}
	m.syncingTipCount.Set(float64(count))
}

func SetLatestBlockNumber(number uint64) {
	m := metrics.Load()
	if m == nil {
		return
	}
	m.latestBlockNumber.Set(float64(number))
}

func RecordMetaStoreOp(op string, result OpResult) {
	m := metrics.Load()
	if m == nil {
		return
	}
	m.metaStoreOps.With(prometheus.Labels{
		"op":     op,
		"result": string(result),
	}).Inc()
}

func IncreasePanicCount() {
	m := metrics.Load()
	if m == nil {
		return
	}
	m.panicCount.Inc()
}
