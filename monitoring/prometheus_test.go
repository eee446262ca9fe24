package monitoring

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func swapMetrics(t *testing.T, m *syncPromMetrics) {
	t.Helper()
	saved := metrics.Swap(m)
	t.Cleanup(func() { metrics.Store(saved) })
}

func TestRecordersBeforeInitAreNoops(t *testing.T) {
	swapMetrics(t, nil)

	assert.NotPanics(t, func() {
		SetSyncBlockHeight(1)
		SetSyncingTipCount(2)
		SetLatestBlockNumber(3)
		RecordMetaStoreOp("current_sync_block", OpSuccess)
		IncreasePanicCount()
	})
}

func TestRecorders(t *testing.T) {
	m := newSyncPromMetrics(prometheus.NewRegistry())
	swapMetrics(t, m)

	SetSyncBlockHeight(42)
	SetSyncingTipCount(2)
	SetLatestBlockNumber(100)
	RecordMetaStoreOp("latest_block_hash_and_number", OpNotInitialized)
	RecordMetaStoreOp("latest_block_hash_and_number", OpNotInitialized)
	IncreasePanicCount()

	assert.Equal(t, float64(42), testutil.ToFloat64(m.syncBlockHeight))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.syncingTipCount))
	assert.Equal(t, float64(100), testutil.ToFloat64(m.latestBlockNumber))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.metaStoreOps.WithLabelValues("latest_block_hash_and_number", string(OpNotInitialized))))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.panicCount))
}

func TestInitMetricsTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		InitMetrics()
		InitMetrics()
	})
	assert.NotNil(t, metrics.Load())
}

func TestInitMetricsWhileRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetSyncBlockHeight(uint64(j))
				SetSyncingTipCount(i)
				RecordMetaStoreOp("current_sync_block", OpSuccess)
			}
		}(i)
	}

	InitMetrics()
	wg.Wait()

	assert.NotNil(t, metrics.Load())
}
