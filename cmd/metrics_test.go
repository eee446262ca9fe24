package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/syncstate/db"
	"github.com/mezonai/syncstate/store"
	"github.com/mezonai/syncstate/types"
)

func TestReadSyncState(t *testing.T) {
	handle, err := db.NewMemLevelDB()
	require.NoError(t, err)
	defer handle.Close()

	ms, err := store.NewMetaStore(handle)
	require.NoError(t, err)

	state, err := readSyncState(ms)
	require.NoError(t, err)
	assert.Nil(t, state.LatestBlock)

	require.NoError(t, ms.SetCurrentSyncBlock(9))
	require.NoError(t, ms.SetLatestBlockHashAndNumber(types.FeltFromUint64(5), 8))

	state, err = readSyncState(ms)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), state.CurrentSyncBlock)
	require.NotNil(t, state.LatestBlock)
	assert.Equal(t, uint64(8), state.LatestBlock.Number)

	assert.NotPanics(t, func() { refreshSyncStateMetrics(ms) })
}

func TestReadSyncStateCorruptLatest(t *testing.T) {
	handle, err := db.NewMemLevelDB()
	require.NoError(t, err)
	defer handle.Close()

	ms, err := store.NewMetaStore(handle)
	require.NoError(t, err)
	require.NoError(t, handle.PutCF(db.ColumnMeta, []byte(store.KeyLatestBlockHashAndNumber), []byte{1}))

	_, err = readSyncState(ms)
	assert.ErrorIs(t, err, store.ErrDecode)
}

func TestServeMetricsRejectsNonPositiveInterval(t *testing.T) {
	handle, err := db.NewMemLevelDB()
	require.NoError(t, err)
	defer handle.Close()

	ms, err := store.NewMetaStore(handle)
	require.NoError(t, err)

	for _, interval := range []time.Duration{0, -time.Second} {
		err := serveMetrics(context.Background(), ms, "127.0.0.1:0", interval)
		assert.ErrorContains(t, err, "--interval must be positive")
	}
}

func TestCLIServeMetricsZeroInterval(t *testing.T) {
	defer func() { metricsInterval = 5 * time.Second }()

	_, err := runCLI(t, t.TempDir(), "serve-metrics", "--interval", "0s")
	assert.ErrorContains(t, err, "--interval must be positive")
}
