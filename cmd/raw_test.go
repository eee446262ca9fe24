package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/syncstate/db"
	"github.com/mezonai/syncstate/jsonx"
	"github.com/mezonai/syncstate/store"
)

func putRawMeta(t *testing.T, dir, key string, value []byte) {
	t.Helper()
	handle, err := store.OpenDatabase(&store.StoreConfig{Type: store.BoltStoreType, Directory: dir})
	require.NoError(t, err)
	require.NoError(t, handle.PutCF(db.ColumnMeta, []byte(key), value))
	require.NoError(t, handle.Close())
}

func TestCLIRawRepairsCorruptValue(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "latest", "set", "0x3", "100")
	require.NoError(t, err)
	putRawMeta(t, dir, store.KeyCurrentSyncBlock, []byte{})

	_, err = runCLI(t, dir, "sync-block", "get")
	require.ErrorIs(t, err, store.ErrFormat)

	out, err := runCLI(t, dir, "raw", "get", store.KeyCurrentSyncBlock, "missing")
	require.NoError(t, err)
	var entries []rawEntry
	require.NoError(t, jsonx.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, rawEntry{Key: store.KeyCurrentSyncBlock, Value: "0x", Size: 0}, entries[0])

	out, err = runCLI(t, dir, "raw", "delete", store.KeyCurrentSyncBlock, "missing")
	require.NoError(t, err)
	var deleted []string
	require.NoError(t, jsonx.Unmarshal([]byte(out), &deleted))
	assert.Equal(t, []string{store.KeyCurrentSyncBlock}, deleted)

	out, err = runCLI(t, dir, "sync-block", "get")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))

	out, err = runCLI(t, dir, "raw", "list")
	require.NoError(t, err)
	entries = nil
	require.NoError(t, jsonx.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, store.KeyLatestBlockHashAndNumber, entries[0].Key)
	assert.Equal(t, 40, entries[0].Size)
}

func TestCLIRawDeleteNothing(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "raw", "delete", "missing")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}
