package store

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/syncstate/db"
	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/monitoring"
	"github.com/mezonai/syncstate/types"
)

// MetaStore persists the sync state of the node in the meta column.
// In case of forks there can be several syncing tips.
//
// Each call reads or overwrites a single key. Nothing is atomic across keys:
// a concurrent reader may see a new sync block with an old latest block.
// Monotonicity of the sync block and validity of tips are the caller's job.
type MetaStore interface {
	CurrentSyncingTips() ([]types.Hash, error)
	WriteCurrentSyncingTips(tips []types.Hash) error
	CurrentSyncBlock() (uint64, error)
	SetCurrentSyncBlock(syncBlock uint64) error
	LatestBlockHashAndNumber() (types.Felt, uint64, error)
	SetLatestBlockHashAndNumber(hash types.Felt, number uint64) error
}

// GenericMetaStore implements MetaStore on a shared ColumnFamilyDB.
// It borrows the handle and never closes it.
type GenericMetaStore struct {
	db db.ColumnFamilyDB
}

// NewMetaStore creates a meta store on cfdb, which must have the meta column
func NewMetaStore(cfdb db.ColumnFamilyDB) (*GenericMetaStore, error) {
	if cfdb == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if _, err := cfdb.Column(db.ColumnMeta); err != nil {
		return nil, fmt.Errorf("failed to open meta column: %w", err)
	}

	return &GenericMetaStore{db: cfdb}, nil
}

// CurrentSyncingTips returns the tips of the synced chain, empty if never written.
// A stored value with bytes after the last hash is rejected as a decode error
// rather than ignored.
func (s *GenericMetaStore) CurrentSyncingTips() ([]types.Hash, error) {
	const op = "current_syncing_tips"

	raw, err := s.db.GetCF(db.ColumnMeta, []byte(KeyCurrentSyncingTips))
	if err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return nil, err
	}
	if raw == nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
		return []types.Hash{}, nil
	}

	tips, err := decodeHashes(raw)
	if err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDecodeError)
		return nil, &DecodeError{Key: KeyCurrentSyncingTips, Err: err}
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	return tips, nil
}

// WriteCurrentSyncingTips overwrites the tips of the synced chain.
// Order is kept as given, no sorting or deduplication is done.
func (s *GenericMetaStore) WriteCurrentSyncingTips(tips []types.Hash) error {
	const op = "write_current_syncing_tips"

	raw, err := encodeHashes(tips)
	if err != nil {
		return fmt.Errorf("failed to encode syncing tips: %w", err)
	}
	if err := s.db.PutCF(db.ColumnMeta, []byte(KeyCurrentSyncingTips), raw); err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return err
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	monitoring.SetSyncingTipCount(len(tips))
	return nil
}

// CurrentSyncBlock returns the height historical sync has reached, 0 if never written
func (s *GenericMetaStore) CurrentSyncBlock() (uint64, error) {
	const op = "current_sync_block"

	raw, err := s.db.GetCF(db.ColumnMeta, []byte(KeyCurrentSyncBlock))
	if err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return 0, err
	}
	logx.Debug("META_STORE", "current_sync_block raw: ", raw)

	if raw == nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
		return 0, nil
	}
	if len(raw) != 8 {
		monitoring.RecordMetaStoreOp(op, monitoring.OpFormatError)
		return 0, &FormatError{Key: KeyCurrentSyncBlock, Msg: "current sync block should be a u64"}
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	return binary.BigEndian.Uint64(raw), nil
}

// SetCurrentSyncBlock overwrites the sync height with its 8-byte big-endian encoding
func (s *GenericMetaStore) SetCurrentSyncBlock(syncBlock uint64) error {
	const op = "set_current_sync_block"

	logx.Debug("META_STORE", "set_current_sync_block ", syncBlock)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, syncBlock)
	if err := s.db.PutCF(db.ColumnMeta, []byte(KeyCurrentSyncBlock), raw); err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return err
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	monitoring.SetSyncBlockHeight(syncBlock)
	return nil
}

// LatestBlockHashAndNumber returns the latest canonical block.
// Unlike the other fields there is no default: a missing value yields *ValueNotInitializedError.
// The stored value must be exactly 40 bytes; trailing bytes are a decode error, not ignored.
func (s *GenericMetaStore) LatestBlockHashAndNumber() (types.Felt, uint64, error) {
	const op = "latest_block_hash_and_number"

	raw, err := s.db.GetCF(db.ColumnMeta, []byte(KeyLatestBlockHashAndNumber))
	if err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return types.Felt{}, 0, err
	}
	if raw == nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpNotInitialized)
		return types.Felt{}, 0, &ValueNotInitializedError{Column: db.ColumnMeta, Key: KeyLatestBlockHashAndNumber}
	}

	hash, number, err := decodeLatestBlockHashAndNumber(raw)
	if err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDecodeError)
		return types.Felt{}, 0, &DecodeError{Key: KeyLatestBlockHashAndNumber, Err: err}
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	return hash, number, nil
}

// SetLatestBlockHashAndNumber overwrites the latest canonical block. The hash is stored in Montgomery form.
func (s *GenericMetaStore) SetLatestBlockHashAndNumber(hash types.Felt, number uint64) error {
	const op = "set_latest_block_hash_and_number"

	raw, err := encodeLatestBlockHashAndNumber(hash, number)
	if err != nil {
		return fmt.Errorf("failed to encode latest block hash and number: %w", err)
	}
	if err := s.db.PutCF(db.ColumnMeta, []byte(KeyLatestBlockHashAndNumber), raw); err != nil {
		monitoring.RecordMetaStoreOp(op, monitoring.OpDatabaseError)
		return err
	}

	monitoring.RecordMetaStoreOp(op, monitoring.OpSuccess)
	monitoring.SetLatestBlockNumber(number)
	return nil
}
