//go:build rocksdb
// +build rocksdb

package db

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/linxGnu/grocksdb"
)

// RocksDB is a ColumnFamilyDB backed by native RocksDB column families
type RocksDB struct {
	once         sync.Once
	DB           *grocksdb.DB
	CfHandlesMap map[string]*grocksdb.ColumnFamilyHandle
	ro           *grocksdb.ReadOptions
	wo           *grocksdb.WriteOptions
	columns      columnSet
}

// NewRocksDB opens RocksDB in directory with one column family per column.
// The RocksDB "default" family always exists and is opened first.
func NewRocksDB(directory string, columns ...string) (ColumnFamilyDB, error) {
	if directory == "" {
		return nil, errors.New("directory path cannot be empty")
	}

	opts := grocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCreateIfMissingColumnFamilies(true)

	cfNames := []string{ColumnDefault}
	for _, name := range withDefaultColumns(columns) {
		if name != ColumnDefault {
			cfNames = append(cfNames, name)
		}
	}
	cfOpts := make([]*grocksdb.Options, len(cfNames))
	for i := range cfOpts {
		cfOpts[i] = opts
	}

	db, cfHandles, err := grocksdb.OpenDbColumnFamilies(opts, filepath.Clean(directory), cfNames, cfOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open RocksDB at %s: %w", directory, err)
	}

	r := &RocksDB{
		DB:           db,
		CfHandlesMap: make(map[string]*grocksdb.ColumnFamilyHandle, len(cfNames)),
		ro:           grocksdb.NewDefaultReadOptions(),
		wo:           grocksdb.NewDefaultWriteOptions(),
		columns:      make(columnSet, len(cfNames)),
	}
	for i, name := range cfNames {
		r.CfHandlesMap[name] = cfHandles[i]
		r.columns[name] = &RocksDBColumnProvider{db: r, cf: cfHandles[i]}
	}

	return r, nil
}

func (r *RocksDB) Column(name string) (IterableProvider, error) {
	return r.columns.column(name)
}

func (r *RocksDB) GetCF(column string, key []byte) ([]byte, error) {
	return r.columns.getCF(column, key)
}

func (r *RocksDB) PutCF(column string, key, value []byte) error {
	return r.columns.putCF(column, key, value)
}

// Close destroys the column family handles and closes the database once
func (r *RocksDB) Close() error {
	r.once.Do(func() {
		for name, handle := range r.CfHandlesMap {
			if handle != nil {
				handle.Destroy()
				delete(r.CfHandlesMap, name)
			}
		}
		r.ro.Destroy()
		r.wo.Destroy()
		r.DB.Close()
	})
	return nil
}

// RocksDBColumnProvider implements IterableProvider for one column family
type RocksDBColumnProvider struct {
	db *RocksDB
	cf *grocksdb.ColumnFamilyHandle
}

// Get retrieves a value by key
func (p *RocksDBColumnProvider) Get(key []byte) ([]byte, error) {
	value, err := p.db.DB.GetCF(p.db.ro, p.cf, key)
	if err != nil {
		return nil, err
	}
	defer value.Free()

	if !value.Exists() {
		return nil, nil
	}

	// Copy the data since we're freeing the slice
	data := bytes.Clone(value.Data())
	if data == nil {
		return []byte{}, nil
	}
	return data, nil
}

func (p *RocksDBColumnProvider) GetBatch(keys [][]byte) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, err := p.Get(key)
		if err != nil {
			return nil, err
		}
		if value != nil {
			result[string(key)] = value
		}
	}
	return result, nil
}

// Put stores a key-value pair
func (p *RocksDBColumnProvider) Put(key, value []byte) error {
	return p.db.DB.PutCF(p.db.wo, p.cf, key, value)
}

// Delete removes a key-value pair
func (p *RocksDBColumnProvider) Delete(key []byte) error {
	return p.db.DB.DeleteCF(p.db.wo, p.cf, key)
}

// Has checks if a key exists
func (p *RocksDBColumnProvider) Has(key []byte) (bool, error) {
	value, err := p.db.DB.GetCF(p.db.ro, p.cf, key)
	if err != nil {
		return false, err
	}
	defer value.Free()

	return value.Exists(), nil
}

// Close is a no-op, the database is closed through RocksDB
func (p *RocksDBColumnProvider) Close() error {
	return nil
}

// Batch creates a new batch for atomic operations
func (p *RocksDBColumnProvider) Batch() DatabaseBatch {
	return &RocksDBBatch{
		batch:    grocksdb.NewWriteBatch(),
		provider: p,
	}
}

// IteratePrefix implements IterableProvider for RocksDB
func (p *RocksDBColumnProvider) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	it := p.db.DB.NewIteratorCF(p.db.ro, p.cf)
	defer it.Close()

	for it.Seek(prefix); it.Valid(); it.Next() {
		k := it.Key()
		v := it.Value()
		if !bytes.HasPrefix(k.Data(), prefix) {
			k.Free()
			v.Free()
			break
		}
		kdata := bytes.Clone(k.Data())
		vdata := bytes.Clone(v.Data())
		k.Free()
		v.Free()
		if !fn(kdata, vdata) {
			break
		}
	}
	return it.Err()
}

// RocksDBBatch implements DatabaseBatch for RocksDB
type RocksDBBatch struct {
	batch    *grocksdb.WriteBatch
	provider *RocksDBColumnProvider
}

// Put adds a key-value pair to the batch
func (b *RocksDBBatch) Put(key, value []byte) {
	b.batch.PutCF(b.provider.cf, key, value)
}

// Delete adds a deletion to the batch
func (b *RocksDBBatch) Delete(key []byte) {
	b.batch.DeleteCF(b.provider.cf, key)
}

// Write commits all operations in the batch
func (b *RocksDBBatch) Write() error {
	return b.provider.db.DB.Write(b.provider.db.wo, b.batch)
}

// Reset clears the batch
func (b *RocksDBBatch) Reset() {
	b.batch.Clear()
}

// Close releases batch resources
func (b *RocksDBBatch) Close() error {
	b.batch.Destroy()
	return nil
}
