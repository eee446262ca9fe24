package db

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltDB is a ColumnFamilyDB on bbolt, one bucket per column
type BoltDB struct {
	once    sync.Once
	db      *bolt.DB
	columns columnSet
}

// NewBoltDB opens (or creates) the bbolt file at path and creates a bucket for every column
func NewBoltDB(path string, columns ...string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt at %s: %w", path, err)
	}

	names := withDefaultColumns(columns)
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	set := make(columnSet, len(names))
	for _, name := range names {
		set[name] = &BoltBucketProvider{db: db, bucket: []byte(name)}
	}

	return &BoltDB{db: db, columns: set}, nil
}

func (b *BoltDB) Column(name string) (IterableProvider, error) {
	return b.columns.column(name)
}

func (b *BoltDB) GetCF(column string, key []byte) ([]byte, error) {
	return b.columns.getCF(column, key)
}

func (b *BoltDB) PutCF(column string, key, value []byte) error {
	return b.columns.putCF(column, key, value)
}

// Close closes the database file once
func (b *BoltDB) Close() error {
	var err error
	b.once.Do(func() {
		err = b.db.Close()
	})
	return err
}

// BoltBucketProvider implements IterableProvider over a single bbolt bucket
type BoltBucketProvider struct {
	db     *bolt.DB
	bucket []byte
}

// Get retrieves a value by key. bbolt values are only valid inside the transaction, so they are copied.
func (p *BoltBucketProvider) Get(key []byte) ([]byte, error) {
	var value []byte
	err := p.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(p.bucket).Get(key); v != nil {
			value = bytes.Clone(v)
		}
		return nil
	})
	return value, err
}

func (p *BoltBucketProvider) GetBatch(keys [][]byte) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(p.bucket)
		for _, key := range keys {
			if v := b.Get(key); v != nil {
				result[string(key)] = bytes.Clone(v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *BoltBucketProvider) Put(key, value []byte) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Put(key, value)
	})
}

func (p *BoltBucketProvider) Delete(key []byte) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Delete(key)
	})
}

func (p *BoltBucketProvider) Has(key []byte) (bool, error) {
	var found bool
	err := p.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(p.bucket).Get(key) != nil
		return nil
	})
	return found, err
}

// Close is a no-op, the file is closed through BoltDB
func (p *BoltBucketProvider) Close() error {
	return nil
}

func (p *BoltBucketProvider) Batch() DatabaseBatch {
	return &BoltBatch{provider: p}
}

func (p *BoltBucketProvider) IteratePrefix(prefix []byte, callback func(key, value []byte) bool) error {
	return p.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(p.bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if !callback(bytes.Clone(k), bytes.Clone(v)) {
				break
			}
		}
		return nil
	})
}

type boltOp struct {
	key    []byte
	value  []byte
	delete bool
}

// BoltBatch buffers operations and applies them in one read-write transaction
type BoltBatch struct {
	provider *BoltBucketProvider
	ops      []boltOp
}

func (b *BoltBatch) Put(key, value []byte) {
	b.ops = append(b.ops, boltOp{key: bytes.Clone(key), value: bytes.Clone(value)})
}

func (b *BoltBatch) Delete(key []byte) {
	b.ops = append(b.ops, boltOp{key: bytes.Clone(key), delete: true})
}

func (b *BoltBatch) Write() error {
	return b.provider.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.provider.bucket)
		for _, op := range b.ops {
			var err error
			if op.delete {
				err = bucket.Delete(op.key)
			} else {
				err = bucket.Put(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BoltBatch) Reset() {
	b.ops = b.ops[:0]
}

func (b *BoltBatch) Close() error {
	b.ops = nil
	return nil
}
