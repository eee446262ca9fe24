package db

import (
	"sync"
)

// PrefixColumnDB emulates column families on a flat key space by prefixing
// every key with "<column>/". It is used for backends without native columns.
type PrefixColumnDB struct {
	once    sync.Once
	base    IterableProvider
	columns columnSet
}

// NewPrefixColumnDB takes ownership of base. With no columns given, AllColumns are opened.
func NewPrefixColumnDB(base IterableProvider, columns ...string) *PrefixColumnDB {
	set := make(columnSet)
	for _, name := range withDefaultColumns(columns) {
		set[name] = &prefixProvider{base: base, prefix: []byte(name + "/")}
	}
	return &PrefixColumnDB{base: base, columns: set}
}

func (d *PrefixColumnDB) Column(name string) (IterableProvider, error) {
	return d.columns.column(name)
}

func (d *PrefixColumnDB) GetCF(column string, key []byte) ([]byte, error) {
	return d.columns.getCF(column, key)
}

func (d *PrefixColumnDB) PutCF(column string, key, value []byte) error {
	return d.columns.putCF(column, key, value)
}

// Close closes the underlying provider once
func (d *PrefixColumnDB) Close() error {
	var err error
	d.once.Do(func() {
		err = d.base.Close()
	})
	return err
}

type prefixProvider struct {
	base   IterableProvider
	prefix []byte
}

func (p *prefixProvider) key(key []byte) []byte {
	out := make([]byte, len(p.prefix)+len(key))
	copy(out, p.prefix)
	copy(out[len(p.prefix):], key)
	return out
}

func (p *prefixProvider) Get(key []byte) ([]byte, error) {
	return p.base.Get(p.key(key))
}

func (p *prefixProvider) GetBatch(keys [][]byte) (map[string][]byte, error) {
	prefixed := make([][]byte, len(keys))
	for i, k := range keys {
		prefixed[i] = p.key(k)
	}
	values, err := p.base.GetBatch(prefixed)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(values))
	for k, v := range values {
		result[k[len(p.prefix):]] = v
	}
	return result, nil
}

func (p *prefixProvider) Put(key, value []byte) error {
	return p.base.Put(p.key(key), value)
}

func (p *prefixProvider) Delete(key []byte) error {
	return p.base.Delete(p.key(key))
}

func (p *prefixProvider) Has(key []byte) (bool, error) {
	return p.base.Has(p.key(key))
}

// Close is a no-op, the shared handle is closed through PrefixColumnDB
func (p *prefixProvider) Close() error {
	return nil
}

func (p *prefixProvider) Batch() DatabaseBatch {
	return &prefixBatch{batch: p.base.Batch(), provider: p}
}

func (p *prefixProvider) IteratePrefix(prefix []byte, callback func(key, value []byte) bool) error {
	return p.base.IteratePrefix(p.key(prefix), func(key, value []byte) bool {
		return callback(key[len(p.prefix):], value)
	})
}

type prefixBatch struct {
	batch    DatabaseBatch
	provider *prefixProvider
}

func (b *prefixBatch) Put(key, value []byte) {
	b.batch.Put(b.provider.key(key), value)
}

func (b *prefixBatch) Delete(key []byte) {
	b.batch.Delete(b.provider.key(key))
}

func (b *prefixBatch) Write() error {
	return b.batch.Write()
}

func (b *prefixBatch) Reset() {
	b.batch.Reset()
}

func (b *prefixBatch) Close() error {
	return b.batch.Close()
}
