//go:build !rocksdb
// +build !rocksdb

package db

import "fmt"

// NewRocksDB returns an error when rocksdb support is not compiled in
func NewRocksDB(directory string, columns ...string) (ColumnFamilyDB, error) {
	return nil, fmt.Errorf("RocksDB support not compiled in. Build with -tags rocksdb to enable RocksDB support")
}
