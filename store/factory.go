package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mezonai/syncstate/db"
)

// StoreType represents the database backend
type StoreType string

const (
	// LevelDBStoreType uses the LevelDB implementation
	LevelDBStoreType StoreType = "leveldb"

	// RocksDBStoreType uses the RocksDB implementation, needs the rocksdb build tag
	RocksDBStoreType StoreType = "rocksdb"

	// BoltStoreType uses a single bbolt file with one bucket per column
	BoltStoreType StoreType = "bbolt"

	// RedisStoreType uses the Redis implementation
	RedisStoreType StoreType = "redis"

	// MemoryStoreType keeps everything in memory, for tests and dry runs
	MemoryStoreType StoreType = "memory"
)

const boltFileName = "syncstate.db"

// StoreConfig holds configuration for opening the shared database
type StoreConfig struct {
	// Type specifies which store implementation to use
	Type StoreType `json:"type" yaml:"type"`

	// Directory is the database directory path (for file-based databases)
	Directory string `json:"directory" yaml:"directory"`

	// RedisAddr and RedisDB are only used by the redis backend
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `json:"redis_db" yaml:"redis_db"`
}

// Validate validates the store configuration
func (sc *StoreConfig) Validate() error {
	switch sc.Type {
	case "":
		return fmt.Errorf("store type cannot be empty")
	case LevelDBStoreType, RocksDBStoreType, BoltStoreType:
		if sc.Directory == "" {
			return fmt.Errorf("directory cannot be empty for %s", sc.Type)
		}
		return nil
	case RedisStoreType:
		if sc.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty")
		}
		return nil
	case MemoryStoreType:
		return nil
	default:
		return fmt.Errorf("unsupported store type: %s", sc.Type)
	}
}

// OpenDatabase opens the shared column-family database described by config.
// The caller owns the returned handle and must close it.
func OpenDatabase(config *StoreConfig) (db.ColumnFamilyDB, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch config.Type {
	case LevelDBStoreType:
		return db.NewLevelDB(config.Directory)

	case RocksDBStoreType:
		return db.NewRocksDB(config.Directory)

	case BoltStoreType:
		if err := os.MkdirAll(config.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", config.Directory, err)
		}
		return db.NewBoltDB(filepath.Join(config.Directory, boltFileName))

	case RedisStoreType:
		return db.NewRedisDB(config.RedisAddr, config.RedisDB)

	case MemoryStoreType:
		return db.NewMemLevelDB()

	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// OpenMetaStore opens the database and a meta store on it.
// Closing the returned handle is the caller's responsibility.
func OpenMetaStore(config *StoreConfig) (db.ColumnFamilyDB, *GenericMetaStore, error) {
	handle, err := OpenDatabase(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	metaStore, err := NewMetaStore(handle)
	if err != nil {
		_ = handle.Close()
		return nil, nil, fmt.Errorf("failed to create meta store: %w", err)
	}

	return handle, metaStore, nil
}
