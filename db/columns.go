package db

import (
	"errors"
	"fmt"
)

const (
	ColumnDefault = "default"
	ColumnMeta    = "meta"
)

// AllColumns lists the columns every backend opens.
var AllColumns = []string{ColumnDefault, ColumnMeta}

var ErrUnknownColumn = errors.New("unknown column")

// ColumnFamilyDB is a long-lived database handle partitioned into named columns.
// One handle is shared by every accessor; the owner of the handle closes it.
// Column providers returned by Column do not close the handle.
type ColumnFamilyDB interface {
	// Column returns a provider scoped to the named column
	Column(name string) (IterableProvider, error)

	// GetCF reads key from column. A nil value means the key is absent.
	GetCF(column string, key []byte) ([]byte, error)

	// PutCF overwrites key in column
	PutCF(column string, key, value []byte) error

	// Close releases the underlying database
	Close() error
}

type columnSet map[string]IterableProvider

func (c columnSet) column(name string) (IterableProvider, error) {
	p, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return p, nil
}

func (c columnSet) getCF(column string, key []byte) ([]byte, error) {
	p, err := c.column(column)
	if err != nil {
		return nil, err
	}
	return p.Get(key)
}

func (c columnSet) putCF(column string, key, value []byte) error {
	p, err := c.column(column)
	if err != nil {
		return err
	}
	return p.Put(key, value)
}

func withDefaultColumns(columns []string) []string {
	if len(columns) == 0 {
		return AllColumns
	}
	return columns
}
