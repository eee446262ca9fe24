package types

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/mezonai/syncstate/common"
)

// HashLength is the size in bytes of a block hash.
const HashLength = 32

// Hash identifies a block. A syncing tip is a Hash.
type Hash [HashLength]byte

// BytesToHash copies b into a Hash. b must be exactly HashLength bytes.
func BytesToHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("invalid hash length: expected %d, got %d", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashFromString parses a 0x-prefixed hex hash or a base58 hash.
func HashFromString(s string) (Hash, error) {
	if common.HasHexPrefix(s) {
		if len(s) != 2+2*HashLength {
			return Hash{}, fmt.Errorf("invalid hex hash %q: expected %d hex digits", s, 2*HashLength)
		}
		b, err := common.DecodeHex(s)
		if err != nil {
			return Hash{}, err
		}
		return BytesToHash(b)
	}

	b, err := common.DecodeBase58ToBytes(s)
	if err != nil {
		return Hash{}, err
	}
	return BytesToHash(b)
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) Base58() string {
	return common.EncodeBytesToBase58(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(h.String())), nil
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("hash must be a JSON string: %w", err)
	}
	parsed, err := HashFromString(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
