package store

import (
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"

	"github.com/mezonai/syncstate/types"
)

// latestBlockHashAndNumberLen is four u64 limbs plus a u64 height
const latestBlockHashAndNumberLen = 5 * 8

type latestBlockHashAndNumber struct {
	HashMont [4]uint64 `scale:"1"`
	Number   uint64    `scale:"2"`
}

// encodeHashes encodes a compact length prefix followed by each 32-byte hash
func encodeHashes(hashes []types.Hash) ([]byte, error) {
	if hashes == nil {
		hashes = []types.Hash{}
	}
	return scale.Marshal(hashes)
}

func decodeHashes(raw []byte) ([]types.Hash, error) {
	var hashes []types.Hash
	if err := scale.Unmarshal(raw, &hashes); err != nil {
		return nil, err
	}

	// scale.Unmarshal ignores anything after the last element
	reencoded, err := encodeHashes(hashes)
	if err != nil {
		return nil, err
	}
	if len(reencoded) != len(raw) {
		return nil, fmt.Errorf("%d trailing bytes after %d hashes", len(raw)-len(reencoded), len(hashes))
	}

	if hashes == nil {
		hashes = []types.Hash{}
	}
	return hashes, nil
}

func encodeLatestBlockHashAndNumber(hash types.Felt, number uint64) ([]byte, error) {
	return scale.Marshal(latestBlockHashAndNumber{
		HashMont: hash.Mont(),
		Number:   number,
	})
}

func decodeLatestBlockHashAndNumber(raw []byte) (types.Felt, uint64, error) {
	if len(raw) != latestBlockHashAndNumberLen {
		return types.Felt{}, 0, fmt.Errorf("expected %d bytes, got %d", latestBlockHashAndNumberLen, len(raw))
	}

	var v latestBlockHashAndNumber
	if err := scale.Unmarshal(raw, &v); err != nil {
		return types.Felt{}, 0, err
	}
	return types.FeltFromMont(v.HashMont), v.Number, nil
}
