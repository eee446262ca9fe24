package store

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/syncstate/types"
)

func TestHashesCodecRandomized(t *testing.T) {
	f := fuzz.New().NilChance(0.1).NumElements(0, 32)

	for i := 0; i < 200; i++ {
		var hashes []types.Hash
		f.Fuzz(&hashes)

		raw, err := encodeHashes(hashes)
		require.NoError(t, err)

		decoded, err := decodeHashes(raw)
		require.NoError(t, err)
		require.NotNil(t, decoded)
		if len(hashes) == 0 {
			assert.Empty(t, decoded)
			continue
		}
		assert.Equal(t, hashes, decoded)
	}
}

func TestLatestBlockCodecRandomized(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for i := 0; i < 200; i++ {
		var limbs [4]uint64
		var number uint64
		f.Fuzz(&limbs)
		f.Fuzz(&number)

		raw, err := encodeLatestBlockHashAndNumber(types.FeltFromMont(limbs), number)
		require.NoError(t, err)
		require.Len(t, raw, latestBlockHashAndNumberLen)

		hash, decodedNumber, err := decodeLatestBlockHashAndNumber(raw)
		require.NoError(t, err)
		assert.Equal(t, limbs, hash.Mont())
		assert.Equal(t, number, decodedNumber)
	}
}

func TestDecodeHashesRejectsTrailingBytes(t *testing.T) {
	raw, err := encodeHashes([]types.Hash{hashOf(1)})
	require.NoError(t, err)

	_, err = decodeHashes(append(raw, 0x00))
	assert.Error(t, err)
}
