package types

import (
	"fmt"
	"strconv"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"

	"github.com/mezonai/syncstate/common"
)

// FeltLength is the size in bytes of the canonical big-endian form of a Felt.
const FeltLength = fp.Bytes

// Felt is an element of the STARK prime field, used for block hashes.
//
// The underlying fp.Element keeps its value in Montgomery form as four
// little-endian 64-bit limbs. Mont and FeltFromMont expose that residue form
// without conversion; everything else works on the canonical value.
type Felt struct {
	val fp.Element
}

// FeltFromMont rebuilds a Felt from its Montgomery limbs.
func FeltFromMont(limbs [4]uint64) Felt {
	return Felt{val: fp.Element(limbs)}
}

// Mont returns the Montgomery limbs of f.
func (f Felt) Mont() [4]uint64 {
	return [4]uint64(f.val)
}

func FeltFromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FeltFromBytes parses a 32-byte big-endian canonical value.
func FeltFromBytes(b []byte) (Felt, error) {
	var f Felt
	if err := f.val.SetBytesCanonical(b); err != nil {
		return Felt{}, fmt.Errorf("invalid felt bytes: %w", err)
	}
	return f, nil
}

// FeltFromHex parses a 0x-prefixed hex string of at most 64 digits. The value must be below the field modulus.
func FeltFromHex(s string) (Felt, error) {
	b, err := common.DecodeHex(s)
	if err != nil {
		return Felt{}, err
	}
	if len(b) > FeltLength {
		return Felt{}, fmt.Errorf("felt hex %q is longer than %d bytes", s, FeltLength)
	}
	padded := make([]byte, FeltLength)
	copy(padded[FeltLength-len(b):], b)
	return FeltFromBytes(padded)
}

// Bytes returns the canonical big-endian encoding of f.
func (f Felt) Bytes() [FeltLength]byte {
	return f.val.Bytes()
}

func (f Felt) Equal(other Felt) bool {
	return f.val.Equal(&other.val)
}

func (f Felt) IsZero() bool {
	return f.val.IsZero()
}

func (f Felt) String() string {
	return "0x" + f.val.Text(16)
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("felt must be a JSON string: %w", err)
	}
	parsed, err := FeltFromHex(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
