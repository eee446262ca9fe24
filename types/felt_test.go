package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Montgomery form of 1 in the STARK field, i.e. 2^256 mod p.
var oneMont = [4]uint64{
	18446744073709551585,
	18446744073709551615,
	18446744073709551615,
	576460752303422960,
}

func TestFeltMontgomeryForm(t *testing.T) {
	one := FeltFromUint64(1)
	assert.Equal(t, oneMont, one.Mont())
	assert.True(t, FeltFromMont(oneMont).Equal(one))

	var zero Felt
	assert.Equal(t, [4]uint64{}, zero.Mont())
	assert.True(t, zero.IsZero())
}

func TestFeltMontRoundTrip(t *testing.T) {
	values := []string{
		"0x0",
		"0x1",
		"0x2a",
		"0x49ee3eba8c1600700ee1b87eb599f16716b0b1022947733551fde4050ca6804",
		"0x800000000000011000000000000000000000000000000000000000000000000",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			f, err := FeltFromHex(v)
			require.NoError(t, err)

			back := FeltFromMont(f.Mont())
			assert.True(t, back.Equal(f))
			assert.Equal(t, f.Bytes(), back.Bytes())
			assert.Equal(t, v, back.String())
		})
	}
}

func TestFeltFromHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "short", in: "0x7"},
		{name: "odd digits", in: "0xabc"},
		{name: "max", in: "0x800000000000011000000000000000000000000000000000000000000000000"},
		{name: "modulus", in: "0x800000000000011000000000000000000000000000000000000000000000001", wantErr: true},
		{name: "too long", in: "0x" + "1" + "0000000000000000000000000000000000000000000000000000000000000000", wantErr: true},
		{name: "no prefix", in: "1234", wantErr: true},
		{name: "not hex", in: "0xg1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FeltFromHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeltFromBytes(t *testing.T) {
	b := make([]byte, FeltLength)
	b[FeltLength-1] = 42
	f, err := FeltFromBytes(b)
	require.NoError(t, err)
	assert.True(t, f.Equal(FeltFromUint64(42)))

	_, err = FeltFromBytes(b[:10])
	assert.Error(t, err)
}

func TestFeltJSON(t *testing.T) {
	f := FeltFromUint64(0xdead)
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"0xdead"`, string(data))

	var decoded Felt
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(f))

	assert.Error(t, json.Unmarshal([]byte(`42`), &decoded))
}
