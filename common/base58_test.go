package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58RoundTrip(t *testing.T) {
	in := []byte{0x00, 0x01, 0xfe, 0xff}
	out, err := DecodeBase58ToBytes(EncodeBytesToBase58(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeBase58ToBytesRejectsInvalid(t *testing.T) {
	_, err := DecodeBase58ToBytes("0OIl")
	assert.Error(t, err)

	_, err = DecodeBase58ToBytes("")
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{name: "even", in: "0x0aff", want: []byte{0x0a, 0xff}},
		{name: "odd", in: "0xabc", want: []byte{0x0a, 0xbc}},
		{name: "upper prefix", in: "0XAB", want: []byte{0xab}},
		{name: "empty body", in: "0x", want: []byte{}},
		{name: "missing prefix", in: "abcd", wantErr: true},
		{name: "bad digit", in: "0xzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
