package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// EncodeBytesToBase58 encodes bytes directly to base58
func EncodeBytesToBase58(bytes []byte) string {
	return base58.Encode(bytes)
}

// DecodeBase58ToBytes decodes base58 string to bytes
func DecodeBase58ToBytes(base58Str string) ([]byte, error) {
	bytes, err := base58.Decode(base58Str)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 string: %w", err)
	}
	if len(bytes) == 0 {
		return nil, fmt.Errorf("failed to decode base58 string")
	}
	return bytes, nil
}

// HasHexPrefix reports whether s starts with 0x or 0X
func HasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// DecodeHex decodes a 0x-prefixed hex string. Odd-length input is left-padded with a zero nibble.
func DecodeHex(s string) ([]byte, error) {
	if !HasHexPrefix(s) {
		return nil, fmt.Errorf("hex string %q is missing 0x prefix", s)
	}
	s = strings.ToLower(s[2:])
	if len(s)%2 == 1 {
		s = "0" + s
	}
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex string: %w", err)
	}
	return bytes, nil
}
