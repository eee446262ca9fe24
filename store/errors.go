package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError
	ErrDecode = errors.New("decoding error")
	// ErrFormat matches every *FormatError
	ErrFormat = errors.New("format error")
	// ErrValueNotInitialized matches every *ValueNotInitializedError
	ErrValueNotInitialized = errors.New("value not initialized")
)

// DecodeError reports stored bytes that do not match the encoding of their key
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// FormatError reports a fixed-width value stored with the wrong shape
type FormatError struct {
	Key string
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format for %s: %s", e.Key, e.Msg)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ValueNotInitializedError reports a key without default that was never written
type ValueNotInitializedError struct {
	Column string
	Key    string
}

func (e *ValueNotInitializedError) Error() string {
	return fmt.Sprintf("value not initialized for key %s in column %s", e.Key, e.Column)
}

func (e *ValueNotInitializedError) Is(target error) bool {
	return target == ErrValueNotInitialized
}
