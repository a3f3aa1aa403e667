package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration is returned for non-positive or fractional durations.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrSessionRunning is returned when the duration is edited mid-session.
	ErrSessionRunning = errors.New("session is running")
	// ErrPersistenceUnavailable marks a failed read or write of the stats key.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrMalformedRecord marks a persisted entry that failed validation.
	ErrMalformedRecord = errors.New("malformed persisted record")
	// ErrInvalidDate is returned for date keys not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)

// DurationError describes a rejected duration input
type DurationError struct {
	Input string
	Err   error
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: %v", e.Input, e.Err)
}

func (e *DurationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidDuration) match any DurationError.
func (e *DurationError) Is(target error) bool {
	return target == ErrInvalidDuration
}

// StorageError represents errors accessing the persistence capability
type StorageError struct {
	Path string
	Op   string // "open", "read", "write", "delete"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrPersistenceUnavailable
}

// ParseError represents a persisted entry that could not be decoded
type ParseError struct {
	Source string // storage key
	Key    string // entry index or date
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedRecord
}
