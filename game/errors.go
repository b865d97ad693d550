package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies card registration failures.
type ErrorKind string

const (
	OutOfRange           ErrorKind = "out_of_range"
	DuplicateInCard      ErrorKind = "duplicate_in_card"
	DuplicateAcrossCards ErrorKind = "duplicate_across_cards"
	WrongCount           ErrorKind = "wrong_count"
	MissingField         ErrorKind = "missing_field"
	DuplicateCardID      ErrorKind = "duplicate_card_id"
)

// ValidationError reports a rejected card submission. State is never
// mutated when one is returned.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(kind ErrorKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrNotAllowed is returned for operations that are illegal in the
// current game status, e.g. starting a countdown twice.
var ErrNotAllowed = errors.New("operation not allowed in current game status")

// PersistenceError wraps a snapshot store failure. Admin operations
// surface it to the caller after rolling back; background loops log it
// and fall back to waiting.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
