package store

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by store operations. Callers distinguish them
// with errors.Is; anything else wrapped in a PersistenceError means the
// operation aborted with prior state intact.
var (
	// ErrVersionAnnounced is returned when an announcement claim loses the
	// atomic insert race. Expected under concurrent startups; the loser
	// treats it as a no-op.
	ErrVersionAnnounced = errors.New("version already announced")

	// ErrUserNotFound is returned for operations targeting an unknown or
	// removed user.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is returned for lookups of other missing records.
	ErrNotFound = errors.New("record not found")
)

// StateError reports a clock state-machine violation: clocking in while a
// session is open, clocking out without one, or tracking being disabled.
// No state changes when a StateError is returned.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return e.Reason
}

// IsStateError reports whether err is (or wraps) a StateError.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// PersistenceError wraps a storage-layer failure. The triggering operation
// ran inside a transaction, so nothing was partially applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
