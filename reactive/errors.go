package reactive

import (
	"errors"
	"fmt"
)

// Lifecycle and typing bugs in the caller are reported by panicking with one of these
// errors wrapped with the offending node. They are not recoverable conditions.
var (
	// ErrNodeRemoved is raised when a NodeID or handle outlives its node.
	ErrNodeRemoved = errors.New("reactive: node removed")

	// ErrTypeMismatch is raised when a node payload is read at the wrong type.
	ErrTypeMismatch = errors.New("reactive: payload type mismatch")

	// ErrKindMismatch is raised when a handle addresses a node of another kind.
	ErrKindMismatch = errors.New("reactive: node kind mismatch")

	// ErrForeignHandle is raised when a handle is used with a Runtime that did not create it.
	ErrForeignHandle = errors.New("reactive: handle belongs to another runtime")

	// ErrWrongGoroutine is raised when a Runtime is used off its owning goroutine.
	ErrWrongGoroutine = errors.New("reactive: runtime used from another goroutine")

	// ErrCycle is raised when a memo is read while it is computing.
	ErrCycle = errors.New("reactive: memo read while computing")

	// ErrOwnerDisposed is raised when Run is called on a disposed Owner.
	ErrOwnerDisposed = errors.New("reactive: owner disposed")

	// ErrFlushBudget is raised when a single flush runs more tasks than allowed.
	ErrFlushBudget = errors.New("reactive: flush budget exceeded")
)

func fatalf(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
