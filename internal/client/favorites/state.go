package favorites

import "errors"

// State is where a product card's favorite flag stands relative to the
// backend.
type State int

const (
	// StateSynced means the local value matches the last authoritative answer.
	StateSynced State = iota
	// StatePending means an optimistic toggle is waiting for the backend.
	StatePending
	// StateReconciling means an authoritative fetch is in flight.
	StateReconciling
	// StateError means the last toggle failed and was rolled back.
	StateError
)

func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StatePending:
		return "pending"
	case StateReconciling:
		return "reconciling"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is a snapshot of one product's favorite flag.
type Status struct {
	Value bool
	State State
	// Err is the failure behind StateError.
	Err error
}

var (
	// ErrTogglePending rejects a toggle while another one for the same
	// product is still waiting for the backend.
	ErrTogglePending = errors.New("favorite toggle already in progress")

	// ErrStale is returned by Refresh when its result was discarded because
	// the view detached or a newer refresh started.
	ErrStale = errors.New("favorites result is stale")
)
