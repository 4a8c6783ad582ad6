package lifecycle

import "errors"

// State-conflict errors: the ring was not in the state the transition
// requires. The loser of a concurrent race on the same ring observes one of
// these, never a silent overwrite.
var (
	ErrRingNotAvailable = errors.New("Ring is not available")
	ErrRingNotFound     = errors.New("Ring not found")
	ErrAlreadyExited    = errors.New("Ring is already exited")
	ErrNotOwned         = errors.New("Ring does not belong to your producer")
	ErrSameProducer     = errors.New("Destination producer equals current owner")
)

// Validation errors: rejected before any write.
var (
	ErrInvalidReason        = errors.New("Invalid reason")
	ErrInvalidWeight        = errors.New("Invalid weight")
	ErrNoRings              = errors.New("No rings provided")
	ErrProducerNotFound     = errors.New("Producer not found or inactive")
	ErrOutsideCurrentMonth  = errors.New("Ring is outside the current month's batch")
	ErrMissingProducerScope = errors.New("Caller has no producer scope")
)

// IsStateConflict reports whether err is a per-ring state conflict, the class
// of error that fails one item of a bulk operation without aborting siblings.
func IsStateConflict(err error) bool {
	switch err {
	case ErrRingNotAvailable, ErrRingNotFound, ErrAlreadyExited, ErrNotOwned, ErrSameProducer, ErrProducerNotFound:
		return true
	}
	return false
}
