package movements

import "errors"

var (
	ErrMalformedMovement = errors.New("Malformed movement record")
	ErrInvalidReason     = errors.New("Invalid reason filter")
)
