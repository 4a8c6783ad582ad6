package roosters

import "errors"

var (
	ErrRingNotFound = errors.New("Ring not found")
	ErrNotLinked    = errors.New("Ring is not linked to your producer")
)
