package rings

import "errors"

var (
	ErrInvalidYear   = errors.New("Invalid year (2000..2100)")
	ErrInvalidMonth  = errors.New("Invalid month (1..12)")
	ErrInvalidCount  = errors.New("Invalid count (1..5000)")
	ErrBatchConflict = errors.New("Batch was generated concurrently, try again")
)
