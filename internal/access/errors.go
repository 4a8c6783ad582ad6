package access

import "errors"

var (
	ErrNotAuthenticated = errors.New("Not authenticated")
	ErrNoProfile        = errors.New("No profile for this user")
	ErrProfileInactive  = errors.New("Account is disabled")
	ErrNoProducerScope  = errors.New("Producer account has no producer assigned")
)
