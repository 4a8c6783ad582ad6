package provisioning

import "errors"

var (
	ErrInvalidEmail      = errors.New("Invalid email format")
	ErrInvalidNIF        = errors.New("Invalid NIF (must be 9 digits)")
	ErrInvalidRole       = errors.New("Invalid role")
	ErrNameRequired      = errors.New("Name is required")
	ErrEmailTaken        = errors.New("Email already registered")
	ErrProducerNotFound  = errors.New("Producer not found or inactive")
	ErrUserNotFound      = errors.New("User not found")
)
