package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation groups every input problem found before the directory
	// is consulted.
	ErrValidation = errors.New("validation error")

	ErrMissingFields    = fmt.Errorf("%w: required field is empty", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: password mismatch", ErrValidation)

	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike, so the two cannot be told apart.
	ErrInvalidCredentials = errors.New("account or password incorrect")

	// ErrConflict is returned when registering a username that is taken.
	ErrConflict = errors.New("account exists")

	ErrNotFound = errors.New("account not found")
)
