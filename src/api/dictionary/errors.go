package dictionary

import "errors"

// Error taxonomy mapped to HTTP statuses at the handler boundary.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)
