package resume

import "errors"

var (
	ErrNotFound         = errors.New("user not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrIndexOutOfRange  = errors.New("index out of range")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
