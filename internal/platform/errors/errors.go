package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	// ErrStorage marks a failed storage call. Callers surface it and never retry.
	ErrStorage = errors.New("storage failure")
)

// IsUserFacing reports whether err carries a message meant for the user as-is
// rather than a driver failure that only belongs in the log.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}
