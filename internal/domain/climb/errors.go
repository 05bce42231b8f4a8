package climb

import "errors"

var (
	// ErrNotFound indicates the log entry doesn't exist.
	ErrNotFound = errors.New("climb log not found")
	// ErrNoImage indicates the log entry has no attached image.
	ErrNoImage = errors.New("climb log has no image")
)

// ValidationError carries field-scoped validation messages.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
