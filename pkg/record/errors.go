package record

// Errors
var (
	ErrInvalidInput     = &Error{"invalid input"}
	ErrValidationFailed = &Error{"record is missing required fields"}
	ErrNotFound         = &Error{"record not found"}
	ErrMalformedInput   = &Error{"malformed tabular input"}
)

// Error represents a record operation error. Callers wrap the sentinel
// values above with context and match them with errors.Is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
