package tracker

// ValidationError reports a user-input violation on a single field.
// It is always recoverable by re-prompting; nothing in this package
// escalates it to a fatal fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// invalid builds a ValidationError for a field.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
