package account

import "fmt"

// ValidationError is an input rejected at the form boundary. Message is
// shown next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
