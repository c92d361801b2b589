package material

import "fmt"

// StorageError reports that the material document could not be read or
// written. Callers show a notice and carry on.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("material %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// UserMessage is the notice text shown for a storage failure.
func (e *StorageError) UserMessage() string {
	return "Storage full or unavailable. Could not save."
}

// ValidationError reports input that was rejected before storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
