package element

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is matched by every RecordError
var ErrInvalidRecord = errors.New("invalid record")

// RecordError describes an element that violates a precondition of a transform
type RecordError struct {
	Kind   Kind
	ID     string
	Reason string
}

func (e *RecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s record: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s record %s: %s", e.Kind, e.ID, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRecord) true for any RecordError
func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// Invalid builds a RecordError for the given element
func Invalid(e *Element, format string, args ...interface{}) error {
	return &RecordError{
		Kind:   e.Kind,
		ID:     e.ID(),
		Reason: fmt.Sprintf(format, args...),
	}
}
