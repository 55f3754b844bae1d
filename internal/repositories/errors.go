package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups when no record matches the natural key.
var ErrNotFound = errors.New("record not found")

// ConflictError reports a uniqueness violation and names the colliding
// field, whether it was caught by an advisory pre-check or by the store's
// unique index after the fact.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate value for field %q", e.Field)
}

// AsConflict unwraps err into a ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
