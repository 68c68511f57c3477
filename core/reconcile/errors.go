package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Registry when a key cannot be resolved.
	ErrNotFound = errors.New("object not found")

	// ErrMalformedInput matches any MalformedInputError via errors.Is.
	ErrMalformedInput = errors.New("malformed input")
)

// MalformedInputError means a payload could not be decoded into an array of objects.
type MalformedInputError struct {
	Relation string
	Err      error
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input for relation %q: %v", e.Relation, e.Err)
}

func (e MalformedInputError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedInput as a match.
func (e MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// UnknownRelationError means no relation with this name exists on the owner type.
type UnknownRelationError struct {
	OwnerType string
	Name      string
}

func (e UnknownRelationError) Error() string {
	return fmt.Sprintf("unknown relation: owner_type=%q name=%q", e.OwnerType, e.Name)
}

// DuplicateRelationError means a relation name was registered twice on one table.
type DuplicateRelationError struct {
	OwnerType string
	Name      string
}

func (e DuplicateRelationError) Error() string {
	return fmt.Sprintf("duplicate relation registration: owner_type=%q name=%q", e.OwnerType, e.Name)
}
