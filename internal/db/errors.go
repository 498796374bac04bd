package db

import "fmt"

// InvalidIDError is returned when a user or document identifier is not a UUID
type InvalidIDError struct {
	Kind  string
	Value string
	Cause error
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id %q", e.Kind, e.Value)
}

func (e *InvalidIDError) Unwrap() error {
	return e.Cause
}

// MigrationError is returned when applying or inspecting schema migrations fails
type MigrationError struct {
	Message string
	Cause   error
}

func (e *MigrationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MigrationError) Unwrap() error {
	return e.Cause
}
