package parsing

import "fmt"

// APICallError represents a transport or provider failure of an AI call
type APICallError struct {
	Field   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: API call failed: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: API call failed: %s", e.Field, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an AI response that is not usable JSON
type ParseError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: parse error: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: parse error: %s", e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
