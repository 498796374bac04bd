package pipeline

import "fmt"

// InputError means the pipeline could not start: no user, no documents, or no document that
// may enter a corpus. It is the only error Run returns.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}
