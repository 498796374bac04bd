package ingestion

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ExtractionError represents a failure to turn a document's bytes into text
type ExtractionError struct {
	DocumentID string
	Type       types.DocumentType
	Message    string
	Cause      error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction of %s document %q failed: %s: %v", e.Type, e.DocumentID, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction of %s document %q failed: %s", e.Type, e.DocumentID, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UnsupportedTypeError is returned for declared types with no extractor
type UnsupportedTypeError struct {
	Type types.DocumentType
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == "" {
		return "document type is not declared"
	}
	return fmt.Sprintf("unsupported document type %q", e.Type)
}
