package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedDocument indicates an upload whose type cannot be determined
type ErrUnsupportedDocument struct {
	Name string
	Type string
}

func (e *ErrUnsupportedDocument) Error() string {
	return fmt.Sprintf("unsupported document type %q for %q (want pdf, docx, txt or html)", e.Type, e.Name)
}

// ErrPayloadTooLarge indicates a request body above the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unsupportedErr *ErrUnsupportedDocument
		tooLargeErr    *ErrPayloadTooLarge
		inputErr       *pipeline.InputError
		idErr          *db.InvalidIDError
		schemaErr      *schemas.ValidationError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &inputErr),
		errors.As(err, &idErr),
		errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
