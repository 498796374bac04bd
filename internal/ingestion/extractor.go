// Package ingestion turns uploaded document bytes into cleaned plain text.
package ingestion

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// TextExtractor produces plain text from a document blob according to its declared type.
type TextExtractor interface {
	Extract(ctx context.Context, doc types.Document) (string, error)
}

// Extractor is the default TextExtractor. It dispatches on the declared document type
// and runs CleanText over the result.
type Extractor struct{}

// NewExtractor returns the default text extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements TextExtractor
func (x *Extractor) Extract(ctx context.Context, doc types.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch doc.Type {
	case types.DocumentTypePDF:
		text, err = extractPDF(doc.Content)
	case types.DocumentTypeDOCX:
		text, err = extractDOCX(doc.Content)
	case types.DocumentTypeHTML:
		text, err = extractHTML(doc.Content)
	case types.DocumentTypeTXT:
		text = string(doc.Content)
	default:
		return "", &ExtractionError{
			DocumentID: doc.ID,
			Type:       doc.Type,
			Message:    "no extractor for declared type",
			Cause:      &UnsupportedTypeError{Type: doc.Type},
		}
	}
	if err != nil {
		return "", &ExtractionError{DocumentID: doc.ID, Type: doc.Type, Message: "could not read content", Cause: err}
	}

	text = CleanText(text)
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{DocumentID: doc.ID, Type: doc.Type, Message: "no text content"}
	}
	return text, nil
}

// ExtractorFunc adapts a function to the TextExtractor interface
type ExtractorFunc func(ctx context.Context, doc types.Document) (string, error)

// Extract implements TextExtractor
func (f ExtractorFunc) Extract(ctx context.Context, doc types.Document) (string, error) {
	return f(ctx, doc)
}
