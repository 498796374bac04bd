// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"strings"
)

// DocumentType is the declared format of an uploaded document
type DocumentType string

// Supported document types
const (
	DocumentTypePDF  DocumentType = "pdf"
	DocumentTypeDOCX DocumentType = "docx"
	DocumentTypeTXT  DocumentType = "txt"
	DocumentTypeHTML DocumentType = "html"
)

// DocumentCategory classifies what an uploaded document is about
type DocumentCategory string

// Known document categories. Only biographical categories may enter a corpus.
const (
	CategoryUnspecified   DocumentCategory = ""
	CategoryResume        DocumentCategory = "resume"
	CategoryCV            DocumentCategory = "cv"
	CategoryTranscript    DocumentCategory = "transcript"
	CategoryCertificate   DocumentCategory = "certificate"
	CategoryReference     DocumentCategory = "reference"
	CategoryPortfolio     DocumentCategory = "portfolio"
	CategoryBiographical  DocumentCategory = "other_biographical"
	CategoryJobPosting    DocumentCategory = "job_posting"
	CategoryPersonalID    DocumentCategory = "personal_id"
	CategoryDriverLicense DocumentCategory = "drivers_license"
)

// Document is one uploaded source document
type Document struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     DocumentType     `json:"type"`
	Category DocumentCategory `json:"category"`
	Content  []byte           `json:"-"`
}

// DocumentTypeFromName infers a document type from a file name extension.
// Returns an empty type when the extension is not recognized.
func DocumentTypeFromName(name string) DocumentType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return DocumentTypePDF
	case ".docx":
		return DocumentTypeDOCX
	case ".txt", ".text", ".md":
		return DocumentTypeTXT
	case ".html", ".htm":
		return DocumentTypeHTML
	default:
		return ""
	}
}

// ParseDocumentType parses a declared type string, accepting either a bare
// type ("pdf") or a file extension (".pdf").
func ParseDocumentType(s string) DocumentType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, ".")
	switch DocumentType(s) {
	case DocumentTypePDF, DocumentTypeDOCX, DocumentTypeTXT, DocumentTypeHTML:
		return DocumentType(s)
	case "text", "plain", "md":
		return DocumentTypeTXT
	case "htm":
		return DocumentTypeHTML
	default:
		return ""
	}
}
