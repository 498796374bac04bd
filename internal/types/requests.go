package types

import (
	"encoding/base64"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UploadDocumentRequest is the body of a document upload. Content is base64 encoded.
type UploadDocumentRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Type     string           `json:"type,omitempty"`
	Category DocumentCategory `json:"category,omitempty" validate:"omitempty,oneof=resume cv transcript certificate reference portfolio other_biographical job_posting personal_id drivers_license"`
	Content  string           `json:"content" validate:"required,base64"`
}

// Validate validates the UploadDocumentRequest using the validator.
func (r *UploadDocumentRequest) Validate() error {
	return validate.Struct(r)
}

// Document decodes the request into a Document. The declared type wins over the name
// extension; an empty type means neither was recognized.
func (r *UploadDocumentRequest) Document() (Document, error) {
	content, err := base64.StdEncoding.DecodeString(r.Content)
	if err != nil {
		return Document{}, fmt.Errorf("invalid base64 content: %w", err)
	}
	docType := ParseDocumentType(r.Type)
	if docType == "" {
		docType = DocumentTypeFromName(r.Name)
	}
	return Document{
		Name:     r.Name,
		Type:     docType,
		Category: r.Category,
		Content:  content,
	}, nil
}

// UpdateContactRequest replaces the contact field of a stored history.
type UpdateContactRequest struct {
	FullName string   `json:"fullName" validate:"max=200"`
	Email    []string `json:"email" validate:"dive,email"`
	Phones   []string `json:"phones" validate:"dive,min=3,max=40"`
}

// Validate validates the UpdateContactRequest using the validator.
func (r *UpdateContactRequest) Validate() error {
	return validate.Struct(r)
}
