package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// Store persists one StructuredHistory per user plus the documents it was parsed from.
// A user with no stored history reads back as the all-empty aggregate, never an error.
type Store interface {
	SaveHistory(ctx context.Context, userID string, h types.StructuredHistory) error
	GetHistory(ctx context.Context, userID string) (types.StructuredHistory, error)
	// UpdateContact replaces only the contact field and returns the full stored record
	UpdateContact(ctx context.Context, userID string, contact types.ContactInformation) (types.StructuredHistory, error)

	SaveDocument(ctx context.Context, userID string, doc types.Document) (*DocumentRecord, error)
	ListDocuments(ctx context.Context, userID string) ([]DocumentRecord, error)
	// LoadDocuments returns the user's documents with content, oldest first
	LoadDocuments(ctx context.Context, userID string) ([]types.Document, error)
}

// DocumentRecord is the stored metadata of an uploaded document
type DocumentRecord struct {
	ID          uuid.UUID              `json:"id"`
	UserID      uuid.UUID              `json:"user_id"`
	Name        string                 `json:"name"`
	Type        types.DocumentType     `json:"type"`
	Category    types.DocumentCategory `json:"category"`
	ContentHash string                 `json:"content_hash"`
	SizeBytes   int                    `json:"size_bytes"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ParseUserID parses a user identifier
func ParseUserID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &InvalidIDError{Kind: "user", Value: s, Cause: err}
	}
	return id, nil
}
