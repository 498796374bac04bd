package ingestion

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/jonathan/resume-builder/internal/types"
)

// Metadata describes one ingested document
type Metadata struct {
	DocumentID string             `json:"document_id"`
	Name       string             `json:"name,omitempty"`
	Type       types.DocumentType `json:"type"`
	Timestamp  string             `json:"timestamp"` // RFC3339 format
	Hash       string             `json:"hash"`      // BLAKE2b-256 hex digest of the raw bytes
	Bytes      int                `json:"bytes"`
	Characters int                `json:"characters"` // length of the extracted text
}

// NewMetadata creates a Metadata instance for a document and its extracted text
func NewMetadata(doc types.Document, text string) *Metadata {
	return &Metadata{
		DocumentID: doc.ID,
		Name:       doc.Name,
		Type:       doc.Type,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       ContentHash(doc.Content),
		Bytes:      len(doc.Content),
		Characters: len([]rune(text)),
	}
}

// ContentHash returns the BLAKE2b-256 hex digest of content
func ContentHash(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
