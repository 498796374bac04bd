package db

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
)

// MemoryStore is an in-process Store with the same contract as DB. Records are stored
// through the same per-field JSON encoding so reads never alias caller memory.
type MemoryStore struct {
	mu        sync.RWMutex
	histories map[uuid.UUID]historyColumns
	documents map[uuid.UUID][]memoryDocument
	now       func() time.Time
}

type memoryDocument struct {
	record  DocumentRecord
	content []byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		histories: make(map[uuid.UUID]historyColumns),
		documents: make(map[uuid.UUID][]memoryDocument),
		now:       time.Now,
	}
}

// SaveHistory implements Store
func (m *MemoryStore) SaveHistory(_ context.Context, userID string, h types.StructuredHistory) error {
	id, err := ParseUserID(userID)
	if err != nil {
		return err
	}
	cols, err := encodeHistory(h)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.histories[id] = cols
	return nil
}

// GetHistory implements Store
func (m *MemoryStore) GetHistory(_ context.Context, userID string) (types.StructuredHistory, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return types.StructuredHistory{}, err
	}

	m.mu.RLock()
	cols, ok := m.histories[id]
	m.mu.RUnlock()
	if !ok {
		return types.EmptyStructuredHistory(), nil
	}
	return decodeHistory(cols)
}

// UpdateContact implements Store
func (m *MemoryStore) UpdateContact(_ context.Context, userID string, contact types.ContactInformation) (types.StructuredHistory, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return types.StructuredHistory{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h, err := decodeHistory(m.histories[id])
	if err != nil {
		return types.StructuredHistory{}, err
	}
	h.ContactInformation = contact
	cols, err := encodeHistory(h)
	if err != nil {
		return types.StructuredHistory{}, err
	}
	m.histories[id] = cols
	return decodeHistory(cols)
}

// SaveDocument implements Store
func (m *MemoryStore) SaveDocument(_ context.Context, userID string, doc types.Document) (*DocumentRecord, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	rec := DocumentRecord{
		ID:          uuid.New(),
		UserID:      id,
		Name:        doc.Name,
		Type:        doc.Type,
		Category:    doc.Category,
		ContentHash: ingestion.ContentHash(doc.Content),
		SizeBytes:   len(doc.Content),
		CreatedAt:   m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[id] = append(m.documents[id], memoryDocument{record: rec, content: bytes.Clone(doc.Content)})
	return &rec, nil
}

// ListDocuments implements Store
func (m *MemoryStore) ListDocuments(_ context.Context, userID string) ([]DocumentRecord, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]DocumentRecord, 0, len(m.documents[id]))
	for _, d := range m.documents[id] {
		records = append(records, d.record)
	}
	return records, nil
}

// LoadDocuments implements Store
func (m *MemoryStore) LoadDocuments(_ context.Context, userID string) ([]types.Document, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]types.Document, 0, len(m.documents[id]))
	for _, d := range m.documents[id] {
		docs = append(docs, types.Document{
			ID:       d.record.ID.String(),
			Name:     d.record.Name,
			Type:     d.record.Type,
			Category: d.record.Category,
			Content:  bytes.Clone(d.content),
		})
	}
	return docs, nil
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
