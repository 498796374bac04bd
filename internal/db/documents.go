package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveDocument stores an uploaded document for the user and returns its metadata
func (db *DB) SaveDocument(ctx context.Context, userID string, doc types.Document) (*DocumentRecord, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	rec := DocumentRecord{
		UserID:      id,
		Name:        doc.Name,
		Type:        doc.Type,
		Category:    doc.Category,
		ContentHash: ingestion.ContentHash(doc.Content),
		SizeBytes:   len(doc.Content),
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO documents (user_id, name, doc_type, category, content, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		id, doc.Name, string(doc.Type), string(doc.Category), doc.Content, rec.ContentHash,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &rec, nil
}

// ListDocuments returns metadata for the user's documents, oldest first
func (db *DB) ListDocuments(ctx context.Context, userID string) ([]DocumentRecord, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, doc_type, category, content_hash, octet_length(content), created_at
		 FROM documents WHERE user_id = $1 ORDER BY created_at, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	records := []DocumentRecord{}
	for rows.Next() {
		var rec DocumentRecord
		var docType, category string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &docType, &category, &rec.ContentHash, &rec.SizeBytes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		rec.Type = types.DocumentType(docType)
		rec.Category = types.DocumentCategory(category)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return records, nil
}

// LoadDocuments returns the user's documents with their content, oldest first
func (db *DB) LoadDocuments(ctx context.Context, userID string) ([]types.Document, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, doc_type, category, content
		 FROM documents WHERE user_id = $1 ORDER BY created_at, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Document, error) {
		var docID uuid.UUID
		var doc types.Document
		var docType, category string
		if err := row.Scan(&docID, &doc.Name, &docType, &category, &doc.Content); err != nil {
			return doc, err
		}
		doc.ID = docID.String()
		doc.Type = types.DocumentType(docType)
		doc.Category = types.DocumentCategory(category)
		return doc, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}
	return docs, nil
}
