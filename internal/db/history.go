package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/types"
)

// historyColumns holds one JSON document per aggregate field
type historyColumns struct {
	contact        []byte
	skills         []byte
	education      []byte
	certifications []byte
	jobHistory     []byte
}

func encodeHistory(h types.StructuredHistory) (historyColumns, error) {
	h.Normalize()
	var cols historyColumns
	var err error
	if cols.contact, err = json.Marshal(h.ContactInformation); err != nil {
		return cols, fmt.Errorf("failed to marshal contact information: %w", err)
	}
	if cols.skills, err = json.Marshal(h.Skills); err != nil {
		return cols, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if cols.education, err = json.Marshal(h.Education); err != nil {
		return cols, fmt.Errorf("failed to marshal education: %w", err)
	}
	if cols.certifications, err = json.Marshal(h.Certifications); err != nil {
		return cols, fmt.Errorf("failed to marshal certifications: %w", err)
	}
	if cols.jobHistory, err = json.Marshal(h.JobHistory); err != nil {
		return cols, fmt.Errorf("failed to marshal job history: %w", err)
	}
	return cols, nil
}

func decodeHistory(cols historyColumns) (types.StructuredHistory, error) {
	var h types.StructuredHistory
	fields := []struct {
		name string
		data []byte
		dst  any
	}{
		{"contact information", cols.contact, &h.ContactInformation},
		{"skills", cols.skills, &h.Skills},
		{"education", cols.education, &h.Education},
		{"certifications", cols.certifications, &h.Certifications},
		{"job history", cols.jobHistory, &h.JobHistory},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.dst); err != nil {
			return h, fmt.Errorf("failed to unmarshal %s: %w", f.name, err)
		}
	}
	h.Normalize()
	return h, nil
}

// SaveHistory stores h as the user's history, replacing any previous record
func (db *DB) SaveHistory(ctx context.Context, userID string, h types.StructuredHistory) error {
	id, err := ParseUserID(userID)
	if err != nil {
		return err
	}
	cols, err := encodeHistory(h)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO structured_histories
		   (user_id, contact_information, skills, education, certifications, job_history)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   contact_information = EXCLUDED.contact_information,
		   skills = EXCLUDED.skills,
		   education = EXCLUDED.education,
		   certifications = EXCLUDED.certifications,
		   job_history = EXCLUDED.job_history,
		   updated_at = NOW()`,
		id, cols.contact, cols.skills, cols.education, cols.certifications, cols.jobHistory,
	)
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	db.logger.Debug("history saved", zap.String("user_id", id.String()))
	return nil
}

// GetHistory returns the user's stored history, or the all-empty aggregate when none exists
func (db *DB) GetHistory(ctx context.Context, userID string) (types.StructuredHistory, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return types.StructuredHistory{}, err
	}

	var cols historyColumns
	err = db.pool.QueryRow(ctx,
		`SELECT contact_information, skills, education, certifications, job_history
		 FROM structured_histories WHERE user_id = $1`,
		id,
	).Scan(&cols.contact, &cols.skills, &cols.education, &cols.certifications, &cols.jobHistory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.EmptyStructuredHistory(), nil
		}
		return types.StructuredHistory{}, fmt.Errorf("failed to get history: %w", err)
	}
	return decodeHistory(cols)
}

// UpdateContact replaces the contact field of the user's history, creating an otherwise
// empty record when none exists, and returns the full stored history.
func (db *DB) UpdateContact(ctx context.Context, userID string, contact types.ContactInformation) (types.StructuredHistory, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return types.StructuredHistory{}, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return types.StructuredHistory{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cols historyColumns
	err = tx.QueryRow(ctx,
		`SELECT contact_information, skills, education, certifications, job_history
		 FROM structured_histories WHERE user_id = $1 FOR UPDATE`,
		id,
	).Scan(&cols.contact, &cols.skills, &cols.education, &cols.certifications, &cols.jobHistory)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return types.StructuredHistory{}, fmt.Errorf("failed to load history: %w", err)
	}

	h, err := decodeHistory(cols)
	if err != nil {
		return types.StructuredHistory{}, err
	}
	h.ContactInformation = contact
	h.Normalize()

	next, err := encodeHistory(h)
	if err != nil {
		return types.StructuredHistory{}, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO structured_histories
		   (user_id, contact_information, skills, education, certifications, job_history)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   contact_information = EXCLUDED.contact_information,
		   updated_at = NOW()`,
		id, next.contact, next.skills, next.education, next.certifications, next.jobHistory,
	)
	if err != nil {
		return types.StructuredHistory{}, fmt.Errorf("failed to update contact information: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return types.StructuredHistory{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return h, nil
}
