package db

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration directions accepted by Migrate
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// MigrationStatus reports whether one migration has been applied
type MigrationStatus struct {
	Version int64  `json:"version"`
	Path    string `json:"path"`
	Applied bool   `json:"applied"`
}

// Migrations returns the embedded SQL migrations
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies ("up"), rolls back one step of ("down"), or inspects ("status") the schema.
// The returned statuses describe the state after the operation.
func (db *DB) Migrate(ctx context.Context, direction string) ([]MigrationStatus, error) {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer func() { _ = sqlDB.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, Migrations())
	if err != nil {
		return nil, &MigrationError{Message: "failed to create migration provider", Cause: err}
	}

	switch direction {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return nil, &MigrationError{Message: "failed to apply migrations", Cause: err}
		}
		for _, r := range results {
			db.logger.Info("migration applied",
				zap.String("path", r.Source.Path),
				zap.Duration("duration", r.Duration),
			)
		}
	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return nil, &MigrationError{Message: "failed to roll back migration", Cause: err}
		}
		db.logger.Info("migration rolled back", zap.String("path", r.Source.Path))
	case MigrateStatus:
	default:
		return nil, &MigrationError{Message: "unknown migration direction " + direction}
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, &MigrationError{Message: "failed to read migration status", Cause: err}
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
