package repository

import (
	"context"
	_ "embed"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema_postgres.sql
var postgresSchema string

// EnsurePostgresSchema creates the ledger tables if they are missing.
func EnsurePostgresSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range strings.Split(postgresSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return wrapStoreError("ensure schema", err)
		}
	}
	return nil
}
