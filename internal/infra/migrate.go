package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Statements are idempotent so startup can apply them unconditionally.
// The CHECK constraint is the storage-level backstop for the non-negative
// balance invariant; the service must reject overdrafts before ever
// reaching it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
        id      UUID PRIMARY KEY,
        balance NUMERIC NOT NULL DEFAULT 0 CHECK (balance >= 0)
    )`,
}

// Migrate applies the wallet schema on startup.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
