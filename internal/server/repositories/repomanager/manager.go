// Package repomanager wires repository implementations to database handles
// and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avoronin/docvault/internal/dbx"
	"github.com/avoronin/docvault/internal/server/repositories/documents"
	"github.com/avoronin/docvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX handle, so the same
// repository code runs over a plain connection or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
