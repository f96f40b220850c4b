package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/docvault/internal/common"
	"github.com/avoronin/docvault/internal/dbx"
	"github.com/avoronin/docvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// isInvalidID reports SQLSTATE 22P02: the id is not syntactically a uuid, so
// Postgres rejects the comparison. For callers such an id matches no
// document.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {

	query :=
		`INSERT INTO documents (title, content, owner_id)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.Title, doc.Content, doc.OwnerID).Scan(&doc.ID, &doc.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query :=
		`SELECT id, title, content, owner_id, COALESCE(attachment_key, ''), created_at FROM documents
		 WHERE id = $1
		 `

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.AttachmentKey, &doc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error) {
	query :=
		`SELECT id, title, content, owner_id, COALESCE(attachment_key, ''), created_at FROM documents
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.AttachmentKey, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id, key string) error {
	query :=
		`UPDATE documents SET attachment_key = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		if isInvalidID(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
