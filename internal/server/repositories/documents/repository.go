// Package documents defines the storage contract for document records.
package documents

import (
	"context"

	"github.com/avoronin/docvault/internal/server/models"
)

type Repository interface {
	// Create inserts a new document and returns it with the generated ID.
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)

	// GetByID returns the document with the given ID, or common.ErrorNotFound.
	// No ownership filtering happens here; that is the service's job.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByOwner returns the owner's documents in insertion order. An empty
	// result is a nil/empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error)

	// SetAttachmentKey records the object-storage key of the document's
	// attachment. Unknown ID yields common.ErrorNotFound.
	SetAttachmentKey(ctx context.Context, id, key string) error
}
