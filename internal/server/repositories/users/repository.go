// Package users defines the storage contract for account records.
package users

import (
	"context"

	"github.com/avoronin/docvault/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and returns it with the generated ID.
	// A username collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
