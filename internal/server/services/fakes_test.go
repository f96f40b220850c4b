package services

import (
	"context"
	"database/sql"

	"github.com/avoronin/docvault/internal/dbx"
	"github.com/avoronin/docvault/internal/server/models"
	"github.com/avoronin/docvault/internal/server/repositories/documents"
	"github.com/avoronin/docvault/internal/server/repositories/users"
)

// --- shared test fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-created"
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeDocsRepo struct {
	createErr error

	getOut *models.Document
	getErr error

	listOut []*models.Document
	listErr error

	setKeyErr  error
	setKeyID   string
	setKeyLast string
}

func (f *fakeDocsRepo) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	d.ID = "d-created"
	return d, nil
}

func (f *fakeDocsRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeDocsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeDocsRepo) SetAttachmentKey(ctx context.Context, id, key string) error {
	if f.setKeyErr != nil {
		return f.setKeyErr
	}
	f.setKeyID = id
	f.setKeyLast = key
	return nil
}

type fakeRepoManager struct {
	users users.Repository
	docs  documents.Repository
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository {
	return m.docs
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
