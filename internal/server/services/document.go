package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avoronin/docvault/internal/common"
	"github.com/avoronin/docvault/internal/dbx"
	sc "github.com/avoronin/docvault/internal/server/config"
	"github.com/avoronin/docvault/internal/server/models"
	"github.com/avoronin/docvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpiry bounds how long a handed-out attachment URL stays usable.
const presignExpiry = 15 * time.Minute

// Seams for testing the S3 presign flow without a live backend.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DocumentService provides document operations for an already-resolved owner.
// Every read or mutation of a single document passes the ownership check
// first.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// Create persists a new document owned by owner.
func (s *DocumentService) Create(ctx context.Context, owner *models.User, title, content string) (*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	doc := &models.Document{Title: title, Content: content, OwnerID: owner.ID}
	doc, err := repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return doc, nil
}

// Get fetches a document by ID on behalf of owner. A document that does not
// exist and a document owned by someone else both yield
// common.ErrorNotFound, so foreign document IDs are not probeable.
func (s *DocumentService) Get(ctx context.Context, owner *models.User, documentID string) (*models.Document, error) {
	repo := s.repomanager.Documents(s.db)
	doc, err := repo.GetByID(ctx, documentID)
	return s.authorizeAccess(owner, doc, err)
}

// ListOwned returns all of owner's documents in insertion order. An owner
// with no documents gets an empty slice, not an error.
func (s *DocumentService) ListOwned(ctx context.Context, owner *models.User) ([]*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	docs, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	return docs, nil
}

// AttachmentUploadURL generates a fresh storage key for the document's
// attachment, records it, and returns a presigned PUT URL the client uploads
// to directly. Ownership-checked like every single-document operation.
func (s *DocumentService) AttachmentUploadURL(ctx context.Context, owner *models.User, documentID string) (string, error) {
	if !s.attachmentsEnabled() {
		return "", common.ErrorAttachmentsNotConfigured
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	// Guard and key update share a transaction, so the ownership check still
	// holds when the key lands. Presigning is local SigV4 computation.
	var url string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)

		fetched, fetchErr := repo.GetByID(ctx, documentID)
		doc, err := s.authorizeAccess(owner, fetched, fetchErr)
		if err != nil {
			return err
		}

		req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(presignExpiry))
		if err != nil {
			return fmt.Errorf("error presigning upload: %w", err)
		}
		url = req.URL

		if err := repo.SetAttachmentKey(ctx, doc.ID, key); err != nil {
			return fmt.Errorf("error saving attachment key: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return url, nil
}

// AttachmentDownloadURL returns a presigned GET URL for the document's
// attachment. A document without an attachment reports common.ErrorNotFound.
func (s *DocumentService) AttachmentDownloadURL(ctx context.Context, owner *models.User, documentID string) (string, error) {
	if !s.attachmentsEnabled() {
		return "", common.ErrorAttachmentsNotConfigured
	}

	repo := s.repomanager.Documents(s.db)
	fetched, fetchErr := repo.GetByID(ctx, documentID)
	doc, err := s.authorizeAccess(owner, fetched, fetchErr)
	if err != nil {
		return "", err
	}

	if doc.AttachmentKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.AttachmentKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return req.URL, nil
}

// authorizeAccess is the ownership check applied before any single-document
// read or mutation. Nonexistence and foreign ownership are reported
// identically.
func (s *DocumentService) authorizeAccess(owner *models.User, doc *models.Document, err error) (*models.Document, error) {
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching document: %w", err)
	}
	if doc.OwnerID != owner.ID {
		return nil, common.ErrorNotFound
	}
	return doc, nil
}

func (s *DocumentService) attachmentsEnabled() bool {
	return s.config.S3BaseEndpoint != ""
}

func (s *DocumentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
