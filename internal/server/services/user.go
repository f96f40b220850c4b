// Package services contains server-side business logic. This file implements
// UserService: signup, login, and resolving a bearer token to a user record.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avoronin/docvault/internal/common"
	"github.com/avoronin/docvault/internal/server/auth"
	"github.com/avoronin/docvault/internal/server/config"
	"github.com/avoronin/docvault/internal/server/models"
	"github.com/avoronin/docvault/internal/server/repositories/repomanager"
)

// UserService provides account operations:
//   - Signup: create a user and mint a first token
//   - Login: verify credentials and mint a token
//   - Authenticate: resolve a raw Authorization header to a user record
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// Signup registers a new account and returns an access token whose subject is
// the username. A taken username yields common.ErrorAlreadyRegistered,
// whether it is caught by the pre-insert existence check or by the unique
// index when two signups race past the check concurrently.
func (s *UserService) Signup(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsername(ctx, username)
	if err == nil {
		return "", common.ErrorAlreadyRegistered
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking username: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyRegistered
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.generateAccessToken(username)
}

// Login verifies the credentials and returns a fresh access token. An unknown
// username and a wrong password produce the same common.ErrorUnauthorized to
// avoid username enumeration.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	return s.generateAccessToken(user.Username)
}

// Authenticate resolves the raw Authorization header value to a user record.
// The header carries the token either bare or with a single "Bearer " prefix,
// which is stripped. An absent header yields common.ErrorMissingToken; an
// invalid token and a subject matching no user both yield
// common.ErrorUnauthorized, so the failure causes stay indistinguishable at
// the API boundary.
func (s *UserService) Authenticate(ctx context.Context, authHeader string) (*models.User, error) {
	if authHeader == "" {
		return nil, common.ErrorMissingToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, common.BearerPrefix))

	subject, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return user, nil
}

func (s *UserService) generateAccessToken(subject string) (string, error) {
	token, err := auth.GenerateToken(subject, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
