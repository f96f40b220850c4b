// Package common defines sentinel errors shared across the service layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrorUnauthorized covers every invalid-credential cause
	// (bad token, unknown subject, wrong password); the causes are never
	// distinguishable at the API boundary.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorMissingToken = errors.New("missing token")
	ErrorInvalidToken = errors.New("invalid token")

	// Account errors.
	ErrorAlreadyRegistered = errors.New("user already registered")

	// Attachment errors.
	ErrorAttachmentsNotConfigured = errors.New("attachment storage not configured")
)
