package models

import "time"

// Document is a text document owned by exactly one user. OwnerID is set at
// creation and never changes. AttachmentKey holds the object-storage key of
// the optional binary attachment; empty means no attachment.
type Document struct {
	ID            string
	Title         string
	Content       string
	OwnerID       string
	AttachmentKey string
	CreatedAt     time.Time
}
