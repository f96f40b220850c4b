package models

import "time"

// User is an account record. Usernames are globally unique; the password is
// stored only as a bcrypt hash.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
