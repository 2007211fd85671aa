// Package models holds the server-side domain types shared by
// repositories and services.
package models

import "time"

// User is a row of the identity store. PasswordHash is a bcrypt hash;
// the plaintext password never leaves the login request.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Group is a named group of users. Tokens carry group IDs, not names.
type Group struct {
	ID   int64
	Name string
}
