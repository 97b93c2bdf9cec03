package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Normalized email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt of the SHA-256 hex digest
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
