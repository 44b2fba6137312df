package users

import "time"

// UserID identifier type
type UserID string

// User account. PasswordHash is a bcrypt hash, never the raw password.
type User struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
