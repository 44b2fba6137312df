package users

import (
	"context"
	"errors"
)

// ErrEmailTaken indicates a registration attempt with an existing email.
var ErrEmailTaken = errors.New("email already registered")

// Repository port (interface for persistence)
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id UserID) (*User, error)
}
