package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type CreateParams struct {
	Name         string
	Email        string
	PasswordHash string
}

type Repository interface {
	// GetByEmail returns ErrNotFound when no user has the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create inserts a user. The unique index on email is the authoritative
	// duplicate guard: violations surface as ErrEmailTaken.
	Create(ctx context.Context, params CreateParams) (*User, error)
}
