package repository

import (
	"context"
	"errors"

	"github.com/explorea/countries-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert violates the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateFavorites replaces the user's whole favorites collection.
	// The write is atomic per row but is not isolated against a
	// concurrent read-modify-write of the same user (last write wins).
	UpdateFavorites(ctx context.Context, id string, favorites []entity.Favorite) error
}
