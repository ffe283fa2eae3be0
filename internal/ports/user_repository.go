package ports

import (
	"context"
	"distance-service/internal/domain"
)

// Port: a boundary for user account storage.
type UserRepository interface {
	// Store a new user. Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *domain.User) error
	// Returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
