package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user with the given email, or nil when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the user with the given id, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
