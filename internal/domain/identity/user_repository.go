package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByFirebaseID(ctx context.Context, firebaseID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, user *User) error
	Search(ctx context.Context, query string, limit int) ([]User, error)
}

// RoleRepository defines persistence operations for user roles
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*UserRole, error)
	// FindOrCreateByName returns the role with the given name, creating
	// it when it does not exist yet.
	FindOrCreateByName(ctx context.Context, name, description string) (*UserRole, error)
}
