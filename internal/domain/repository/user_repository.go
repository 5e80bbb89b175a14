// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
//
// The store owns serialization: the unique index on email is the final
// guarantor of the uniqueness invariant under concurrent writers, so Create
// and Update must surface a unique-constraint violation as a conflict error.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity, assigning its ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// FindAll retrieves every stored user in stable (ID) order.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindPage retrieves one zero-based page of users in stable (ID) order,
	// along with the total number of stored users.
	FindPage(ctx context.Context, page, size int) ([]*entity.User, int64, error)

	// ExistsByID reports whether a user with the given ID is stored.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes a user permanently. Callers check existence first;
	// deleting an absent ID returns ErrUserNotFound.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
