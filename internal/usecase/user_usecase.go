// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a new user.
// Field-level validation (required fields, well-formed email) happens at the
// delivery boundary before this input reaches the use case.
type CreateUserInput struct {
	Name   string
	Email  string
	Phone  string
	Role   string
	Active *bool // nil means "not supplied"; creation defaults to active.
}

// UpdateUserInput defines the full set of new field values for an update.
// A nil Active keeps the stored value.
type UpdateUserInput struct {
	Name   string
	Email  string
	Phone  string
	Role   string
	Active *bool
}

// --- Output DTOs ---

// UserPage is one page of users plus the pagination totals the caller
// needs to build paging metadata.
type UserPage struct {
	Users      []*entity.User
	Page       int
	Size       int
	TotalCount int64
}

// TotalPages derives the number of pages from the total count and page size.
func (p *UserPage) TotalPages() int64 {
	if p.Size <= 0 {
		return 0
	}

	return (p.TotalCount + int64(p.Size) - 1) / int64(p.Size)
}

// UserUsecase defines the interface for user lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// CreateUser creates a new user. Fails with ErrEmailAlreadyRegistered when
	// the email is already held by a stored user; no record is written then.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)

	// GetUserByID retrieves a user. Fails with ErrUserNotFound when absent.
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListUsers returns every stored user in store order.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// ListUsersPage returns one zero-based page of users with the total count.
	// Fails with ErrInvalidPageRequest when page < 0 or size <= 0.
	ListUsersPage(ctx context.Context, page, size int) (*UserPage, error)

	// UpdateUser overwrites a user's fields from input. Fails with
	// ErrUserNotFound when absent and with ErrEmailAlreadyRegistered when the
	// new email belongs to a different user; the record is untouched on failure.
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes a user permanently. Fails with ErrUserNotFound when absent.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
