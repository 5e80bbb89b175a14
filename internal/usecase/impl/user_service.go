// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface. It owns the lifecycle of
// user records: creation, retrieval, update, deletion and pagination, including
// email-uniqueness enforcement and not-found detection. It holds no state of
// its own across calls; every operation re-reads current store state.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser creates a new user record after verifying the email is free.
// The find-by-email check is a fast-path rejection; the store's unique index
// remains the final guarantor under concurrent writers, and a unique-constraint
// violation raised during Create surfaces as the same conflict error.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Creating user", slog.String("email", input.Email))

	existing, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if existing != nil {
		srv.log(ctx).Warn("Email already registered", slog.String("email", input.Email))

		return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	newUser := &entity.User{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   input.Role,
		Active: active,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User created", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// GetUserByID retrieves a single user record. No side effects.
func (srv *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Debug("Retrieving user", slog.Any("userID", id))

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User not found", slog.Any("userID", id))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// ListUsers returns every stored user in store order.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	srv.log(ctx).Debug("Retrieving all users")

	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find all users")
	}

	srv.log(ctx).Debug("Retrieved users", slog.Int("count", len(users)))

	return users, nil
}

// ListUsersPage returns one zero-based page of users plus the total count.
// It delegates ordering and counting to the store and applies no filtering.
func (srv *userService) ListUsersPage(ctx context.Context, page, size int) (*usecase.UserPage, error) {
	if page < 0 || size <= 0 {
		srv.log(ctx).Warn("Invalid page request", slog.Int("page", page), slog.Int("size", size))

		return nil, domainerrors.ErrInvalidPageRequest.WrapMessage("page must be >= 0 and size must be > 0")
	}

	srv.log(ctx).Debug("Retrieving users page", slog.Int("page", page), slog.Int("size", size))

	users, total, err := srv.userRepo.FindPage(ctx, page, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users page")
	}

	return &usecase.UserPage{
		Users:      users,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

// UpdateUser overwrites a user's mutable fields from input. The email
// uniqueness check runs only when the email actually changes, so an unchanged
// email can never conflict with the record itself. On any failure the stored
// record is left completely unmodified.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user", slog.Any("userID", id))

	existing, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Cannot update, user not found", slog.Any("userID", id))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user for update")
	}

	if input.Email != existing.Email {
		holder, err := srv.userRepo.FindByEmail(ctx, input.Email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to check email availability")
		}
		if holder != nil {
			srv.log(ctx).Warn("Cannot update, email already registered",
				slog.Any("userID", id), slog.String("email", input.Email))

			return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		}
	}

	updated := existing.ApplyUpdate(&entity.UserUpdate{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   input.Role,
		Active: input.Active,
	}, time.Now())

	if err := srv.userRepo.Update(ctx, &updated); err != nil {
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Debug("User updated", slog.Any("userID", updated.ID))

	return &updated, nil
}

// DeleteUser removes a user permanently. The existence check distinguishes
// "nothing to delete" from a successful deletion so the caller receives a
// not-found signal instead of a silent no-op.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting user", slog.Any("userID", id))

	exists, err := srv.userRepo.ExistsByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to check user existence")
	}
	if !exists {
		srv.log(ctx).Warn("Cannot delete, user not found", slog.Any("userID", id))

		return domainerrors.ErrUserNotFound.WrapMessage("user not found")
	}

	if err := srv.userRepo.DeleteByID(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Debug("User deleted", slog.Any("userID", id))

	return nil
}
