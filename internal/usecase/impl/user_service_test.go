package impl

import (
	"context"
	"testing"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	mockRepo "roster/internal/mocks/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (usecase.UserUsecase, *mockRepo.MockUserRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)
	service := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Logger:   newDiscardLogger(),
	})

	return service, userRepo
}

func TestUserService_CreateUser_Success(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, repository.ErrUserNotFound)

	assignedID := uuid.New()
	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			user.ID = assignedID
			user.CreatedAt = time.Now()
			user.UpdatedAt = user.CreatedAt

			return nil
		})

	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Name:  "Alice Example",
		Email: "alice@example.com",
		Phone: "+886-912-345-678",
		Role:  "member",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, assignedID, user.ID)
	assert.Equal(t, "Alice Example", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.Active, "active defaults to true when not supplied")
}

func TestUserService_CreateUser_ExplicitInactive(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	userRepo.EXPECT().
		FindByEmail(ctx, "bob@example.com").
		Return(nil, repository.ErrUserNotFound)

	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	inactive := false
	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Name:   "Bob Example",
		Email:  "bob@example.com",
		Role:   "member",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, user.Active)
}

func TestUserService_CreateUser_EmailAlreadyRegistered(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(newStoredUser("alice@example.com"), nil)

	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Name:  "Second Alice",
		Email: "alice@example.com",
		Role:  "member",
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestUserService_CreateUser_RepoConflictSurfaces(t *testing.T) {
	// A concurrent writer can slip in between the availability check and the
	// insert; the unique index rejects the insert and the conflict propagates.
	service, userRepo := newTestService(t)
	ctx := context.Background()

	userRepo.EXPECT().
		FindByEmail(ctx, "race@example.com").
		Return(nil, repository.ErrUserNotFound)

	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrEmailAlreadyRegistered.WrapMessage("duplicate email"))

	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Name:  "Racer",
		Email: "race@example.com",
		Role:  "member",
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestUserService_GetUserByID_Success(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := newStoredUser("alice@example.com")
	userRepo.EXPECT().
		FindByID(ctx, stored.ID).
		Return(stored, nil)

	user, err := service.GetUserByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().
		FindByID(ctx, id).
		Return(nil, repository.ErrUserNotFound)

	user, err := service.GetUserByID(ctx, id)
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_ListUsers(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := []*entity.User{
		newStoredUser("a@example.com"),
		newStoredUser("b@example.com"),
	}
	userRepo.EXPECT().
		FindAll(ctx).
		Return(stored, nil)

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_ListUsersPage_Success(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := []*entity.User{newStoredUser("a@example.com")}
	userRepo.EXPECT().
		FindPage(ctx, 2, 5).
		Return(stored, int64(11), nil)

	page, err := service.ListUsersPage(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Size)
	assert.Equal(t, int64(11), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPages())
	assert.Len(t, page.Users, 1)
}

func TestUserService_ListUsersPage_InvalidRequest(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		page int
		size int
	}{
		{name: "negative page", page: -1, size: 10},
		{name: "zero size", page: 0, size: 0},
		{name: "negative size", page: 0, size: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.ListUsersPage(ctx, tt.page, tt.size)
			require.Error(t, err)
			assert.Nil(t, page)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidPageRequest))
		})
	}
}

func TestUserService_UpdateUser_Success_EmailUnchanged(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := newStoredUser("alice@example.com")
	userRepo.EXPECT().
		FindByID(ctx, stored.ID).
		Return(stored, nil)

	// Email is unchanged, so no availability check runs. The mock would fail
	// the test on an unexpected FindByEmail call.
	userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{
		Name:  "Alice Renamed",
		Email: "alice@example.com",
		Phone: stored.Phone,
		Role:  "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.Equal(t, "Alice Renamed", user.Name)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, stored.CreatedAt, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(stored.CreatedAt))
}

func TestUserService_UpdateUser_Success_EmailChanged(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := newStoredUser("alice@example.com")
	userRepo.EXPECT().
		FindByID(ctx, stored.ID).
		Return(stored, nil)

	userRepo.EXPECT().
		FindByEmail(ctx, "alice+new@example.com").
		Return(nil, repository.ErrUserNotFound)

	userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{
		Name:  stored.Name,
		Email: "alice+new@example.com",
		Phone: stored.Phone,
		Role:  stored.Role,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice+new@example.com", user.Email)
}

func TestUserService_UpdateUser_EmailTakenByOther(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := newStoredUser("alice@example.com")
	holder := newStoredUser("bob@example.com")

	userRepo.EXPECT().
		FindByID(ctx, stored.ID).
		Return(stored, nil)

	userRepo.EXPECT().
		FindByEmail(ctx, "bob@example.com").
		Return(holder, nil)

	user, err := service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{
		Name:  stored.Name,
		Email: "bob@example.com",
		Phone: stored.Phone,
		Role:  stored.Role,
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().
		FindByID(ctx, id).
		Return(nil, repository.ErrUserNotFound)

	user, err := service.UpdateUser(ctx, id, &usecase.UpdateUserInput{
		Name:  "Ghost",
		Email: "ghost@example.com",
		Role:  "member",
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_UpdateUser_ActiveNilKeepsStoredValue(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()

	stored := newStoredUser("alice@example.com")
	stored.Active = false

	userRepo.EXPECT().
		FindByID(ctx, stored.ID).
		Return(stored, nil)

	userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := service.UpdateUser(ctx, stored.ID, &usecase.UpdateUserInput{
		Name:  stored.Name,
		Email: stored.Email,
		Phone: stored.Phone,
		Role:  stored.Role,
	})
	require.NoError(t, err)
	assert.False(t, user.Active)
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().
		ExistsByID(ctx, id).
		Return(true, nil)

	userRepo.EXPECT().
		DeleteByID(ctx, id).
		Return(nil)

	err := service.DeleteUser(ctx, id)
	require.NoError(t, err)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	service, userRepo := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	userRepo.EXPECT().
		ExistsByID(ctx, id).
		Return(false, nil)

	err := service.DeleteUser(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
