package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roster/config"
	"roster/internal/delivery/http/validator"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	mockUC "roster/internal/mocks/usecase"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*UserHandler, *mockUC.MockUserUsecase, *echo.Echo) {
	uc := mockUC.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Pagination: &config.PaginationConfig{
			DefaultSize: 10,
			MaxSize:     100,
		},
	}
	handler := NewUserHandler(uc, logger, cfg)

	e := echo.New()
	e.Validator = validator.New()

	return handler, uc, e
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func newStoredUser(email string) *entity.User {
	now := time.Now()

	return &entity.User{
		ID:        uuid.New(),
		Name:      "Alice Example",
		Email:     email,
		Role:      "member",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserHandler_CreateUser_Success(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	stored := newStoredUser("alice@example.com")
	uc.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*usecase.CreateUserInput")).
		Return(stored, nil)

	req := newJSONRequest(http.MethodPost, "/api/users",
		`{"name":"Alice Example","email":"alice@example.com","role":"member"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.CreateUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.Contains(t, rec.Body.String(), "User created successfully")
}

func TestUserHandler_CreateUser_ValidationFailure(t *testing.T) {
	handler, _, e := newTestHandler(t)

	// Missing required email; the usecase must never be reached.
	req := newJSONRequest(http.MethodPost, "/api/users",
		`{"name":"Alice Example","role":"member"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.CreateUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestUserHandler_CreateUser_ConflictPropagates(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	uc.EXPECT().
		CreateUser(mock.Anything, mock.AnythingOfType("*usecase.CreateUserInput")).
		Return(nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered"))

	req := newJSONRequest(http.MethodPost, "/api/users",
		`{"name":"Alice Example","email":"alice@example.com","role":"member"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreateUser(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	handler, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.GetUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_USER_ID")
}

func TestUserHandler_GetUser_Success(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	stored := newStoredUser("alice@example.com")
	uc.EXPECT().
		GetUserByID(mock.Anything, stored.ID).
		Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+stored.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	require.NoError(t, handler.GetUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), stored.ID.String())
}

func TestUserHandler_GetUser_NotFoundPropagates(t *testing.T) {
	handler, uc, e := newTestHandler(t)
	id := uuid.New()

	uc.EXPECT().
		GetUserByID(mock.Anything, id).
		Return(nil, domainerrors.ErrUserNotFound.WrapMessage("user not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := handler.GetUser(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserHandler_ListUsersPage_DefaultsApplied(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	uc.EXPECT().
		ListUsersPage(mock.Anything, 0, 10).
		Return(&usecase.UserPage{
			Users:      []*entity.User{newStoredUser("alice@example.com")},
			Page:       0,
			Size:       10,
			TotalCount: 1,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.ListUsersPage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCount":1`)
	assert.Contains(t, rec.Body.String(), `"totalPages":1`)
}

func TestUserHandler_ListUsersPage_SizeCapped(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	uc.EXPECT().
		ListUsersPage(mock.Anything, 0, 100).
		Return(&usecase.UserPage{Users: []*entity.User{}, Page: 0, Size: 100}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users?size=5000", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.ListUsersPage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_ListUsersPage_NonNumericParam(t *testing.T) {
	handler, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.ListUsersPage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PAGE_REQUEST")
}

func TestUserHandler_UpdateUser_Success(t *testing.T) {
	handler, uc, e := newTestHandler(t)

	stored := newStoredUser("alice@example.com")
	uc.EXPECT().
		UpdateUser(mock.Anything, stored.ID, mock.AnythingOfType("*usecase.UpdateUserInput")).
		Return(stored, nil)

	req := newJSONRequest(http.MethodPut, "/api/users/"+stored.ID.String(),
		`{"name":"Alice Example","email":"alice@example.com","role":"member"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID.String())

	require.NoError(t, handler.UpdateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User updated successfully")
}

func TestUserHandler_DeleteUser_Success(t *testing.T) {
	handler, uc, e := newTestHandler(t)
	id := uuid.New()

	uc.EXPECT().
		DeleteUser(mock.Anything, id).
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, handler.DeleteUser(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	_, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
