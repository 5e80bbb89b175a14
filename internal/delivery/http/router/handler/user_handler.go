// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"roster/config"
	"roster/internal/delivery/http/response"
	"roster/internal/domain/entity"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc              usecase.UserUsecase
	logger          *slog.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger, cfg *config.Config) *UserHandler {
	defaultPageSize := 10
	maxPageSize := 100
	if cfg != nil && cfg.Pagination != nil {
		if cfg.Pagination.DefaultSize > 0 {
			defaultPageSize = cfg.Pagination.DefaultSize
		}
		if cfg.Pagination.MaxSize > 0 {
			maxPageSize = cfg.Pagination.MaxSize
		}
	}

	return &UserHandler{
		uc:              uc,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// --- Request / Response DTOs ---

// userRequest carries the caller-supplied fields for create and update.
type userRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Email  string `json:"email" validate:"required,email,max=255"`
	Phone  string `json:"phone" validate:"omitempty,max=50"`
	Role   string `json:"role" validate:"required,max=50"`
	Active *bool  `json:"active"`
}

// userResponse is the external representation of a user record.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// pagedUsersResponse is one page of users plus pagination metadata.
type pagedUsersResponse struct {
	Items      []userResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalCount int64          `json:"totalCount"`
	TotalPages int64          `json:"totalPages"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []userResponse {
	result := make([]userResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}

	return result
}

// --- Handlers ---

// CreateUser handles the user creation request.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Input validation failed")
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user), "User created successfully")
}

// GetUser handles the request to fetch a single user by ID.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "User ID must be a valid UUID")
	}

	user, err := h.uc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User retrieved successfully")
}

// ListUsers handles the request to fetch every stored user without pagination.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponses(users), "Users retrieved successfully")
}

// ListUsersPage handles the paginated listing request. Absent query
// parameters fall back to page 0 and the configured default size; the size
// is capped at the configured maximum.
func (h *UserHandler) ListUsersPage(c echo.Context) error {
	page, ok := h.parseQueryInt(c, "page", 0)
	if !ok {
		return response.BadRequest(c, "INVALID_PAGE_REQUEST", "Page must be an integer")
	}

	size, ok := h.parseQueryInt(c, "size", h.defaultPageSize)
	if !ok {
		return response.BadRequest(c, "INVALID_PAGE_REQUEST", "Size must be an integer")
	}
	if size > h.maxPageSize {
		size = h.maxPageSize
	}

	result, err := h.uc.ListUsersPage(c.Request().Context(), page, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, pagedUsersResponse{
		Items:      toUserResponses(result.Users),
		Page:       result.Page,
		Size:       result.Size,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages(),
	}, "Users fetched successfully")
}

// UpdateUser handles the user update request.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "User ID must be a valid UUID")
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Input validation failed")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), id, &usecase.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User updated successfully")
}

// DeleteUser handles the user deletion request.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_USER_ID", "User ID must be a valid UUID")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	// 204 carries no body, so the usual response envelope is skipped.
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) parseQueryInt(c echo.Context, name string, fallback int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return value, true
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
