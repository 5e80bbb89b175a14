package impl

import (
	"io"
	"log/slog"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStoredUser(email string) *entity.User {
	now := time.Now().Add(-time.Hour)

	return &entity.User{
		ID:        uuid.New(),
		Name:      "Alice Example",
		Email:     email,
		Phone:     "+886-912-345-678",
		Role:      "member",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
