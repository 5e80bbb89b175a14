package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_ApplyUpdate_OverwritesFields(t *testing.T) {
	created := time.Now().Add(-2 * time.Hour)
	original := User{
		ID:        uuid.New(),
		Name:      "Alice Example",
		Email:     "alice@example.com",
		Phone:     "+886-912-345-678",
		Role:      "member",
		Active:    true,
		CreatedAt: created,
		UpdatedAt: created,
	}

	now := time.Now()
	inactive := false
	updated := original.ApplyUpdate(&UserUpdate{
		Name:   "Alice Renamed",
		Email:  "alice+new@example.com",
		Phone:  "+886-987-654-321",
		Role:   "admin",
		Active: &inactive,
	}, now)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, "alice+new@example.com", updated.Email)
	assert.Equal(t, "+886-987-654-321", updated.Phone)
	assert.Equal(t, "admin", updated.Role)
	assert.False(t, updated.Active)
	assert.Equal(t, now, updated.UpdatedAt)
}

func TestUser_ApplyUpdate_NilActiveKeepsStoredValue(t *testing.T) {
	original := User{
		ID:     uuid.New(),
		Name:   "Alice Example",
		Email:  "alice@example.com",
		Role:   "member",
		Active: false,
	}

	updated := original.ApplyUpdate(&UserUpdate{
		Name:  original.Name,
		Email: original.Email,
		Role:  original.Role,
	}, time.Now())

	assert.False(t, updated.Active)
}

func TestUser_ApplyUpdate_DoesNotMutateReceiver(t *testing.T) {
	original := User{
		ID:     uuid.New(),
		Name:   "Alice Example",
		Email:  "alice@example.com",
		Role:   "member",
		Active: true,
	}

	_ = original.ApplyUpdate(&UserUpdate{
		Name:  "Someone Else",
		Email: "other@example.com",
		Role:  "admin",
	}, time.Now())

	assert.Equal(t, "Alice Example", original.Name)
	assert.Equal(t, "alice@example.com", original.Email)
	assert.Equal(t, "member", original.Role)
}
