// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single managed record of the service.
// ID and CreatedAt are assigned by the store at creation time and never change;
// Email must be unique among all stored users.
type User struct {
	ID        uuid.UUID // The unique identifier for the user, generated by the store.
	Name      string    // The user's display name or real name.
	Email     string    // The user's contact email, unique across all stored users.
	Phone     string    // Optional contact phone number.
	Role      string    // The user's role label, e.g. "admin" or "member".
	Active    bool      // Whether the account is active. Defaults to true at creation.
	CreatedAt time.Time // Timestamp of when this user record was created.
	UpdatedAt time.Time // Timestamp of the last modification to this record.
}

// UserUpdate carries the full set of new field values for an update.
// A nil Active leaves the stored value untouched.
type UserUpdate struct {
	Name   string
	Email  string
	Phone  string
	Role   string
	Active *bool
}

// ApplyUpdate returns a new snapshot of the user with the update applied and
// UpdatedAt refreshed to now. The receiver is not modified; ID and CreatedAt
// are carried over unchanged.
func (u User) ApplyUpdate(update *UserUpdate, now time.Time) User {
	next := u
	next.Name = update.Name
	next.Email = update.Email
	next.Phone = update.Phone
	next.Role = update.Role
	if update.Active != nil {
		next.Active = *update.Active
	}
	next.UpdatedAt = now

	return next
}
