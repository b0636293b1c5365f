package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AdminUser
var (
	ErrEmptyAdminUserID    = errors.New("admin user ID cannot be empty")
	ErrEmptyAdminUserEmail = errors.New("admin user email cannot be empty")
)

// AdminUser is an operator account for the governance console. Only the
// bcrypt hash of the password is ever stored.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	HashedPass   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks if the AdminUser has valid data.
func (u *AdminUser) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyAdminUserID
	}

	if u.Email == "" {
		return ErrEmptyAdminUserEmail
	}

	return nil
}
