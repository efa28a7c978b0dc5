package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
	UpdatePrivileges(ctx context.Context, user *User) error

	// DeleteCascade removes the user together with the user's rooms, their images,
	// bookings on those rooms, and bookings made by the user.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
