package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	isStaff      bool
	isSuperuser  bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new, non-privileged account. passwordHash must already be hashed.
func NewUser(username, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, domain.NewValidationError("username must be at most 150 characters")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ValidatePassword checks the password policy and its confirmation.
func ValidatePassword(password, confirmation string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.NewValidationError("password must be at least 8 characters")
	}
	if password != confirmation {
		return domain.NewValidationError("the two password fields didn't match")
	}
	return nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	username, passwordHash string,
	isStaff, isSuperuser bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		isStaff:      isStaff,
		isSuperuser:  isSuperuser,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsStaff() bool        { return u.isStaff }
func (u *User) IsSuperuser() bool    { return u.isSuperuser }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Privileged reports whether the account has staff or superuser capability.
func (u *User) Privileged() bool {
	return u.isStaff || u.isSuperuser
}

// Actor returns the account as an acting identity.
func (u *User) Actor() Actor {
	return Actor{UserID: u.id, Privileged: u.Privileged()}
}

// SetPrivileges replaces the staff and superuser flags.
func (u *User) SetPrivileges(staff, superuser bool) {
	u.isStaff = staff
	u.isSuperuser = superuser
	u.updatedAt = time.Now().UTC()
}
