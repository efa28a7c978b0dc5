package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfinder/service-rooms/internal/application"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

func register(t *testing.T, s *stack, username string) *application.UserDTO {
	t.Helper()
	u, err := s.accounts.Register(context.Background(), application.RegisterRequest{
		Username:        username,
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	u := register(t, s, "alice")
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)

	tests := []struct {
		name string
		req  application.RegisterRequest
		err  error
	}{
		{"duplicate username", application.RegisterRequest{Username: "alice", Password: "correct-horse", PasswordConfirm: "correct-horse"}, domain.ErrConflict},
		{"short password", application.RegisterRequest{Username: "bob", Password: "short", PasswordConfirm: "short"}, domain.ErrValidation},
		{"mismatched confirmation", application.RegisterRequest{Username: "bob", Password: "correct-horse", PasswordConfirm: "battery-staple"}, domain.ErrValidation},
		{"blank username", application.RegisterRequest{Username: "  ", Password: "correct-horse", PasswordConfirm: "correct-horse"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.accounts.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLogin_RoleSelection(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	register(t, s, "alice")
	register(t, s, "root")
	_, err := s.accounts.Promote(ctx, "root", true)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		role     string
		err      error
	}{
		{"customer signs in as customer", "alice", "correct-horse", "customer", nil},
		{"customer cannot select admin", "alice", "correct-horse", "admin", domain.ErrUnauthorized},
		{"staff signs in as admin", "root", "correct-horse", "admin", nil},
		{"staff cannot select customer", "root", "correct-horse", "customer", domain.ErrUnauthorized},
		{"wrong password", "alice", "wrong-password", "customer", domain.ErrUnauthorized},
		{"unknown user", "nobody", "correct-horse", "customer", domain.ErrUnauthorized},
		{"unknown role", "alice", "correct-horse", "owner", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.accounts.Login(ctx, application.LoginRequest{
				Username: tt.username,
				Password: tt.password,
				Role:     tt.role,
			})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token.AccessToken)
			assert.Equal(t, "Bearer", token.TokenType)
			assert.Equal(t, int64(3600), token.ExpiresIn)
			assert.Equal(t, tt.username, token.User.Username)
		})
	}
}

func TestPromoteAndSetPrivileges(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	alice := register(t, s, "alice")
	admin := s.seedUser(t, "admin", true)

	_, err := s.accounts.Promote(ctx, "nobody", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	promoted, err := s.accounts.Promote(ctx, "alice", false)
	require.NoError(t, err)
	assert.True(t, promoted.IsStaff)
	assert.False(t, promoted.IsSuperuser)

	me, err := s.accounts.Me(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, me.IsStaff)

	demoted, err := s.accounts.SetPrivileges(ctx, admin, alice.ID, application.SetPrivilegesRequest{})
	require.NoError(t, err)
	assert.False(t, demoted.IsStaff)

	_, err = s.accounts.SetPrivileges(ctx, admin, admin.UserID, application.SetPrivilegesRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	customer := s.seedUser(t, "bob", false)
	_, err = s.accounts.SetPrivileges(ctx, customer, alice.ID, application.SetPrivilegesRequest{IsStaff: true})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCloseAccount_PurgesOwnedData(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	admin := s.seedUser(t, "admin", true)
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)
	carol := s.seedUser(t, "carol", false)

	aliceRoom := s.seedRoom(t, alice)
	carolRoom := s.seedRoom(t, carol)
	incoming, err := s.bookings.CreateBooking(ctx, bob.UserID, aliceRoom)
	require.NoError(t, err)
	outgoing, err := s.bookings.CreateBooking(ctx, alice.UserID, carolRoom)
	require.NoError(t, err)
	unrelated, err := s.bookings.CreateBooking(ctx, bob.UserID, carolRoom)
	require.NoError(t, err)

	require.NoError(t, s.accounts.CloseAccount(ctx, alice.UserID))

	_, err = s.accounts.Me(ctx, alice.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.rooms.GetRoom(ctx, aliceRoom)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.bookings.GetBooking(ctx, admin, incoming.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.bookings.GetBooking(ctx, admin, outgoing.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.bookings.GetBooking(ctx, admin, unrelated.ID)
	assert.NoError(t, err)
	_, err = s.rooms.GetRoom(ctx, carolRoom)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.accounts.CloseAccount(ctx, alice.UserID), domain.ErrNotFound)
}

func TestRemoveUser(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	admin := s.seedUser(t, "admin", true)
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)

	assert.ErrorIs(t, s.accounts.RemoveUser(ctx, bob, alice.UserID), domain.ErrForbidden)
	assert.ErrorIs(t, s.accounts.RemoveUser(ctx, admin, admin.UserID), domain.ErrValidation)
	assert.ErrorIs(t, s.accounts.RemoveUser(ctx, admin, uuid.New()), domain.ErrNotFound)

	require.NoError(t, s.accounts.RemoveUser(ctx, admin, alice.UserID))
	_, err := s.accounts.Me(ctx, alice.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
