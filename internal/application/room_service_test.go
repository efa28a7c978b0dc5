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

func TestCreateRoom(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	alice := s.seedUser(t, "alice", false)

	t.Run("with images", func(t *testing.T) {
		req := roomRequest("Flat near Lakeside", "Pokhara", "Double")
		req.Images = []string{"rooms/a.jpg", "rooms/b.jpg"}

		room, err := s.rooms.CreateRoom(ctx, alice.UserID, req)
		require.NoError(t, err)
		assert.Equal(t, alice.UserID, room.OwnerID)
		assert.Equal(t, "2026-11-01", room.AvailableFrom)
		require.Len(t, room.Images, 2)

		stored, err := s.rooms.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat near Lakeside", stored.Title)
		assert.Equal(t, "Pokhara", stored.Location)
		assert.Equal(t, "2026-11-01", stored.AvailableFrom)
		assert.Len(t, stored.Images, 2)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*application.CreateRoomRequest)
		}{
			{"unknown location", func(r *application.CreateRoomRequest) { r.Location = "Lalitpur" }},
			{"unknown room type", func(r *application.CreateRoomRequest) { r.RoomType = "Suite" }},
			{"negative price", func(r *application.CreateRoomRequest) { r.Price = -1 }},
			{"bad date", func(r *application.CreateRoomRequest) { r.AvailableFrom = "01/11/2026" }},
			{"blank title", func(r *application.CreateRoomRequest) { r.Title = "  " }},
			{"blank image", func(r *application.CreateRoomRequest) { r.Images = []string{""} }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := roomRequest("Room", "Kathmandu", "Single")
				tt.mutate(&req)
				_, err := s.rooms.CreateRoom(ctx, alice.UserID, req)
				assert.ErrorIs(t, err, domain.ErrValidation)
			})
		}
	})
}

func TestGetRoom_NotFound(t *testing.T) {
	s := newStack(t)

	_, err := s.rooms.GetRoom(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRooms_Filters(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)

	for _, r := range []struct {
		owner    uuid.UUID
		location string
		roomType string
	}{
		{alice.UserID, "Kathmandu", "Single"},
		{alice.UserID, "Kathmandu", "Shared"},
		{bob.UserID, "Pokhara", "Single"},
		{bob.UserID, "Biratnagar", "Double"},
	} {
		_, err := s.rooms.CreateRoom(ctx, r.owner, roomRequest("Room", r.location, r.roomType))
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query application.RoomQuery
		want  int64
	}{
		{"no filter", application.RoomQuery{}, 4},
		{"location is case-insensitive substring", application.RoomQuery{Location: "MAND"}, 2},
		{"room type is exact", application.RoomQuery{RoomType: "Single"}, 2},
		{"combined", application.RoomQuery{Location: "kath", RoomType: "Single"}, 1},
		{"no match", application.RoomQuery{Location: "Lalitpur"}, 0},
		{"wildcards are literal", application.RoomQuery{Location: "%"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.rooms.ListRooms(ctx, tt.query, 1, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.want, page.Total)
			assert.Len(t, page.Items, int(tt.want))
		})
	}

	t.Run("invalid room type", func(t *testing.T) {
		_, err := s.rooms.ListRooms(ctx, application.RoomQuery{RoomType: "Suite"}, 1, 20)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("owner rooms", func(t *testing.T) {
		page, err := s.rooms.ListOwnerRooms(ctx, bob.UserID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		for _, room := range page.Items {
			assert.Equal(t, bob.UserID, room.OwnerID)
		}
	})
}

func TestUpdateRoom(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	admin := s.seedUser(t, "admin", true)
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)

	create := roomRequest("Room", "Kathmandu", "Single")
	create.Images = []string{"old.jpg"}
	room, err := s.rooms.CreateRoom(ctx, alice.UserID, create)
	require.NoError(t, err)

	update := application.UpdateRoomRequest{
		RoomRequest:    roomRequest("Renovated room", "Pokhara", "Double").RoomRequest,
		DeleteImageIDs: []uuid.UUID{room.Images[0].ID},
		AddImages:      []string{"new-1.jpg", "new-2.jpg"},
	}

	t.Run("other users see not found", func(t *testing.T) {
		_, err := s.rooms.UpdateRoom(ctx, bob, room.ID, update)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("owner replaces attributes and images", func(t *testing.T) {
		updated, err := s.rooms.UpdateRoom(ctx, alice, room.ID, update)
		require.NoError(t, err)
		assert.Equal(t, "Renovated room", updated.Title)
		assert.Equal(t, "Pokhara", updated.Location)
		assert.Equal(t, "Double", updated.RoomType)
		require.Len(t, updated.Images, 2)
		paths := []string{updated.Images[0].Path, updated.Images[1].Path}
		assert.ElementsMatch(t, []string{"new-1.jpg", "new-2.jpg"}, paths)
	})

	t.Run("staff may edit any room", func(t *testing.T) {
		req := application.UpdateRoomRequest{RoomRequest: roomRequest("Checked by staff", "Pokhara", "Double").RoomRequest}
		updated, err := s.rooms.UpdateRoom(ctx, admin, room.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Checked by staff", updated.Title)
		assert.Equal(t, alice.UserID, updated.OwnerID)
	})
}

func TestRoomImages(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)
	roomID := s.seedRoom(t, alice)

	_, err := s.rooms.AddImage(ctx, bob, roomID, application.AddImageRequest{Path: "x.jpg"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	img, err := s.rooms.AddImage(ctx, alice, roomID, application.AddImageRequest{Path: "x.jpg"})
	require.NoError(t, err)

	room, err := s.rooms.GetRoom(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, room.Images, 1)
	assert.Equal(t, img.ID, room.Images[0].ID)

	assert.ErrorIs(t, s.rooms.DeleteImage(ctx, bob, roomID, img.ID), domain.ErrNotFound)
	require.NoError(t, s.rooms.DeleteImage(ctx, alice, roomID, img.ID))
	assert.ErrorIs(t, s.rooms.DeleteImage(ctx, alice, roomID, img.ID), domain.ErrNotFound)

	room, err = s.rooms.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.Empty(t, room.Images)
}

func TestDeleteRoom_RemovesBookings(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	admin := s.seedUser(t, "admin", true)
	alice := s.seedUser(t, "alice", false)
	bob := s.seedUser(t, "bob", false)
	roomID := s.seedRoom(t, alice)

	bk, err := s.bookings.CreateBooking(ctx, bob.UserID, roomID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.rooms.DeleteRoom(ctx, bob, roomID), domain.ErrNotFound)
	require.NoError(t, s.rooms.DeleteRoom(ctx, alice, roomID))

	_, err = s.rooms.GetRoom(ctx, roomID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.bookings.GetBooking(ctx, admin, bk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
