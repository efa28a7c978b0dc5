package room_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfinder/service-rooms/internal/domain/room"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

func validDetails() room.Details {
	return room.Details{
		Title:         "Sunny single near Thamel",
		Description:   "Quiet room with a balcony.",
		Price:         12000,
		Location:      room.LocationKathmandu,
		RoomType:      room.RoomTypeSingle,
		OwnerName:     "Alice",
		ContactNumber: "+9779800000000",
		AvailableFrom: time.Date(2026, 11, 1, 15, 30, 0, 0, time.UTC),
	}
}

func TestNewRoom(t *testing.T) {
	owner := uuid.New()

	r, err := room.NewRoom(owner, validDetails())
	require.NoError(t, err)

	assert.True(t, r.IsOwnedBy(owner))
	assert.False(t, r.IsOwnedBy(uuid.New()))
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), r.AvailableFrom())
}

func TestNewRoom_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *room.Details)
	}{
		{"missing title", func(d *room.Details) { d.Title = "  " }},
		{"long title", func(d *room.Details) { d.Title = strings.Repeat("x", 201) }},
		{"missing description", func(d *room.Details) { d.Description = "" }},
		{"negative price", func(d *room.Details) { d.Price = -1 }},
		{"unknown location", func(d *room.Details) { d.Location = "Lalitpur" }},
		{"unknown type", func(d *room.Details) { d.RoomType = "Suite" }},
		{"long contact", func(d *room.Details) { d.ContactNumber = "+97798000000000000" }},
		{"missing date", func(d *room.Details) { d.AvailableFrom = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := room.NewRoom(uuid.New(), d)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNewRoom_ZeroPriceAllowed(t *testing.T) {
	d := validDetails()
	d.Price = 0
	_, err := room.NewRoom(uuid.New(), d)
	assert.NoError(t, err)
}

func TestRoom_UpdateKeepsOldDetailsOnError(t *testing.T) {
	r, err := room.NewRoom(uuid.New(), validDetails())
	require.NoError(t, err)

	bad := validDetails()
	bad.Price = -5
	assert.Error(t, r.Update(bad))
	assert.Equal(t, int64(12000), r.Price())

	good := validDetails()
	good.RoomType = room.RoomTypeShared
	require.NoError(t, r.Update(good))
	assert.Equal(t, room.RoomTypeShared, r.RoomType())
}

func TestNewImage(t *testing.T) {
	_, err := room.NewImage(uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	img, err := room.NewImage(uuid.New(), " rooms/a.jpg ")
	require.NoError(t, err)
	assert.Equal(t, "rooms/a.jpg", img.Path())
}

func TestRoom_AttachImage(t *testing.T) {
	r, err := room.NewRoom(uuid.New(), validDetails())
	require.NoError(t, err)

	img, err := r.AttachImage("rooms/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, r.ID(), img.RoomID())
	require.Len(t, r.Images(), 1)

	_, err = r.AttachImage("  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, r.Images(), 1)
}

func TestParseEnums(t *testing.T) {
	_, err := room.ParseLocation("Pokhara")
	assert.NoError(t, err)
	_, err = room.ParseLocation("pokhara")
	assert.Error(t, err)

	_, err = room.ParseRoomType("Double")
	assert.NoError(t, err)
	_, err = room.ParseRoomType("Triple")
	assert.Error(t, err)
}
