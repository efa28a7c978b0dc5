package room

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows room listings. Empty fields match everything.
type Filter struct {
	// Location matches case-insensitively as a substring.
	Location string
	// RoomType matches exactly.
	RoomType RoomType
	OwnerID  *uuid.UUID
}

// TypeCount is the number of rooms per room type.
type TypeCount struct {
	RoomType RoomType
	Count    int64
}

// LocationCount is the number of rooms per location.
type LocationCount struct {
	Location Location
	Count    int64
}

// RoomRepository defines the persistence contract for rooms and their images.
type RoomRepository interface {
	// FindByID retrieves a room with its images.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// List retrieves rooms matching filter, newest first, with pagination.
	List(ctx context.Context, filter Filter, page, limit int) ([]*Room, int64, error)

	// Save persists a new room and its images.
	Save(ctx context.Context, room *Room) error

	// Update persists changed listing attributes, removes removeImageIDs and
	// attaches addImages atomically.
	Update(ctx context.Context, room *Room, removeImageIDs []uuid.UUID, addImages []*Image) error

	// Delete removes the room together with its images and bookings.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddImages attaches images to an existing room.
	AddImages(ctx context.Context, images ...*Image) error

	// DeleteImages removes the listed images of a room. Ids of other rooms are ignored.
	DeleteImages(ctx context.Context, roomID uuid.UUID, imageIDs ...uuid.UUID) (int64, error)

	// CountByType returns room counts per room type.
	CountByType(ctx context.Context) ([]TypeCount, error)

	// CountByLocation returns room counts per location.
	CountByLocation(ctx context.Context) ([]LocationCount, error)
}
