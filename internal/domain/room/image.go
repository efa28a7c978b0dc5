package room

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// Image is a picture attached to a room. Path is the stored location of the
// uploaded file (relative media path or absolute URL).
type Image struct {
	id        uuid.UUID
	roomID    uuid.UUID
	path      string
	createdAt time.Time
}

// NewImage creates a new image for roomID.
func NewImage(roomID uuid.UUID, path string) (*Image, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, domain.NewValidationError("image path is required")
	}
	if len(path) > 500 {
		return nil, domain.NewValidationError("image path must be at most 500 characters")
	}
	return &Image{
		id:        uuid.New(),
		roomID:    roomID,
		path:      path,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructImage rebuilds an Image from persistence.
func ReconstructImage(id, roomID uuid.UUID, path string, createdAt time.Time) *Image {
	return &Image{id: id, roomID: roomID, path: path, createdAt: createdAt}
}

// Getters.
func (i *Image) ID() uuid.UUID        { return i.id }
func (i *Image) RoomID() uuid.UUID    { return i.roomID }
func (i *Image) Path() string         { return i.path }
func (i *Image) CreatedAt() time.Time { return i.createdAt }
