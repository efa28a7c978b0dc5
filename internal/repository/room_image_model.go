package repository

import (
	"time"

	"github.com/google/uuid"

	roomDomain "github.com/roomfinder/service-rooms/internal/domain/room"
)

// RoomImageModel is the GORM model for the room_images table.
type RoomImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Path      string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (RoomImageModel) TableName() string { return "room_images" }

func toImageModel(img *roomDomain.Image) RoomImageModel {
	return RoomImageModel{
		ID:        img.ID(),
		RoomID:    img.RoomID(),
		Path:      img.Path(),
		CreatedAt: img.CreatedAt(),
	}
}

func toImageDomain(m *RoomImageModel) *roomDomain.Image {
	return roomDomain.ReconstructImage(m.ID, m.RoomID, m.Path, m.CreatedAt)
}
