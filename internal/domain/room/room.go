package room

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// Details are the owner-editable attributes of a listing.
type Details struct {
	Title         string
	Description   string
	Price         int64
	Location      Location
	RoomType      RoomType
	OwnerName     string
	ContactNumber string
	AvailableFrom time.Time
}

// Validate checks the listing attributes.
func (d Details) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(d.Title) > 200 {
		return domain.NewValidationError("title must be at most 200 characters")
	}
	if strings.TrimSpace(d.Description) == "" {
		return domain.NewValidationError("description is required")
	}
	if d.Price < 0 {
		return domain.NewValidationError("price must not be negative")
	}
	if !d.Location.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid location: %s", d.Location))
	}
	if !d.RoomType.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid room type: %s", d.RoomType))
	}
	if utf8.RuneCountInString(d.OwnerName) > 100 {
		return domain.NewValidationError("owner name must be at most 100 characters")
	}
	if utf8.RuneCountInString(d.ContactNumber) > 15 {
		return domain.NewValidationError("contact number must be at most 15 characters")
	}
	if d.AvailableFrom.IsZero() {
		return domain.NewValidationError("available from date is required")
	}
	return nil
}

// Room is the aggregate root for a rentable listing. It is owned by exactly one user.
type Room struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	details   Details
	images    []*Image
	createdAt time.Time
	updatedAt time.Time
}

// NewRoom creates a new listing owned by ownerID.
func NewRoom(ownerID uuid.UUID, details Details) (*Room, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	details = normalize(details)
	if err := details.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Room{
		id:        uuid.New(),
		ownerID:   ownerID,
		details:   details,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(id, ownerID uuid.UUID, details Details, images []*Image, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:        id,
		ownerID:   ownerID,
		details:   details,
		images:    images,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID            { return r.id }
func (r *Room) OwnerID() uuid.UUID       { return r.ownerID }
func (r *Room) Details() Details         { return r.details }
func (r *Room) Title() string            { return r.details.Title }
func (r *Room) Price() int64             { return r.details.Price }
func (r *Room) Location() Location       { return r.details.Location }
func (r *Room) RoomType() RoomType       { return r.details.RoomType }
func (r *Room) AvailableFrom() time.Time { return r.details.AvailableFrom }
func (r *Room) Images() []*Image         { return r.images }
func (r *Room) CreatedAt() time.Time     { return r.createdAt }
func (r *Room) UpdatedAt() time.Time     { return r.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the room belongs to the given user.
func (r *Room) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

// AttachImage adds a new image to the room and returns it.
func (r *Room) AttachImage(path string) (*Image, error) {
	img, err := NewImage(r.id, path)
	if err != nil {
		return nil, err
	}
	r.images = append(r.images, img)
	return img, nil
}

// Update replaces the listing attributes.
func (r *Room) Update(details Details) error {
	details = normalize(details)
	if err := details.Validate(); err != nil {
		return err
	}
	r.details = details
	r.updatedAt = time.Now().UTC()
	return nil
}

func normalize(d Details) Details {
	d.Title = strings.TrimSpace(d.Title)
	d.OwnerName = strings.TrimSpace(d.OwnerName)
	d.ContactNumber = strings.TrimSpace(d.ContactNumber)
	if !d.AvailableFrom.IsZero() {
		y, m, day := d.AvailableFrom.Date()
		d.AvailableFrom = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return d
}
