package booking

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows booking listings.
type ListFilter struct {
	RoomID      *uuid.UUID
	UserID      *uuid.UUID
	RoomOwnerID *uuid.UUID
	Status      *BookingStatus
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDAndUser retrieves a booking only if it was requested by userID.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Booking, error)

	// List retrieves bookings matching filter, newest first, with pagination.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// ExistsForRoomWithStatus reports whether any booking for roomID has status.
	ExistsForRoomWithStatus(ctx context.Context, roomID uuid.UUID, status BookingStatus) (bool, error)

	// ExistsForRoomAndUser reports whether userID has any booking for roomID.
	ExistsForRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (bool, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[BookingStatus]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStatus persists a status change. It fails with a conflict if the stored
	// status is no longer expected.
	UpdateStatus(ctx context.Context, booking *Booking, expected BookingStatus) error

	// Delete removes a booking.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithinRoomLock runs fn in a transaction that holds an exclusive lock on the
	// room row, serializing all check-then-write sequences for that room. The
	// repository passed to fn is bound to the transaction.
	WithinRoomLock(ctx context.Context, roomID uuid.UUID, fn func(tx BookingRepository) error) error
}
