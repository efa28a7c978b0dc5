package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// Booking is the aggregate root for a request by one user to occupy one room.
type Booking struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    uuid.UUID
	status    BookingStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=pending. Bookings never start in
// any other state.
func NewBooking(roomID, userID uuid.UUID) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, roomID, userID uuid.UUID,
	status BookingStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomID returns the requested room.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// UserID returns the requester.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsRequestedBy reports whether userID filed this booking.
func (b *Booking) IsRequestedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// Approve transitions the booking from pending to approved. The caller is
// responsible for the per-room exclusivity check.
func (b *Booking) Approve() error {
	return b.transitionTo(StatusApproved)
}

// Reject transitions the booking from pending to rejected.
func (b *Booking) Reject() error {
	return b.transitionTo(StatusRejected)
}

// EnsureCancellable returns ErrNotCancellable unless the booking is pending.
func (b *Booking) EnsureCancellable() error {
	if !b.status.CanBeCancelled() {
		return ErrNotCancellable
	}
	return nil
}

func (b *Booking) transitionTo(target BookingStatus) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// CheckRequest applies the request preconditions in order, first failure wins:
// the requester must not own the room, the room must have no approved booking,
// and the requester must not have filed any earlier request for it.
func CheckRequest(roomOwnerID, requesterID uuid.UUID, roomHasApproved, alreadyRequested bool) error {
	if roomOwnerID == requesterID {
		return ErrSelfBooking
	}
	if roomHasApproved {
		return ErrRoomUnavailable
	}
	if alreadyRequested {
		return ErrDuplicateRequest
	}
	return nil
}
