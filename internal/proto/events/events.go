// Package events holds the topics, CloudEvent types and payloads exchanged over Kafka.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicAccountEvents = "account.events"
)

// Event types.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"

	AccountClosed = "account.closed"
)

// BookingRequestedEvent is published when a customer files a booking request.
type BookingRequestedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	RoomID      uuid.UUID `json:"room_id"`
	UserID      uuid.UUID `json:"user_id"`
	RoomOwnerID uuid.UUID `json:"room_owner_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingApprovedEvent is published when staff approve a booking.
type BookingApprovedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	UserID     uuid.UUID `json:"user_id"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingRejectedEvent is published when staff reject a booking.
type BookingRejectedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	UserID     uuid.UUID `json:"user_id"`
	RejectedBy uuid.UUID `json:"rejected_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a requester withdraws a pending booking.
type BookingCancelledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AccountClosedEvent is consumed from the identity topic; the user and all of
// their rooms and bookings are purged.
type AccountClosedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
