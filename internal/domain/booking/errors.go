package booking

import "github.com/roomfinder/service-rooms/internal/platform/domain"

// Error codes specific to the booking lifecycle.
const (
	CodeSelfBooking      domain.ErrorCode = "SELF_BOOKING"
	CodeRoomUnavailable  domain.ErrorCode = "ROOM_UNAVAILABLE"
	CodeDuplicateRequest domain.ErrorCode = "DUPLICATE_REQUEST"
)

var (
	// ErrSelfBooking is returned when an owner requests their own room.
	ErrSelfBooking = domain.New(CodeSelfBooking, "you cannot book your own room")

	// ErrRoomUnavailable is returned when the room already has an approved booking.
	ErrRoomUnavailable = domain.New(CodeRoomUnavailable, "room is already booked")

	// ErrDuplicateRequest is returned when the requester already filed a request for the room.
	ErrDuplicateRequest = domain.New(CodeDuplicateRequest, "you have already requested this room")

	// ErrNotCancellable is returned when cancelling a booking that is no longer pending.
	ErrNotCancellable = domain.New(domain.CodeInvalidState, "only pending bookings may be cancelled")

	// ErrNotPrivileged is returned when a non-staff actor attempts an approval decision.
	ErrNotPrivileged = domain.NewForbiddenError("only staff may approve or reject bookings")
)
