package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/roomfinder/service-rooms/internal/domain/booking"
	roomDomain "github.com/roomfinder/service-rooms/internal/domain/room"
	"github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
	"github.com/roomfinder/service-rooms/internal/platform/kafka"
	"github.com/roomfinder/service-rooms/internal/proto/events"
)

// EventSource is the CloudEvents source of every event this service emits.
const EventSource = "service-rooms"

// EventPublisher publishes CloudEvents to a topic. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	rooms     roomDomain.RoomRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService. publisher may be nil, in which
// case no events are emitted.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	rooms roomDomain.RoomRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		rooms:     rooms,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking files a pending booking request for roomID on behalf of requesterID.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID, roomID uuid.UUID) (*BookingDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var bk *bookingDomain.Booking
	err = s.repo.WithinRoomLock(ctx, roomID, func(tx bookingDomain.BookingRepository) error {
		hasApproved, err := tx.ExistsForRoomWithStatus(ctx, roomID, bookingDomain.StatusApproved)
		if err != nil {
			return err
		}
		alreadyRequested, err := tx.ExistsForRoomAndUser(ctx, roomID, requesterID)
		if err != nil {
			return err
		}
		if err := bookingDomain.CheckRequest(room.OwnerID(), requesterID, hasApproved, alreadyRequested); err != nil {
			return err
		}

		bk, err = bookingDomain.NewBooking(roomID, requesterID)
		if err != nil {
			return err
		}
		return tx.Save(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking requested",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", roomID.String()),
		zap.String("user_id", requesterID.String()),
	)

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, bk.ID().String(), events.BookingRequestedEvent{
		BookingID:   bk.ID(),
		RoomID:      roomID,
		UserID:      requesterID,
		RoomOwnerID: room.OwnerID(),
		OccurredAt:  time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveBooking approves a pending booking. The room check and the status write
// run under the room lock, so of two concurrent approvals for one room exactly
// one succeeds.
func (s *BookingService) ApproveBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	if !actor.Privileged {
		return nil, bookingDomain.ErrNotPrivileged
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithinRoomLock(ctx, bk.RoomID(), func(tx bookingDomain.BookingRepository) error {
		current, err := tx.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		hasApproved, err := tx.ExistsForRoomWithStatus(ctx, current.RoomID(), bookingDomain.StatusApproved)
		if err != nil {
			return err
		}
		if hasApproved {
			return bookingDomain.ErrRoomUnavailable
		}

		previous := current.Status()
		if err := current.Approve(); err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, current, previous); err != nil {
			return err
		}
		bk = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking approved",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", bk.RoomID().String()),
		zap.String("approved_by", actor.UserID.String()),
	)

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingApproved, bk.ID().String(), events.BookingApprovedEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		UserID:     bk.UserID(),
		ApprovedBy: actor.UserID,
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RejectBooking rejects a pending booking.
func (s *BookingService) RejectBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	if !actor.Privileged {
		return nil, bookingDomain.ErrNotPrivileged
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	previous := bk.Status()
	if err := bk.Reject(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, bk, previous); err != nil {
		return nil, err
	}

	s.logger.Info("booking rejected",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", bk.RoomID().String()),
		zap.String("rejected_by", actor.UserID.String()),
	)

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRejected, bk.ID().String(), events.BookingRejectedEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		UserID:     bk.UserID(),
		RejectedBy: actor.UserID,
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking deletes a pending booking owned by requesterID. Bookings of other
// users are reported as not found.
func (s *BookingService) CancelBooking(ctx context.Context, requesterID, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByIDAndUser(ctx, bookingID, requesterID)
	if err != nil {
		return err
	}
	if err := bk.EnsureCancellable(); err != nil {
		return err
	}

	// Re-read under the room lock so a concurrent approval cannot be deleted.
	err = s.repo.WithinRoomLock(ctx, bk.RoomID(), func(tx bookingDomain.BookingRepository) error {
		current, err := tx.FindByIDAndUser(ctx, bookingID, requesterID)
		if err != nil {
			return err
		}
		if err := current.EnsureCancellable(); err != nil {
			return err
		}
		return tx.Delete(ctx, bookingID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", bk.RoomID().String()),
		zap.String("user_id", requesterID.String()),
	)

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, bk.ID().String(), events.BookingCancelledEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		UserID:     requesterID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// GetBooking retrieves a booking visible to actor: the requester, the room owner
// or staff.
func (s *BookingService) GetBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.Privileged && !bk.IsRequestedBy(actor.UserID) {
		room, err := s.rooms.FindByID(ctx, bk.RoomID())
		if err != nil {
			return nil, err
		}
		if !room.IsOwnedBy(actor.UserID) {
			return nil, domain.NewNotFoundError("Booking", bookingID.String())
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListRoomBookings returns the bookings of a room to its owner or to staff.
func (s *BookingService) ListRoomBookings(ctx context.Context, actor user.Actor, roomID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(room.OwnerID()) {
		return nil, domain.NewNotFoundError("Room", roomID.String())
	}
	return s.list(ctx, bookingDomain.ListFilter{RoomID: &roomID}, page, limit)
}

// ListUserBookings returns the bookings requested by userID.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	return s.list(ctx, bookingDomain.ListFilter{UserID: &userID}, page, limit)
}

// ListIncomingBookings returns bookings made on rooms owned by ownerID.
func (s *BookingService) ListIncomingBookings(ctx context.Context, ownerID uuid.UUID, status *bookingDomain.BookingStatus, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	return s.list(ctx, bookingDomain.ListFilter{RoomOwnerID: &ownerID, Status: status}, page, limit)
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, status *bookingDomain.BookingStatus, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	return s.list(ctx, bookingDomain.ListFilter{Status: status}, page, limit)
}

func (s *BookingService) list(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for status, c := range counts {
		byStatus[status.String()] = c
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      byStatus,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		RoomID:    bk.RoomID(),
		UserID:    bk.UserID(),
		Status:    bk.Status().String(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = key

	if err := s.publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
