package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roomfinder/service-rooms/internal/application"
	userDomain "github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/auth"
	"github.com/roomfinder/service-rooms/internal/platform/kafka"
	"github.com/roomfinder/service-rooms/internal/repository"
	"github.com/roomfinder/service-rooms/internal/testutil"
)

// recordingPublisher captures published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stack struct {
	db        *gorm.DB
	users     *repository.GormUserRepository
	rooms     *application.RoomService
	bookings  *application.BookingService
	accounts  *application.AccountService
	dashboard *application.DashboardService
	publisher *recordingPublisher
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()

	userRepo := repository.NewGormUserRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	publisher := &recordingPublisher{}

	return &stack{
		db:        db,
		users:     userRepo,
		rooms:     application.NewRoomService(roomRepo, log),
		bookings:  application.NewBookingService(bookingRepo, roomRepo, publisher, log),
		accounts:  application.NewAccountService(userRepo, auth.NewJWTManager("test-secret", time.Hour), log),
		dashboard: application.NewDashboardService(roomRepo, bookingRepo),
		publisher: publisher,
	}
}

// seedUser stores an account directly, skipping password hashing.
func (s *stack) seedUser(t *testing.T, username string, privileged bool) userDomain.Actor {
	t.Helper()
	u, err := userDomain.NewUser(username, "not-a-real-hash")
	require.NoError(t, err)
	if privileged {
		u.SetPrivileges(true, false)
	}
	require.NoError(t, s.users.Save(context.Background(), u))
	return u.Actor()
}

func roomRequest(title, location, roomType string) application.CreateRoomRequest {
	return application.CreateRoomRequest{
		RoomRequest: application.RoomRequest{
			Title:         title,
			Description:   "Sunny room close to the bus park",
			Price:         9000,
			Location:      location,
			RoomType:      roomType,
			OwnerName:     "Owner",
			ContactNumber: "9800000000",
			AvailableFrom: "2026-11-01",
		},
	}
}

func (s *stack) seedRoom(t *testing.T, owner userDomain.Actor) uuid.UUID {
	t.Helper()
	room, err := s.rooms.CreateRoom(context.Background(), owner.UserID, roomRequest("Room", "Kathmandu", "Single"))
	require.NoError(t, err)
	return room.ID
}
