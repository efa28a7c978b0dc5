package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingDomain "github.com/roomfinder/service-rooms/internal/domain/booking"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// BookingModel is the GORM model for the bookings table.
//
// idx_bookings_room_approved admits at most one approved booking per room and
// idx_bookings_room_user at most one request per (room, user) pair.
type BookingModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_room_user,priority:1;uniqueIndex:idx_bookings_room_approved,where:status = 'approved'"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_room_user,priority:2;index"`
	Status    string     `gorm:"not null;size:20;index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	Room      *RoomModel `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByIDAndUser retrieves a booking requested by userID.
func (r *GormBookingRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID and user: %w", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings matching filter with pagination.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&BookingModel{}), filter)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	if err := query().
		Order("created_at DESC").
		Order("id DESC").
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}

	return bookings, total, nil
}

func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter bookingDomain.ListFilter) *gorm.DB {
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.RoomOwnerID != nil {
		owned := r.db.Model(&RoomModel{}).Select("id").Where("owner_id = ?", *filter.RoomOwnerID)
		query = query.Where("room_id IN (?)", owned)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	return query
}

// ExistsForRoomWithStatus reports whether any booking for roomID has status.
func (r *GormBookingRepository) ExistsForRoomWithStatus(ctx context.Context, roomID uuid.UUID, status bookingDomain.BookingStatus) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("room_id = ? AND status = ?", roomID, status.String()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room bookings: %w", err)
	}
	return count > 0, nil
}

// ExistsForRoomAndUser reports whether userID has requested roomID before.
func (r *GormBookingRepository) ExistsForRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing request: %w", err)
	}
	return count > 0, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[bookingDomain.BookingStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[bookingDomain.BookingStatus]int64, len(bookingDomain.Statuses))
	for _, s := range bookingDomain.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[bookingDomain.BookingStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, booking *bookingDomain.Booking) error {
	model := toBookingModel(booking)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return bookingDomain.ErrDuplicateRequest
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// The room row is held by the caller's lock, so the requester is gone.
			return domain.NewNotFoundError("User", booking.UserID().String())
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatus persists a status change guarded by the expected current status.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, booking *bookingDomain.Booking, expected bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", booking.ID(), expected.String()).
		Updates(map[string]interface{}{
			"status":     booking.Status().String(),
			"updated_at": booking.UpdatedAt(),
		})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return bookingDomain.ErrRoomUnavailable
		}
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewInvalidStateError(expected.String(), booking.Status().String())
	}

	return nil
}

// Delete removes a booking.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// WithinRoomLock runs fn in a transaction holding SELECT ... FOR UPDATE on the room row.
func (r *GormBookingRepository) WithinRoomLock(ctx context.Context, roomID uuid.UUID, fn func(tx bookingDomain.BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked RoomModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", roomID).
			Take(&locked).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Room", roomID.String())
			}
			return fmt.Errorf("failed to lock room: %w", err)
		}

		return fn(&GormBookingRepository{db: tx})
	})
}

// --- Conversions ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		RoomID:    b.RoomID(),
		UserID:    b.UserID(),
		Status:    b.Status().String(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s has corrupt status: %w", m.ID, err)
	}
	return bookingDomain.ReconstructBooking(
		m.ID, m.RoomID, m.UserID,
		status,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
