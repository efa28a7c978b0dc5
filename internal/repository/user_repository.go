package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsStaff      bool      `gorm:"not null;default:false"`
	IsSuperuser  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by id.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toUserDomain(&model), nil
}

// FindByUsername retrieves a user by exact username.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", username)
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return toUserDomain(&model), nil
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("a user with that username already exists")
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdatePrivileges persists the staff and superuser flags.
func (r *GormUserRepository) UpdatePrivileges(ctx context.Context, u *userDomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"is_staff":     u.IsStaff(),
			"is_superuser": u.IsSuperuser(),
			"updated_at":   u.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user privileges: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	return nil
}

// DeleteCascade removes the user and everything owned by or referencing the user.
func (r *GormUserRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedRooms := tx.Model(&RoomModel{}).Select("id").Where("owner_id = ?", id)

		if err := tx.Where("user_id = ? OR room_id IN (?)", id, ownedRooms).Delete(&BookingModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookings: %w", err)
		}
		if err := tx.Where("room_id IN (?)", ownedRooms).Delete(&RoomImageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room images: %w", err)
		}
		if err := tx.Where("owner_id = ?", id).Delete(&RoomModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete rooms: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&UserModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("User", id.String())
		}
		return nil
	})
}

// --- Conversions ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		IsStaff:      u.IsStaff(),
		IsSuperuser:  u.IsSuperuser(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Username, m.PasswordHash,
		m.IsStaff, m.IsSuperuser,
		m.CreatedAt, m.UpdatedAt,
	)
}
