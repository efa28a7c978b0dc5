package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	roomDomain "github.com/roomfinder/service-rooms/internal/domain/room"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Owner         *UserModel       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title         string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text;not null"`
	Price         int64            `gorm:"not null;check:chk_rooms_price,price >= 0"`
	Location      string           `gorm:"type:varchar(50);not null;index"`
	RoomType      string           `gorm:"type:varchar(20);not null;index"`
	OwnerName     string           `gorm:"type:varchar(100)"`
	ContactNumber string           `gorm:"type:varchar(15)"`
	AvailableFrom datatypes.Date   `gorm:"not null"`
	Images        []RoomImageModel `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

func (RoomModel) TableName() string { return "rooms" }

// GormRoomRepository implements RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).
		Preload("Images", orderImages).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, err
	}
	return toRoomDomain(&model), nil
}

// List returns rooms matching filter, newest first.
func (r *GormRoomRepository) List(ctx context.Context, filter roomDomain.Filter, page, limit int) ([]*roomDomain.Room, int64, error) {
	query := func() *gorm.DB {
		return applyRoomFilter(r.db.WithContext(ctx).Model(&RoomModel{}), filter)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	var models []RoomModel
	if err := query().
		Preload("Images", orderImages).
		Order("created_at DESC").
		Order("id DESC").
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		rooms[i] = toRoomDomain(&models[i])
	}
	return rooms, total, nil
}

func applyRoomFilter(query *gorm.DB, filter roomDomain.Filter) *gorm.DB {
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where(`LOWER(location) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(loc))+"%")
	}
	if filter.RoomType != "" {
		query = query.Where("room_type = ?", string(filter.RoomType))
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// Save inserts the room together with any images it carries.
func (r *GormRoomRepository) Save(ctx context.Context, room *roomDomain.Room) error {
	model := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.NewNotFoundError("User", room.OwnerID().String())
		}
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update writes the listing attributes and the image edit in one transaction.
func (r *GormRoomRepository) Update(ctx context.Context, room *roomDomain.Room, removeImageIDs []uuid.UUID, addImages []*roomDomain.Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := &GormRoomRepository{db: tx}
		if err := repo.updateDetails(ctx, room); err != nil {
			return err
		}
		if _, err := repo.DeleteImages(ctx, room.ID(), removeImageIDs...); err != nil {
			return err
		}
		return repo.AddImages(ctx, addImages...)
	})
}

func (r *GormRoomRepository) updateDetails(ctx context.Context, room *roomDomain.Room) error {
	d := room.Details()
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ?", room.ID()).
		Updates(map[string]interface{}{
			"title":          d.Title,
			"description":    d.Description,
			"price":          d.Price,
			"location":       string(d.Location),
			"room_type":      string(d.RoomType),
			"owner_name":     d.OwnerName,
			"contact_number": d.ContactNumber,
			"available_from": datatypes.Date(d.AvailableFrom),
			"updated_at":     room.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", room.ID().String())
	}
	return nil
}

// Delete removes the room, its images and every booking made for it.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&BookingModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room bookings: %w", err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&RoomImageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room images: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&RoomModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Room", id.String())
		}
		return nil
	})
}

func (r *GormRoomRepository) AddImages(ctx context.Context, images ...*roomDomain.Image) error {
	if len(images) == 0 {
		return nil
	}
	models := make([]RoomImageModel, len(images))
	for i, img := range images {
		models[i] = toImageModel(img)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.NewNotFoundError("Room", images[0].RoomID().String())
		}
		return fmt.Errorf("failed to add room images: %w", err)
	}
	return nil
}

// DeleteImages removes images of roomID. Ids belonging to other rooms are left alone.
func (r *GormRoomRepository) DeleteImages(ctx context.Context, roomID uuid.UUID, imageIDs ...uuid.UUID) (int64, error) {
	if len(imageIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND id IN ?", roomID, imageIDs).
		Delete(&RoomImageModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete room images: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormRoomRepository) CountByType(ctx context.Context) ([]roomDomain.TypeCount, error) {
	var rows []struct {
		RoomType string
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Select("room_type, COUNT(*) as count").
		Group("room_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms by type: %w", err)
	}

	counts := make([]roomDomain.TypeCount, len(rows))
	for i, row := range rows {
		counts[i] = roomDomain.TypeCount{RoomType: roomDomain.RoomType(row.RoomType), Count: row.Count}
	}
	return counts, nil
}

func (r *GormRoomRepository) CountByLocation(ctx context.Context) ([]roomDomain.LocationCount, error) {
	var rows []struct {
		Location string
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Select("location, COUNT(*) as count").
		Group("location").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms by location: %w", err)
	}

	counts := make([]roomDomain.LocationCount, len(rows))
	for i, row := range rows {
		counts[i] = roomDomain.LocationCount{Location: roomDomain.Location(row.Location), Count: row.Count}
	}
	return counts, nil
}

// --- Conversions ---

func toRoomModel(room *roomDomain.Room) *RoomModel {
	d := room.Details()
	images := make([]RoomImageModel, len(room.Images()))
	for i, img := range room.Images() {
		images[i] = toImageModel(img)
	}
	return &RoomModel{
		ID:            room.ID(),
		OwnerID:       room.OwnerID(),
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		Location:      string(d.Location),
		RoomType:      string(d.RoomType),
		OwnerName:     d.OwnerName,
		ContactNumber: d.ContactNumber,
		AvailableFrom: datatypes.Date(d.AvailableFrom),
		Images:        images,
		CreatedAt:     room.CreatedAt(),
		UpdatedAt:     room.UpdatedAt(),
	}
}

func toRoomDomain(m *RoomModel) *roomDomain.Room {
	y, mo, d := time.Time(m.AvailableFrom).Date()
	images := make([]*roomDomain.Image, len(m.Images))
	for i := range m.Images {
		images[i] = toImageDomain(&m.Images[i])
	}
	return roomDomain.Reconstruct(
		m.ID, m.OwnerID,
		roomDomain.Details{
			Title:         m.Title,
			Description:   m.Description,
			Price:         m.Price,
			Location:      roomDomain.Location(m.Location),
			RoomType:      roomDomain.RoomType(m.RoomType),
			OwnerName:     m.OwnerName,
			ContactNumber: m.ContactNumber,
			AvailableFrom: time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		},
		images,
		m.CreatedAt, m.UpdatedAt,
	)
}
