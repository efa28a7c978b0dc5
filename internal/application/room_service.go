package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	roomDomain "github.com/roomfinder/service-rooms/internal/domain/room"
	"github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// DateLayout is the wire format of available_from.
const DateLayout = "2006-01-02"

// RoomRequest is the request DTO for creating or replacing a room listing.
type RoomRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description" binding:"required"`
	Price         int64  `json:"price" binding:"min=0"`
	Location      string `json:"location" binding:"required"`
	RoomType      string `json:"room_type" binding:"required"`
	OwnerName     string `json:"owner_name" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=15"`
	AvailableFrom string `json:"available_from" binding:"required"`
}

// CreateRoomRequest creates a listing with optional images.
type CreateRoomRequest struct {
	RoomRequest
	Images []string `json:"images"`
}

// UpdateRoomRequest replaces the listing attributes and edits the image set.
type UpdateRoomRequest struct {
	RoomRequest
	DeleteImageIDs []uuid.UUID `json:"delete_image_ids"`
	AddImages      []string    `json:"add_images"`
}

// AddImageRequest attaches one image to a room.
type AddImageRequest struct {
	Path string `json:"path" binding:"required,max=500"`
}

// RoomQuery filters the public room listing.
type RoomQuery struct {
	Location string `form:"location"`
	RoomType string `form:"room_type"`
}

// RoomImageDTO is the API response representation of a room image.
type RoomImageDTO struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomDTO is the API response representation of a room listing.
type RoomDTO struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         int64          `json:"price"`
	Location      string         `json:"location"`
	RoomType      string         `json:"room_type"`
	OwnerName     string         `json:"owner_name,omitempty"`
	ContactNumber string         `json:"contact_number,omitempty"`
	AvailableFrom string         `json:"available_from"`
	Images        []RoomImageDTO `json:"images"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// RoomService implements use cases for room listing management.
type RoomService struct {
	repo   roomDomain.RoomRepository
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(repo roomDomain.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

// CreateRoom lists a new room owned by ownerID.
func (s *RoomService) CreateRoom(ctx context.Context, ownerID uuid.UUID, req CreateRoomRequest) (*RoomDTO, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}

	room, err := roomDomain.NewRoom(ownerID, details)
	if err != nil {
		return nil, err
	}
	for _, path := range req.Images {
		if _, err := room.AttachImage(path); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)

	dto := toRoomDTO(room)
	return &dto, nil
}

// GetRoom returns a room with its images.
func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(room)
	return &dto, nil
}

// ListRooms returns rooms matching the query, newest first.
func (s *RoomService) ListRooms(ctx context.Context, query RoomQuery, page, limit int) (*domain.PaginatedResult[RoomDTO], error) {
	filter := roomDomain.Filter{Location: strings.TrimSpace(query.Location)}
	if rt := strings.TrimSpace(query.RoomType); rt != "" {
		roomType, err := roomDomain.ParseRoomType(rt)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.RoomType = roomType
	}
	return s.list(ctx, filter, page, limit)
}

// ListOwnerRooms returns the rooms owned by ownerID.
func (s *RoomService) ListOwnerRooms(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[RoomDTO], error) {
	return s.list(ctx, roomDomain.Filter{OwnerID: &ownerID}, page, limit)
}

func (s *RoomService) list(ctx context.Context, filter roomDomain.Filter, page, limit int) (*domain.PaginatedResult[RoomDTO], error) {
	rooms, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateRoom replaces the listing attributes of a room the actor manages,
// removing and adding images in the same call.
func (s *RoomService) UpdateRoom(ctx context.Context, actor user.Actor, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	room, err := s.findManaged(ctx, actor, roomID)
	if err != nil {
		return nil, err
	}

	details, err := req.details()
	if err != nil {
		return nil, err
	}
	if err := room.Update(details); err != nil {
		return nil, err
	}

	added := make([]*roomDomain.Image, 0, len(req.AddImages))
	for _, path := range req.AddImages {
		img, err := roomDomain.NewImage(room.ID(), path)
		if err != nil {
			return nil, err
		}
		added = append(added, img)
	}

	if err := s.repo.Update(ctx, room, req.DeleteImageIDs, added); err != nil {
		return nil, err
	}

	s.logger.Info("room updated",
		zap.String("room_id", room.ID().String()),
		zap.String("user_id", actor.UserID.String()),
	)

	return s.GetRoom(ctx, room.ID())
}

// DeleteRoom removes a room the actor manages together with its images and bookings.
func (s *RoomService) DeleteRoom(ctx context.Context, actor user.Actor, roomID uuid.UUID) error {
	room, err := s.findManaged(ctx, actor, roomID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, room.ID()); err != nil {
		return err
	}

	s.logger.Info("room deleted",
		zap.String("room_id", room.ID().String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return nil
}

// AddImage attaches an image to a room the actor manages.
func (s *RoomService) AddImage(ctx context.Context, actor user.Actor, roomID uuid.UUID, req AddImageRequest) (*RoomImageDTO, error) {
	room, err := s.findManaged(ctx, actor, roomID)
	if err != nil {
		return nil, err
	}

	img, err := room.AttachImage(req.Path)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddImages(ctx, img); err != nil {
		return nil, err
	}

	dto := toRoomImageDTO(img)
	return &dto, nil
}

// DeleteImage removes one image of a room the actor manages.
func (s *RoomService) DeleteImage(ctx context.Context, actor user.Actor, roomID, imageID uuid.UUID) error {
	room, err := s.findManaged(ctx, actor, roomID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteImages(ctx, room.ID(), imageID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.NewNotFoundError("RoomImage", imageID.String())
	}
	return nil
}

// findManaged loads a room and hides it from actors who may not manage it.
func (s *RoomService) findManaged(ctx context.Context, actor user.Actor, roomID uuid.UUID) (*roomDomain.Room, error) {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(room.OwnerID()) {
		return nil, domain.NewNotFoundError("Room", roomID.String())
	}
	return room, nil
}

func (r RoomRequest) details() (roomDomain.Details, error) {
	availableFrom, err := time.Parse(DateLayout, strings.TrimSpace(r.AvailableFrom))
	if err != nil {
		return roomDomain.Details{}, domain.NewValidationError(
			fmt.Sprintf("available_from must be a date in %s format", DateLayout),
		)
	}
	return roomDomain.Details{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		Location:      roomDomain.Location(strings.TrimSpace(r.Location)),
		RoomType:      roomDomain.RoomType(strings.TrimSpace(r.RoomType)),
		OwnerName:     r.OwnerName,
		ContactNumber: r.ContactNumber,
		AvailableFrom: availableFrom,
	}, nil
}

func toRoomDTO(room *roomDomain.Room) RoomDTO {
	d := room.Details()
	images := make([]RoomImageDTO, len(room.Images()))
	for i, img := range room.Images() {
		images[i] = toRoomImageDTO(img)
	}
	return RoomDTO{
		ID:            room.ID(),
		OwnerID:       room.OwnerID(),
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		Location:      string(d.Location),
		RoomType:      string(d.RoomType),
		OwnerName:     d.OwnerName,
		ContactNumber: d.ContactNumber,
		AvailableFrom: d.AvailableFrom.Format(DateLayout),
		Images:        images,
		CreatedAt:     room.CreatedAt(),
		UpdatedAt:     room.UpdatedAt(),
	}
}

func toRoomImageDTO(img *roomDomain.Image) RoomImageDTO {
	return RoomImageDTO{
		ID:        img.ID(),
		Path:      img.Path(),
		CreatedAt: img.CreatedAt(),
	}
}
