package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	"github.com/acacia-hms/service-frontdesk/internal/domain/room"
)

// CreateRoomRequest holds the data needed to register a room.
type CreateRoomRequest struct {
	Number   string `json:"number" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Price    int64  `json:"price" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
	Floor    int    `json:"floor"`
	Notes    string `json:"notes"`
}

// UpdateRoomRequest holds the mutable room attributes.
type UpdateRoomRequest struct {
	Type     string `json:"type" binding:"required"`
	Price    int64  `json:"price" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
	Floor    int    `json:"floor"`
	Notes    string `json:"notes"`
}

// AvailabilitySearchRequest carries the filters for an availability search.
type AvailabilitySearchRequest struct {
	Type        string `form:"type"`
	MinCapacity int    `form:"min_capacity"`
	Search      string `form:"search"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Price     int64     `json:"price"`
	Capacity  int       `json:"capacity"`
	Floor     int       `json:"floor"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomStatsDTO holds room occupancy statistics.
type RoomStatsDTO struct {
	TotalRooms int64            `json:"total_rooms"`
	ByStatus   map[string]int64 `json:"by_status"`
}

// RoomService manages the room inventory and the availability search.
type RoomService struct {
	rooms  room.RoomRepository
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms room.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: logger}
}

// CreateRoom registers a new room. Room numbers are unique.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomDTO, error) {
	if existing, err := s.rooms.FindByNumber(ctx, req.Number); err == nil && existing != nil {
		return nil, domain.NewConflictError(fmt.Sprintf("room %s already exists", req.Number))
	}

	rm, err := room.NewRoom(req.Number, room.RoomType(req.Type), req.Price, req.Capacity, req.Floor, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.Save(ctx, rm); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	s.logger.Info("room created",
		zap.String("room_number", rm.Number()),
		zap.String("type", string(rm.Type())),
	)
	result := toRoomDTO(rm)
	return &result, nil
}

// GetRoom retrieves a room by ID.
func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	result := toRoomDTO(rm)
	return &result, nil
}

// ListRooms retrieves every room ordered by room number.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return toRoomDTOs(rooms), nil
}

// SearchAvailable returns the rooms that can take a new booking, filtered by
// the request criteria.
func (s *RoomService) SearchAvailable(ctx context.Context, req AvailabilitySearchRequest) ([]RoomDTO, error) {
	if req.Type != "" && !room.RoomType(req.Type).IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", req.Type))
	}

	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	matched := room.FilterAvailable(rooms, room.AvailabilityCriteria{
		Type:        room.RoomType(req.Type),
		MinCapacity: req.MinCapacity,
		SearchText:  req.Search,
	})
	return toRoomDTOs(matched), nil
}

// UpdateRoom updates a room's attributes.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := rm.Update(room.RoomType(req.Type), req.Price, req.Capacity, req.Floor, req.Notes); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, rm); err != nil {
		return nil, err
	}
	result := toRoomDTO(rm)
	return &result, nil
}

// SetRoomStatus moves a room to an explicit status, e.g. taking it out of
// order for maintenance or returning it to service.
func (s *RoomService) SetRoomStatus(ctx context.Context, roomID uuid.UUID, status string) (*RoomDTO, error) {
	parsed, err := room.ParseRoomStatus(status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	rm, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := rm.SetStatus(parsed); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, rm); err != nil {
		return nil, err
	}

	s.logger.Info("room status changed",
		zap.String("room_number", rm.Number()),
		zap.String("status", string(rm.Status())),
	)
	result := toRoomDTO(rm)
	return &result, nil
}

// DeleteRoom removes a room permanently (admin only).
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return err
	}
	return s.rooms.Delete(ctx, roomID)
}

// GetRoomStats returns room counts grouped by status (admin).
func (s *RoomService) GetRoomStats(ctx context.Context) (*RoomStatsDTO, error) {
	counts, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get room stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &RoomStatsDTO{TotalRooms: total, ByStatus: counts}, nil
}

func toRoomDTO(rm *room.Room) RoomDTO {
	return RoomDTO{
		ID:        rm.ID(),
		Number:    rm.Number(),
		Type:      string(rm.Type()),
		Price:     rm.Price(),
		Capacity:  rm.Capacity(),
		Floor:     rm.Floor(),
		Status:    string(rm.Status()),
		Notes:     rm.Notes(),
		Version:   rm.Version(),
		CreatedAt: rm.CreatedAt(),
		UpdatedAt: rm.UpdatedAt(),
	}
}

func toRoomDTOs(rooms []*room.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos
}
