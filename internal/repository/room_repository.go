package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	roomDomain "github.com/acacia-hms/service-frontdesk/internal/domain/room"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"uniqueIndex;not null;size:10"`
	Type      string    `gorm:"not null;size:20"`
	Price     int64     `gorm:"not null"`
	Capacity  int       `gorm:"not null"`
	Floor     int       `gorm:"not null;default:0"`
	Status    string    `gorm:"not null;size:20;index"`
	Notes     string    `gorm:"size:500"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormRoomRepository is the GORM-based implementation of RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by its unique identifier.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model), nil
}

// FindByNumber retrieves a room by its room number.
func (r *GormRoomRepository) FindByNumber(ctx context.Context, number string) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", number)
		}
		return nil, fmt.Errorf("failed to find room by number: %w", err)
	}
	return toDomainRoom(&model), nil
}

// ListAll retrieves every room ordered by room number.
func (r *GormRoomRepository) ListAll(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rooms[i] = toDomainRoom(&m)
	}
	return rooms, nil
}

// CountByStatus returns room counts grouped by status.
func (r *GormRoomRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, rm *roomDomain.Room) error {
	if err := r.db.WithContext(ctx).Create(toRoomModel(rm)).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists changes to an existing room with optimistic locking.
func (r *GormRoomRepository) Update(ctx context.Context, rm *roomDomain.Room) error {
	model := toRoomModel(rm)

	expectedVersion := rm.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"type":       model.Type,
			"price":      model.Price,
			"capacity":   model.Capacity,
			"floor":      model.Floor,
			"status":     model.Status,
			"notes":      model.Notes,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

// Delete removes a room permanently.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RoomModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toRoomModel(rm *roomDomain.Room) *RoomModel {
	return &RoomModel{
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

func toDomainRoom(m *RoomModel) *roomDomain.Room {
	return roomDomain.Reconstruct(
		m.ID,
		m.Number,
		roomDomain.RoomType(m.Type),
		m.Price,
		m.Capacity, m.Floor,
		roomDomain.RoomStatus(m.Status),
		m.Notes,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
