package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// RoomType represents the tier of a room.
type RoomType string

const (
	TypeSingle RoomType = "single"
	TypeDouble RoomType = "double"
	TypeSuite  RoomType = "suite"
	TypeDeluxe RoomType = "deluxe"
)

// IsValid returns true if the room type is recognized.
func (t RoomType) IsValid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeSuite, TypeDeluxe:
		return true
	}
	return false
}

// Room is the aggregate root for a physical hotel room.
type Room struct {
	id        uuid.UUID
	number    string
	roomType  RoomType
	price     int64
	capacity  int
	floor     int
	status    RoomStatus
	notes     string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewRoom creates a new room in available status with validated fields.
func NewRoom(number string, roomType RoomType, price int64, capacity, floor int, notes string) (*Room, error) {
	if number == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if !roomType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
	}
	if price <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be positive")
	}

	now := time.Now().UTC()
	return &Room{
		id:        uuid.New(),
		number:    number,
		roomType:  roomType,
		price:     price,
		capacity:  capacity,
		floor:     floor,
		status:    StatusAvailable,
		notes:     notes,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	number string,
	roomType RoomType,
	price int64,
	capacity, floor int,
	status RoomStatus,
	notes string,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		price:     price,
		capacity:  capacity,
		floor:     floor,
		status:    status,
		notes:     notes,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() string       { return r.number }
func (r *Room) Type() RoomType       { return r.roomType }
func (r *Room) Price() int64         { return r.price }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Floor() int           { return r.floor }
func (r *Room) Status() RoomStatus   { return r.status }
func (r *Room) Notes() string        { return r.notes }
func (r *Room) Version() int64       { return r.version }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// --- Behavior ---

// IsAvailable returns true if the room can take a new booking. The status
// flag is the single source of truth for offerability.
func (r *Room) IsAvailable() bool {
	return r.status == StatusAvailable
}

// SetStatus moves the room to the given status.
func (r *Room) SetStatus(status RoomStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid room status: %s", status))
	}
	r.status = status
	r.version++
	r.updatedAt = time.Now().UTC()
	return nil
}

// MarkOccupied flips the room to occupied after a guest checks in.
func (r *Room) MarkOccupied() {
	r.status = StatusOccupied
	r.version++
	r.updatedAt = time.Now().UTC()
}

// MarkCleaning flips the room to cleaning after checkout. The room only
// returns to available once housekeeping completes the cleaning task.
func (r *Room) MarkCleaning() {
	r.status = StatusCleaning
	r.version++
	r.updatedAt = time.Now().UTC()
}

// MarkAvailable returns the room to the bookable pool.
func (r *Room) MarkAvailable() {
	r.status = StatusAvailable
	r.version++
	r.updatedAt = time.Now().UTC()
}

// Update applies partial updates to the room details.
func (r *Room) Update(roomType RoomType, price int64, capacity, floor int, notes string) error {
	if roomType != "" {
		if !roomType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
		}
		r.roomType = roomType
	}
	if price > 0 {
		r.price = price
	}
	if capacity > 0 {
		r.capacity = capacity
	}
	if floor > 0 {
		r.floor = floor
	}
	if notes != "" {
		r.notes = notes
	}
	r.version++
	r.updatedAt = time.Now().UTC()
	return nil
}
