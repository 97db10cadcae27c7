package room

import (
	"context"

	"github.com/google/uuid"
)

// RoomRepository defines the persistence contract for room aggregates.
type RoomRepository interface {
	// FindByID retrieves a room by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByNumber retrieves a room by its room number.
	FindByNumber(ctx context.Context, number string) (*Room, error)

	// ListAll retrieves every room ordered by room number.
	ListAll(ctx context.Context) ([]*Room, error)

	// CountByStatus returns room counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new room.
	Save(ctx context.Context, room *Room) error

	// Update persists changes to an existing room.
	Update(ctx context.Context, room *Room) error

	// Delete removes a room permanently (admin only).
	Delete(ctx context.Context, id uuid.UUID) error
}
