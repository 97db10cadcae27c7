package guest

import (
	"context"

	"github.com/google/uuid"
)

// GuestRepository defines persistence operations for guest records.
type GuestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Guest, error)
	FindByEmail(ctx context.Context, email string) (*Guest, error)

	// Search matches the text against name, email, phone and ID number.
	Search(ctx context.Context, text string, page, limit int) ([]*Guest, int64, error)

	ListAll(ctx context.Context, page, limit int) ([]*Guest, int64, error)
	Save(ctx context.Context, guest *Guest) error
	Update(ctx context.Context, guest *Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
}
