package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Payment, error)

	// SumCompletedByBookingID returns the sum of completed payments for a
	// booking. It must equal the booking's paidAmount at all times.
	SumCompletedByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)

	// RevenueBetween returns the sum of completed payments recorded in
	// [from, to), grouped by method.
	RevenueBetween(ctx context.Context, from, to time.Time) (map[string]int64, error)

	Save(ctx context.Context, payment *Payment) error
}
