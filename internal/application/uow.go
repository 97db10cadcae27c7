package application

import (
	"context"

	bookingDomain "github.com/acacia-hms/service-frontdesk/internal/domain/booking"
	"github.com/acacia-hms/service-frontdesk/internal/domain/guest"
	"github.com/acacia-hms/service-frontdesk/internal/domain/housekeeping"
	"github.com/acacia-hms/service-frontdesk/internal/domain/payment"
	roomDomain "github.com/acacia-hms/service-frontdesk/internal/domain/room"
)

// Repositories bundles the repository ports bound to one transaction.
type Repositories struct {
	Bookings bookingDomain.BookingRepository
	Rooms    roomDomain.RoomRepository
	Guests   guest.GuestRepository
	Payments payment.PaymentRepository
	Tasks    housekeeping.TaskRepository
}

// UnitOfWork runs a function against transaction-bound repositories. An
// error from fn rolls everything back, so a lifecycle operation either fully
// applies across Booking, Room and Payment or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error

	// Repos returns repositories bound to the base connection for reads that
	// need no transaction.
	Repos() Repositories
}
