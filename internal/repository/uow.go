package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/application"
)

// GormUnitOfWork runs application-level operations inside a single database
// transaction. Repositories handed to the callback share the transaction, so
// a booking and its room either both change or neither does.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTx executes fn inside a transaction. Any error returned by fn rolls
// the whole transaction back.
func (u *GormUnitOfWork) WithinTx(ctx context.Context, fn func(repos application.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

// Repos returns repositories bound to the base connection, for read paths
// that need no transaction.
func (u *GormUnitOfWork) Repos() application.Repositories {
	return newRepositories(u.db)
}

func newRepositories(db *gorm.DB) application.Repositories {
	return application.Repositories{
		Bookings: NewGormBookingRepository(db),
		Rooms:    NewGormRoomRepository(db),
		Guests:   NewGormGuestRepository(db),
		Payments: NewGormPaymentRepository(db),
		Tasks:    NewGormTaskRepository(db),
	}
}

// Models returns every GORM model for schema auto-migration in development.
func Models() []interface{} {
	return []interface{}{
		&RoomModel{},
		&GuestModel{},
		&BookingModel{},
		&PaymentModel{},
		&TaskModel{},
	}
}
