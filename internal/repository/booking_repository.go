package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	bookingDomain "github.com/acacia-hms/service-frontdesk/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingNumber   string          `gorm:"uniqueIndex;not null;size:20"`
	GuestID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	RoomID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	GuestSnapshot   json.RawMessage `gorm:"type:jsonb;not null"`
	Status          string          `gorm:"not null;size:30;index"`
	CheckIn         time.Time       `gorm:"not null;index"`
	CheckOut        time.Time       `gorm:"not null"`
	Nights          int             `gorm:"not null"`
	Adults          int             `gorm:"not null"`
	Children        int             `gorm:"not null;default:0"`
	TotalAmount     int64           `gorm:"not null"`
	PaidAmount      int64           `gorm:"not null;default:0"`
	Currency        string          `gorm:"not null;size:3;default:'KES'"`
	PaymentMethod   string          `gorm:"size:30"`
	SpecialRequests string          `gorm:"size:1000"`
	CheckedInAt     *time.Time      `gorm:""`
	CheckedOutAt    *time.Time      `gorm:""`
	CancelledAt     *time.Time      `gorm:""`
	CancelNote      string          `gorm:"size:500"`
	Version         int64           `gorm:"not null;default:1"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByGuestID retrieves bookings for a specific guest with pagination.
func (r *GormBookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("guest_id = ?", guestID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guest bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find guest bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// FindByRoomID retrieves bookings for a specific room with pagination.
func (r *GormBookingRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count room bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find room bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListAll retrieves all bookings with pagination, optionally filtered by status.
func (r *GormBookingRepository) ListAll(ctx context.Context, status bookingDomain.BookingStatus, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
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

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"guest_snapshot":   model.GuestSnapshot,
			"status":           model.Status,
			"check_in":         model.CheckIn,
			"check_out":        model.CheckOut,
			"nights":           model.Nights,
			"adults":           model.Adults,
			"children":         model.Children,
			"total_amount":     model.TotalAmount,
			"paid_amount":      model.PaidAmount,
			"currency":         model.Currency,
			"payment_method":   model.PaymentMethod,
			"special_requests": model.SpecialRequests,
			"checked_in_at":    model.CheckedInAt,
			"checked_out_at":   model.CheckedOutAt,
			"cancelled_at":     model.CancelledAt,
			"cancel_note":      model.CancelNote,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	snapshotJSON, err := json.Marshal(bk.GuestSnapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal guest snapshot: %w", err)
	}

	return &BookingModel{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		GuestID:         bk.GuestID(),
		RoomID:          bk.RoomID(),
		GuestSnapshot:   snapshotJSON,
		Status:          string(bk.Status()),
		CheckIn:         bk.CheckIn(),
		CheckOut:        bk.CheckOut(),
		Nights:          bk.Nights(),
		Adults:          bk.Adults(),
		Children:        bk.Children(),
		TotalAmount:     bk.TotalAmount(),
		PaidAmount:      bk.PaidAmount(),
		Currency:        bk.Currency(),
		PaymentMethod:   bk.PaymentMethod(),
		SpecialRequests: bk.SpecialRequests(),
		CheckedInAt:     bk.CheckedInAt(),
		CheckedOutAt:    bk.CheckedOutAt(),
		CancelledAt:     bk.CancelledAt(),
		CancelNote:      bk.CancelNote(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var snapshot bookingDomain.GuestSnapshot
	if err := json.Unmarshal(m.GuestSnapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest snapshot: %w", err)
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.GuestID, m.RoomID,
		snapshot,
		bookingDomain.BookingStatus(m.Status),
		m.CheckIn, m.CheckOut,
		m.Nights, m.Adults, m.Children,
		m.TotalAmount, m.PaidAmount,
		m.Currency, m.PaymentMethod, m.SpecialRequests,
		m.CheckedInAt, m.CheckedOutAt, m.CancelledAt,
		m.CancelNote,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
