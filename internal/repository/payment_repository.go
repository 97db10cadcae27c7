package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	paymentDomain "github.com/acacia-hms/service-frontdesk/internal/domain/payment"
)

// PaymentModel is the GORM model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount        int64     `gorm:"not null"`
	Method        string    `gorm:"not null;size:30"`
	Status        string    `gorm:"not null;size:20;index"`
	TransactionID string    `gorm:"size:100"`
	RecordedAt    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PaymentModel) TableName() string {
	return "payments"
}

// GormPaymentRepository is the GORM-based implementation of PaymentRepository.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID retrieves a payment by its unique identifier.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Payment", id.String())
		}
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}
	return toDomainPayment(&model), nil
}

// FindByBookingID retrieves payments recorded against a booking, oldest first.
func (r *GormPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*paymentDomain.Payment, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("recorded_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find payments: %w", err)
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i, m := range models {
		payments[i] = toDomainPayment(&m)
	}
	return payments, nil
}

// SumCompletedByBookingID returns the sum of completed payments for a booking.
func (r *GormPaymentRepository) SumCompletedByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("booking_id = ? AND status = ?", bookingID, string(paymentDomain.StatusCompleted)).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// RevenueBetween returns the sum of completed payments recorded in [from, to),
// grouped by method.
func (r *GormPaymentRepository) RevenueBetween(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	type methodSum struct {
		Method string
		Total  int64
	}
	var results []methodSum
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("method, COALESCE(SUM(amount), 0) as total").
		Where("status = ? AND recorded_at >= ? AND recorded_at < ?", string(paymentDomain.StatusCompleted), from, to).
		Group("method").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	revenue := make(map[string]int64)
	for _, ms := range results {
		revenue[ms.Method] = ms.Total
	}
	return revenue, nil
}

// Save persists a new payment record. Payments are immutable once written.
func (r *GormPaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	if err := r.db.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toPaymentModel(p *paymentDomain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Amount:        p.Amount(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		RecordedAt:    p.RecordedAt(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toDomainPayment(m *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstruct(
		m.ID, m.BookingID,
		m.Amount,
		paymentDomain.Method(m.Method),
		paymentDomain.Status(m.Status),
		m.TransactionID,
		m.RecordedAt, m.CreatedAt,
	)
}
