package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// Method is the channel a payment was taken through.
type Method string

const (
	MethodMpesa        Method = "mpesa"
	MethodCash         Method = "cash"
	MethodCard         Method = "card"
	MethodBankTransfer Method = "bank_transfer"
)

// IsValid returns true if the method is recognized.
func (m Method) IsValid() bool {
	switch m {
	case MethodMpesa, MethodCash, MethodCard, MethodBankTransfer:
		return true
	}
	return false
}

// ParseMethod converts a string to a Method, returning an error if invalid.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", s)
	}
	return m, nil
}

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment is a recorded payment against a booking. Front-desk payments
// (cash, mpesa confirmation) settle synchronously, so recorded payments are
// completed at creation; pending/failed exist for imported records.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        int64
	method        Method
	status        Status
	transactionID string
	recordedAt    time.Time
	createdAt     time.Time
}

// NewPayment creates a completed payment record for a booking.
func NewPayment(bookingID uuid.UUID, amount int64, method Method, transactionID string) (*Payment, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", method))
	}

	now := time.Now().UTC()
	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		status:        StatusCompleted,
		transactionID: transactionID,
		recordedAt:    now,
		createdAt:     now,
	}, nil
}

// Reconstruct rebuilds a Payment from persistence data (no validation).
func Reconstruct(
	id, bookingID uuid.UUID,
	amount int64,
	method Method,
	status Status,
	transactionID string,
	recordedAt, createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		recordedAt:    recordedAt,
		createdAt:     createdAt,
	}
}

// Getters.
func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) Amount() int64         { return p.amount }
func (p *Payment) Method() Method        { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) RecordedAt() time.Time { return p.recordedAt }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }

// IsCompleted reports whether the payment settled.
func (p *Payment) IsCompleted() bool { return p.status == StatusCompleted }
