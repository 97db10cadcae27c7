package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for the booking lifecycle. Status moves
// confirmed -> checked_in -> checked_out, with cancellation possible until
// checkout. Financial fields obey paidAmount <= totalAmount at all times.
type Booking struct {
	id              uuid.UUID
	bookingNumber   string
	guestID         uuid.UUID
	roomID          uuid.UUID
	guestSnapshot   GuestSnapshot
	status          BookingStatus
	checkIn         time.Time
	checkOut        time.Time
	nights          int
	adults          int
	children        int
	totalAmount     int64
	paidAmount      int64
	currency        string
	paymentMethod   string
	specialRequests string

	checkedInAt  *time.Time
	checkedOutAt *time.Time
	cancelledAt  *time.Time
	cancelNote   string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "HB-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "HB-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=confirmed and
// paidAmount=0. The total amount comes from ComputeStay at creation time and
// is never silently recomputed afterwards.
func NewBooking(
	guestID, roomID uuid.UUID,
	snapshot GuestSnapshot,
	checkIn, checkOut time.Time,
	adults, children int,
	quote StayQuote,
	currency, paymentMethod, specialRequests string,
) (*Booking, error) {
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if snapshot.FirstName == "" && snapshot.LastName == "" {
		return nil, domain.NewValidationError("guest name is required")
	}
	if !checkOut.After(checkIn) {
		return nil, domain.NewInvalidDateRangeError("check-out must be after check-in")
	}
	if adults < 1 {
		return nil, domain.NewValidationError("at least one adult is required")
	}
	if children < 0 {
		return nil, domain.NewValidationError("children cannot be negative")
	}
	if quote.Nights < 1 || quote.Total <= 0 {
		return nil, domain.NewValidationError("stay quote is invalid")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		bookingNumber:   bookingNumber,
		guestID:         guestID,
		roomID:          roomID,
		guestSnapshot:   snapshot,
		status:          StatusConfirmed,
		checkIn:         checkIn,
		checkOut:        checkOut,
		nights:          quote.Nights,
		adults:          adults,
		children:        children,
		totalAmount:     quote.Total,
		paidAmount:      0,
		currency:        currency,
		paymentMethod:   paymentMethod,
		specialRequests: specialRequests,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	guestID, roomID uuid.UUID,
	snapshot GuestSnapshot,
	status BookingStatus,
	checkIn, checkOut time.Time,
	nights, adults, children int,
	totalAmount, paidAmount int64,
	currency, paymentMethod, specialRequests string,
	checkedInAt, checkedOutAt, cancelledAt *time.Time,
	cancelNote string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		bookingNumber:   bookingNumber,
		guestID:         guestID,
		roomID:          roomID,
		guestSnapshot:   snapshot,
		status:          status,
		checkIn:         checkIn,
		checkOut:        checkOut,
		nights:          nights,
		adults:          adults,
		children:        children,
		totalAmount:     totalAmount,
		paidAmount:      paidAmount,
		currency:        currency,
		paymentMethod:   paymentMethod,
		specialRequests: specialRequests,
		checkedInAt:     checkedInAt,
		checkedOutAt:    checkedOutAt,
		cancelledAt:     cancelledAt,
		cancelNote:      cancelNote,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// GuestID returns the registered guest's ID.
func (b *Booking) GuestID() uuid.UUID { return b.guestID }

// RoomID returns the booked room's ID.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// GuestSnapshot returns the guest details captured at creation time.
func (b *Booking) GuestSnapshot() GuestSnapshot { return b.guestSnapshot }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CheckIn returns the stay's check-in date.
func (b *Booking) CheckIn() time.Time { return b.checkIn }

// CheckOut returns the stay's check-out date.
func (b *Booking) CheckOut() time.Time { return b.checkOut }

// Nights returns the billable night count derived at creation time.
func (b *Booking) Nights() int { return b.nights }

// Adults returns the number of adult guests.
func (b *Booking) Adults() int { return b.adults }

// Children returns the number of child guests.
func (b *Booking) Children() int { return b.children }

// TotalAmount returns the total charge for the stay.
func (b *Booking) TotalAmount() int64 { return b.totalAmount }

// PaidAmount returns the sum of completed payments applied so far.
func (b *Booking) PaidAmount() int64 { return b.paidAmount }

// Balance returns the outstanding amount, never negative.
func (b *Booking) Balance() int64 { return b.totalAmount - b.paidAmount }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// PaymentMethod returns the guest's preferred payment method.
func (b *Booking) PaymentMethod() string { return b.paymentMethod }

// SpecialRequests returns any special requests for the stay.
func (b *Booking) SpecialRequests() string { return b.specialRequests }

// CheckedInAt returns the time the guest checked in, or nil.
func (b *Booking) CheckedInAt() *time.Time { return b.checkedInAt }

// CheckedOutAt returns the time the guest checked out, or nil.
func (b *Booking) CheckedOutAt() *time.Time { return b.checkedOutAt }

// CancelledAt returns the time the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// CancelNote returns the cancellation reason.
func (b *Booking) CancelNote() string { return b.cancelNote }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// StartsToday reports whether the stay begins on the given calendar day (UTC).
// A booking that starts today occupies its room immediately at creation.
func (b *Booking) StartsToday(now time.Time) bool {
	y1, m1, d1 := b.checkIn.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarkCheckedIn transitions the booking from confirmed to checked_in.
func (b *Booking) MarkCheckedIn() error {
	if !b.status.CanTransitionTo(StatusCheckedIn) {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusCheckedIn))
	}
	now := time.Now().UTC()
	b.status = StatusCheckedIn
	b.checkedInAt = &now
	b.updatedAt = now
	return nil
}

// MarkCheckedOut transitions the booking from checked_in to checked_out.
func (b *Booking) MarkCheckedOut() error {
	if !b.status.CanTransitionTo(StatusCheckedOut) {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusCheckedOut))
	}
	now := time.Now().UTC()
	b.status = StatusCheckedOut
	b.checkedOutAt = &now
	b.updatedAt = now
	return nil
}

// Cancel transitions the booking to cancelled if it is not in a terminal state.
func (b *Booking) Cancel(reason string) error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidTransitionError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelNote = reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// ApplyPayment records a completed payment against the outstanding balance.
// A payment that would push paidAmount past totalAmount is rejected with no
// mutation. Cancelled bookings take no further payments.
func (b *Booking) ApplyPayment(amount int64) error {
	if b.status == StatusCancelled {
		return domain.NewInvalidTransitionError(string(b.status), "payment")
	}
	if amount <= 0 {
		return domain.NewValidationError("payment amount must be positive")
	}
	if b.paidAmount+amount > b.totalAmount {
		return domain.NewOverpaymentError(b.Balance())
	}
	b.paidAmount += amount
	b.updatedAt = time.Now().UTC()
	return nil
}

// IsFullyPaid returns true once the outstanding balance reaches zero.
func (b *Booking) IsFullyPaid() bool {
	return b.paidAmount == b.totalAmount
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
