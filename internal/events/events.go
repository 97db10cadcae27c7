package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics the front-desk service produces to and consumes from.
const (
	TopicBookingEvents      = "frontdesk.booking.events"
	TopicHousekeepingEvents = "frontdesk.housekeeping.events"
)

// Event types carried in the CloudEvent envelope.
const (
	BookingCreated    = "booking.created"
	BookingCheckedIn  = "booking.checked_in"
	BookingCheckedOut = "booking.checked_out"
	BookingCancelled  = "booking.cancelled"
	PaymentRecorded   = "booking.payment_recorded"
	TaskCompleted     = "housekeeping.task_completed"
)

// BookingCreatedEvent is published when a new booking is confirmed.
type BookingCreatedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	GuestID       uuid.UUID `json:"guest_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCheckedInEvent is published when a guest checks in.
type BookingCheckedInEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	CheckedInAt   time.Time `json:"checked_in_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCheckedOutEvent is published when a guest checks out. The
// housekeeping consumer reacts to it by opening a cleaning task.
type BookingCheckedOutEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	Balance       int64     `json:"balance"`
	CheckedOutAt  time.Time `json:"checked_out_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CancelledBy   uuid.UUID `json:"cancelled_by"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentRecordedEvent is published when a payment settles against a booking.
type PaymentRecordedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	PaidAmount    int64     `json:"paid_amount"`
	Balance       int64     `json:"balance"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// TaskCompletedEvent is published when housekeeping finishes a task.
type TaskCompletedEvent struct {
	TaskID     uuid.UUID `json:"task_id"`
	RoomID     uuid.UUID `json:"room_id"`
	TaskType   string    `json:"task_type"`
	AssignedTo string    `json:"assigned_to"`
	OccurredAt time.Time `json:"occurred_at"`
}
