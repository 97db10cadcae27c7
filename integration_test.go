//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/domain"
	frontdeskEvents "github.com/acacia-hms/service-frontdesk/internal/events"
	"github.com/acacia-hms/service-frontdesk/internal/repository"
)

// TestCheckout_CreatesCleaningTask verifies the full checkout loop: checking
// a guest out sends the room to cleaning and publishes a checkout event, the
// consumer reacts by opening a high-priority cleaning task, and completing
// that task returns the room to available.
func TestCheckout_CreatesCleaningTask(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFrontdeskStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed an occupied room with a checked-in booking.
	roomID := uuid.New()
	guestID := uuid.New()
	bookingID := uuid.New()
	seedRoom(t, infra.DB, roomID, "204", "occupied")
	seedGuest(t, infra.DB, guestID)
	seedBookingInCheckedInState(t, infra.DB, bookingID, guestID, roomID)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Check the guest out.
	result, err := stack.Bookings.CheckOutBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, "checked_out", result.Status)
	assert.NotNil(t, result.CheckedOutAt)

	// The room goes to cleaning in the same transaction as the checkout.
	waitForRoomStatus(t, infra.DB, roomID, "cleaning", 5*time.Second)

	// Assert: BookingCheckedOutEvent on the booking topic.
	ce := consumeOneEvent(t, infra.KafkaBrokers, frontdeskEvents.TopicBookingEvents,
		frontdeskEvents.BookingCheckedOut, 15*time.Second)

	var checkedOut frontdeskEvents.BookingCheckedOutEvent
	require.NoError(t, ce.ParseData(&checkedOut))
	assert.Equal(t, bookingID, checkedOut.BookingID)
	assert.Equal(t, roomID, checkedOut.RoomID)
	assert.Equal(t, "204", checkedOut.RoomNumber)
	assert.Equal(t, int64(0), checkedOut.Balance)

	// The consumer opens a high-priority cleaning task for the room.
	task := waitForCleaningTask(t, infra.DB, roomID, 15*time.Second)
	assert.Equal(t, "high", task.Priority)

	// Completing the task returns the room to available. Checkout tasks are
	// unassigned, so any housekeeper may pick them up.
	housekeeper := application.TaskActor{Staff: uuid.New().String(), Restricted: true}
	_, err = stack.Housekeeping.StartTask(context.Background(), task.ID, housekeeper)
	require.NoError(t, err)
	_, err = stack.Housekeeping.CompleteTask(context.Background(), task.ID, housekeeper)
	require.NoError(t, err)

	waitForRoomStatus(t, infra.DB, roomID, "available", 5*time.Second)
}

// TestCheckout_AtomicWithRoom verifies that a failed checkout leaves both the
// booking and its room untouched.
func TestCheckout_AtomicWithRoom(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFrontdeskStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	// A confirmed booking cannot be checked out; the attempt must not move
	// the room either.
	roomID := uuid.New()
	guestID := uuid.New()
	bookingID := uuid.New()
	seedRoom(t, infra.DB, roomID, "305", "occupied")
	seedGuest(t, infra.DB, guestID)

	now := time.Now().UTC()
	model := repository.BookingModel{
		ID:            bookingID,
		BookingNumber: "HB-ATOM01",
		GuestID:       guestID,
		RoomID:        roomID,
		GuestSnapshot: []byte(`{"first_name":"Amina","last_name":"Otieno"}`),
		Status:        "confirmed",
		CheckIn:       now.Add(24 * time.Hour),
		CheckOut:      now.Add(72 * time.Hour),
		Nights:        2,
		Adults:        1,
		TotalAmount:   16000,
		Currency:      "KES",
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, infra.DB.Create(&model).Error)

	_, err := stack.Bookings.CheckOutBooking(context.Background(), bookingID)
	require.Error(t, err)

	var after repository.BookingModel
	require.NoError(t, infra.DB.Where("id = ?", bookingID).First(&after).Error)
	assert.Equal(t, "confirmed", after.Status)

	var room repository.RoomModel
	require.NoError(t, infra.DB.Where("id = ?", roomID).First(&room).Error)
	assert.Equal(t, "occupied", room.Status)
}

// TestCreateBooking_RoomUnavailable verifies that creation re-validates the
// room inside the transaction: a room that is not available is rejected even
// when the caller skipped the availability search, and nothing is persisted.
func TestCreateBooking_RoomUnavailable(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFrontdeskStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	roomID := uuid.New()
	guestID := uuid.New()
	seedRoom(t, infra.DB, roomID, "402", "occupied")
	seedGuest(t, infra.DB, guestID)

	now := time.Now().UTC()
	_, err := stack.Bookings.CreateBooking(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  now.Add(24 * time.Hour),
		CheckOut: now.Add(72 * time.Hour),
		Adults:   2,
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, "ROOM_UNAVAILABLE"))

	var count int64
	require.NoError(t, infra.DB.Model(&repository.BookingModel{}).
		Where("room_id = ?", roomID).Count(&count).Error)
	assert.Zero(t, count)

	var room repository.RoomModel
	require.NoError(t, infra.DB.Where("id = ?", roomID).First(&room).Error)
	assert.Equal(t, "occupied", room.Status)
}

// TestBookingLifecycle drives a booking end to end through the service:
// create (same-day stay, so the room occupies immediately), pay in full,
// check in, check out.
func TestBookingLifecycle(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFrontdeskStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	roomID := uuid.New()
	guestID := uuid.New()
	seedRoom(t, infra.DB, roomID, "118", "available")
	seedGuest(t, infra.DB, guestID)

	now := time.Now().UTC()
	created, err := stack.Bookings.CreateBooking(context.Background(), application.CreateBookingRequest{
		GuestID:       guestID,
		RoomID:        roomID,
		CheckIn:       now,
		CheckOut:      now.Add(48 * time.Hour),
		Adults:        2,
		PaymentMethod: "mpesa",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", created.Status)
	assert.Regexp(t, `^HB-`, created.BookingNumber)
	assert.Equal(t, 2, created.Nights)
	assert.Equal(t, int64(16000), created.TotalAmount)
	assert.Equal(t, int64(16000), created.Balance)
	assert.Equal(t, "KES", created.Currency)

	// Same-day stay: the room occupies in the creation transaction.
	var room repository.RoomModel
	require.NoError(t, infra.DB.Where("id = ?", roomID).First(&room).Error)
	assert.Equal(t, "occupied", room.Status)

	pay, err := stack.Bookings.RecordPayment(context.Background(), created.ID, application.RecordPaymentRequest{
		Amount: 16000,
		Method: "mpesa",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", pay.Status)

	checkedIn, err := stack.Bookings.CheckInBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked_in", checkedIn.Status)
	assert.Equal(t, int64(0), checkedIn.Balance)

	checkedOut, err := stack.Bookings.CheckOutBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked_out", checkedOut.Status)

	waitForRoomStatus(t, infra.DB, roomID, "cleaning", 5*time.Second)
}
