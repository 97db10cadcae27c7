package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	checkIn := date(2025, time.July, 10, 14)
	checkOut := date(2025, time.July, 13, 10)

	quote, err := ComputeStay(8000, checkIn, checkOut, 0)
	require.NoError(t, err)

	bk, err := NewBooking(
		uuid.New(), uuid.New(),
		GuestSnapshot{FirstName: "Amina", LastName: "Otieno", Phone: "+254700000001"},
		checkIn, checkOut,
		2, 1,
		quote,
		"KES", "mpesa", "",
	)
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	bk := newTestBooking(t)

	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.Equal(t, 3, bk.Nights())
	assert.Equal(t, int64(24000), bk.TotalAmount())
	assert.Equal(t, int64(0), bk.PaidAmount())
	assert.Equal(t, int64(24000), bk.Balance())
	assert.Equal(t, int64(1), bk.Version())
	assert.True(t, strings.HasPrefix(bk.BookingNumber(), "HB-"))
	assert.Len(t, bk.BookingNumber(), 9)
}

func TestNewBooking_Validation(t *testing.T) {
	checkIn := date(2025, time.July, 10, 14)
	checkOut := date(2025, time.July, 13, 10)
	quote, err := ComputeStay(8000, checkIn, checkOut, 0)
	require.NoError(t, err)
	snapshot := GuestSnapshot{FirstName: "Amina", LastName: "Otieno"}

	t.Run("missing guest", func(t *testing.T) {
		_, err := NewBooking(uuid.Nil, uuid.New(), snapshot, checkIn, checkOut, 1, 0, quote, "KES", "", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("no adults", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), snapshot, checkIn, checkOut, 0, 2, quote, "KES", "", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("inverted dates", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), snapshot, checkOut, checkIn, 1, 0, quote, "KES", "", "")
		assert.True(t, domain.IsCode(err, "INVALID_DATE_RANGE"))
	})
}

func TestBooking_Lifecycle(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.MarkCheckedIn())
	assert.Equal(t, StatusCheckedIn, bk.Status())
	assert.NotNil(t, bk.CheckedInAt())

	require.NoError(t, bk.MarkCheckedOut())
	assert.Equal(t, StatusCheckedOut, bk.Status())
	assert.NotNil(t, bk.CheckedOutAt())
}

func TestBooking_InvalidTransitions(t *testing.T) {
	t.Run("check out before check in", func(t *testing.T) {
		bk := newTestBooking(t)
		err := bk.MarkCheckedOut()
		assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
		assert.Equal(t, StatusConfirmed, bk.Status())
	})

	t.Run("double check in", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.MarkCheckedIn())
		err := bk.MarkCheckedIn()
		assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
	})

	t.Run("cancel after checkout", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.MarkCheckedIn())
		require.NoError(t, bk.MarkCheckedOut())
		err := bk.Cancel("too late")
		assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
		assert.Equal(t, StatusCheckedOut, bk.Status())
	})

	t.Run("check in after cancel", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.Cancel("plans changed"))
		err := bk.MarkCheckedIn()
		assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
	})
}

func TestBooking_Cancel(t *testing.T) {
	t.Run("from confirmed", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.Cancel("plans changed"))
		assert.Equal(t, StatusCancelled, bk.Status())
		assert.Equal(t, "plans changed", bk.CancelNote())
		assert.NotNil(t, bk.CancelledAt())
	})

	t.Run("from checked_in", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.MarkCheckedIn())
		require.NoError(t, bk.Cancel("emergency"))
		assert.Equal(t, StatusCancelled, bk.Status())
	})
}

func TestBooking_ApplyPayment(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.ApplyPayment(10000))
	assert.Equal(t, int64(10000), bk.PaidAmount())
	assert.Equal(t, int64(14000), bk.Balance())
	assert.False(t, bk.IsFullyPaid())

	require.NoError(t, bk.ApplyPayment(14000))
	assert.Equal(t, int64(0), bk.Balance())
	assert.True(t, bk.IsFullyPaid())
}

func TestBooking_ApplyPayment_Overpayment(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.ApplyPayment(20000))

	err := bk.ApplyPayment(5000)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, "OVERPAYMENT_REJECTED"))

	// Rejected payment leaves the booking untouched.
	assert.Equal(t, int64(20000), bk.PaidAmount())
	assert.Equal(t, int64(4000), bk.Balance())
}

func TestBooking_ApplyPayment_Invalid(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		bk := newTestBooking(t)
		assert.True(t, domain.IsKind(bk.ApplyPayment(0), domain.KindValidation))
		assert.True(t, domain.IsKind(bk.ApplyPayment(-100), domain.KindValidation))
	})

	t.Run("cancelled booking", func(t *testing.T) {
		bk := newTestBooking(t)
		require.NoError(t, bk.Cancel("plans changed"))
		err := bk.ApplyPayment(1000)
		assert.True(t, domain.IsCode(err, "INVALID_TRANSITION"))
		assert.Equal(t, int64(0), bk.PaidAmount())
	})
}

func TestBooking_StartsToday(t *testing.T) {
	bk := newTestBooking(t)

	assert.True(t, bk.StartsToday(date(2025, time.July, 10, 23)))
	assert.True(t, bk.StartsToday(date(2025, time.July, 10, 0)))
	assert.False(t, bk.StartsToday(date(2025, time.July, 9, 23)))
	assert.False(t, bk.StartsToday(date(2025, time.July, 11, 0)))
}
