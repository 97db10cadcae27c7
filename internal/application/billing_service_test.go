package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	bookingDomain "github.com/acacia-hms/service-frontdesk/internal/domain/booking"
	"github.com/acacia-hms/service-frontdesk/internal/domain/payment"
)

type stubBookingRepo struct {
	bookingDomain.BookingRepository
	byID map[uuid.UUID]*bookingDomain.Booking
}

func (s *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	bk, ok := s.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

type stubPaymentRepo struct {
	payment.PaymentRepository
	byBooking map[uuid.UUID][]*payment.Payment
	revenue   map[string]int64
}

func (s *stubPaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*payment.Payment, error) {
	return s.byBooking[bookingID], nil
}

func (s *stubPaymentRepo) RevenueBetween(_ context.Context, _, _ time.Time) (map[string]int64, error) {
	return s.revenue, nil
}

func seedBooking(t *testing.T, nightlyRate int64, nights int) *bookingDomain.Booking {
	t.Helper()
	checkIn := time.Date(2025, time.August, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(time.Duration(nights) * 24 * time.Hour)

	quote, err := bookingDomain.ComputeStay(nightlyRate, checkIn, checkOut, 0)
	require.NoError(t, err)

	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(),
		bookingDomain.GuestSnapshot{FirstName: "Amina", LastName: "Otieno", Phone: "+254700000001"},
		checkIn, checkOut,
		2, 0,
		quote,
		"KES", "mpesa", "",
	)
	require.NoError(t, err)
	return bk
}

func TestBillingService_GetInvoice(t *testing.T) {
	bk := seedBooking(t, 7500, 3)
	require.NoError(t, bk.ApplyPayment(10000))

	pay, err := payment.NewPayment(bk.ID(), 10000, payment.MethodMpesa, "MPESA-TX-001")
	require.NoError(t, err)

	svc := NewBillingService(
		&stubBookingRepo{byID: map[uuid.UUID]*bookingDomain.Booking{bk.ID(): bk}},
		&stubPaymentRepo{byBooking: map[uuid.UUID][]*payment.Payment{bk.ID(): {pay}}},
		0.16,
		zap.NewNop(),
	)

	invoice, err := svc.GetInvoice(context.Background(), bk.ID())
	require.NoError(t, err)

	// The subtotal must agree exactly with the amount priced at creation.
	assert.Equal(t, bk.TotalAmount(), invoice.Subtotal)
	assert.Equal(t, 3, invoice.Nights)
	assert.Equal(t, int64(7500), invoice.NightlyRate)
	assert.Equal(t, int64(3600), invoice.Tax)
	assert.Equal(t, invoice.Subtotal+invoice.Tax, invoice.Total)
	assert.Equal(t, int64(10000), invoice.PaidAmount)
	assert.Equal(t, "Amina Otieno", invoice.GuestName)
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, "MPESA-TX-001", invoice.Payments[0].TransactionID)
}

func TestBillingService_GetInvoice_NotFound(t *testing.T) {
	svc := NewBillingService(
		&stubBookingRepo{byID: map[uuid.UUID]*bookingDomain.Booking{}},
		&stubPaymentRepo{},
		0.16,
		zap.NewNop(),
	)

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestBillingService_GetRevenueReport(t *testing.T) {
	svc := NewBillingService(
		&stubBookingRepo{},
		&stubPaymentRepo{revenue: map[string]int64{"mpesa": 45000, "cash": 12000}},
		0.16,
		zap.NewNop(),
	)

	from := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	report, err := svc.GetRevenueReport(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(57000), report.TotalRevenue)
	assert.Equal(t, int64(45000), report.ByMethod["mpesa"])
}

func TestBillingService_GetRevenueReport_InvalidPeriod(t *testing.T) {
	svc := NewBillingService(&stubBookingRepo{}, &stubPaymentRepo{}, 0.16, zap.NewNop())

	now := time.Now().UTC()
	_, err := svc.GetRevenueReport(context.Background(), now, now)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
