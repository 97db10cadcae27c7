package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	bookingDomain "github.com/acacia-hms/service-frontdesk/internal/domain/booking"
	"github.com/acacia-hms/service-frontdesk/internal/domain/payment"
)

// DefaultTaxRate is the VAT rate applied on invoices.
const DefaultTaxRate = 0.16

// InvoiceDTO is an itemized bill for a booking. The stay charge is priced
// the same way booking creation priced it, then VAT is broken out on top.
type InvoiceDTO struct {
	BookingID     uuid.UUID    `json:"booking_id"`
	BookingNumber string       `json:"booking_number"`
	GuestName     string       `json:"guest_name"`
	CheckIn       time.Time    `json:"check_in"`
	CheckOut      time.Time    `json:"check_out"`
	Nights        int          `json:"nights"`
	NightlyRate   int64        `json:"nightly_rate"`
	Subtotal      int64        `json:"subtotal"`
	Tax           int64        `json:"tax"`
	TaxRate       float64      `json:"tax_rate"`
	Total         int64        `json:"total"`
	PaidAmount    int64        `json:"paid_amount"`
	Balance       int64        `json:"balance"`
	Currency      string       `json:"currency"`
	Payments      []PaymentDTO `json:"payments"`
	IssuedAt      time.Time    `json:"issued_at"`
}

// RevenueReportDTO summarizes completed payments over a period.
type RevenueReportDTO struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	TotalRevenue int64            `json:"total_revenue"`
	ByMethod     map[string]int64 `json:"by_method"`
}

// BillingService produces invoices and revenue reports from the booking and
// payment records. It never mutates state.
type BillingService struct {
	bookings bookingDomain.BookingRepository
	payments payment.PaymentRepository
	taxRate  float64
	logger   *zap.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	bookings bookingDomain.BookingRepository,
	payments payment.PaymentRepository,
	taxRate float64,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		bookings: bookings,
		payments: payments,
		taxRate:  taxRate,
		logger:   logger,
	}
}

// GetInvoice builds the itemized bill for a booking.
func (s *BillingService) GetInvoice(ctx context.Context, bookingID uuid.UUID) (*InvoiceDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	pays, err := s.payments.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	payDTOs := make([]PaymentDTO, len(pays))
	for i, p := range pays {
		payDTOs[i] = toPaymentDTO(p)
	}

	// The stay is re-priced with the same calculator booking creation used,
	// so the invoice subtotal always matches the booking total.
	nightlyRate := int64(0)
	if bk.Nights() > 0 {
		nightlyRate = bk.TotalAmount() / int64(bk.Nights())
	}
	quote, err := bookingDomain.ComputeStay(nightlyRate, bk.CheckIn(), bk.CheckOut(), s.taxRate)
	if err != nil {
		return nil, err
	}

	return &InvoiceDTO{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestName:     bk.GuestSnapshot().FullName(),
		CheckIn:       bk.CheckIn(),
		CheckOut:      bk.CheckOut(),
		Nights:        quote.Nights,
		NightlyRate:   nightlyRate,
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		TaxRate:       s.taxRate,
		Total:         quote.Total,
		PaidAmount:    bk.PaidAmount(),
		Balance:       bk.Balance(),
		Currency:      bk.Currency(),
		Payments:      payDTOs,
		IssuedAt:      time.Now().UTC(),
	}, nil
}

// ListPayments returns the payments recorded against a booking.
func (s *BillingService) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]PaymentDTO, error) {
	if _, err := s.bookings.FindByID(ctx, bookingID); err != nil {
		return nil, err
	}

	pays, err := s.payments.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	dtos := make([]PaymentDTO, len(pays))
	for i, p := range pays {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, nil
}

// GetRevenueReport sums completed payments recorded in [from, to), grouped
// by payment method (admin).
func (s *BillingService) GetRevenueReport(ctx context.Context, from, to time.Time) (*RevenueReportDTO, error) {
	if !to.After(from) {
		return nil, domain.NewValidationError("report period end must be after start")
	}

	byMethod, err := s.payments.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	var total int64
	for _, amount := range byMethod {
		total += amount
	}

	return &RevenueReportDTO{
		From:         from,
		To:           to,
		TotalRevenue: total,
		ByMethod:     byMethod,
	}, nil
}
