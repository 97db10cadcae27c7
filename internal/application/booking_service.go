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
	"github.com/acacia-hms/service-frontdesk/internal/events"
	"github.com/acacia-hms/service-frontdesk/internal/platform/kafka"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	GuestID         uuid.UUID `json:"guest_id" binding:"required"`
	RoomID          uuid.UUID `json:"room_id" binding:"required"`
	CheckIn         time.Time `json:"check_in" binding:"required"`
	CheckOut        time.Time `json:"check_out" binding:"required"`
	Adults          int       `json:"adults" binding:"required"`
	Children        int       `json:"children"`
	PaymentMethod   string    `json:"payment_method"`
	SpecialRequests string    `json:"special_requests"`
}

// RecordPaymentRequest holds the data for applying a payment to a booking.
type RecordPaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	Method        string `json:"method" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID                   `json:"id"`
	BookingNumber   string                      `json:"booking_number"`
	GuestID         uuid.UUID                   `json:"guest_id"`
	RoomID          uuid.UUID                   `json:"room_id"`
	Guest           bookingDomain.GuestSnapshot `json:"guest"`
	Status          string                      `json:"status"`
	CheckIn         time.Time                   `json:"check_in"`
	CheckOut        time.Time                   `json:"check_out"`
	Nights          int                         `json:"nights"`
	Adults          int                         `json:"adults"`
	Children        int                         `json:"children"`
	TotalAmount     int64                       `json:"total_amount"`
	PaidAmount      int64                       `json:"paid_amount"`
	Balance         int64                       `json:"balance"`
	Currency        string                      `json:"currency"`
	PaymentMethod   string                      `json:"payment_method,omitempty"`
	SpecialRequests string                      `json:"special_requests,omitempty"`
	CheckedInAt     *time.Time                  `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time                  `json:"checked_out_at,omitempty"`
	CancelledAt     *time.Time                  `json:"cancelled_at,omitempty"`
	CancelNote      string                      `json:"cancel_note,omitempty"`
	Version         int64                       `json:"version"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// PaymentDTO is the response representation of a recorded payment.
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

const currencyKES = "KES"

// BookingService orchestrates the booking lifecycle. Every state-mutating
// operation runs inside one transaction covering the booking and its room,
// so the pair can never be left half-applied.
type BookingService struct {
	uow      UnitOfWork
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(uow UnitOfWork, producer *kafka.Producer, logger *zap.Logger) *BookingService {
	return &BookingService{
		uow:      uow,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a confirmed booking for an available room.
//
// The room's availability is re-validated inside the transaction even though
// callers are expected to have consulted the availability search first. If
// the stay starts today the room becomes occupied in the same transaction.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	if req.PaymentMethod != "" {
		if _, err := payment.ParseMethod(req.PaymentMethod); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	var bk *bookingDomain.Booking
	var roomNumber string
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		g, err := repos.Guests.FindByID(ctx, req.GuestID)
		if err != nil {
			return err
		}

		rm, err := repos.Rooms.FindByID(ctx, req.RoomID)
		if err != nil {
			return err
		}
		if !rm.IsAvailable() {
			return domain.NewRoomUnavailableError(rm.Number(), string(rm.Status()))
		}
		roomNumber = rm.Number()

		quote, err := bookingDomain.ComputeStay(rm.Price(), req.CheckIn, req.CheckOut, 0)
		if err != nil {
			return err
		}

		snapshot := bookingDomain.GuestSnapshot{
			FirstName:       g.FirstName(),
			LastName:        g.LastName(),
			Email:           g.Email(),
			Phone:           g.Phone(),
			IDNumber:        g.IDNumber(),
			Nationality:     g.Nationality(),
			SpecialRequests: req.SpecialRequests,
		}

		bk, err = bookingDomain.NewBooking(
			g.ID(), rm.ID(), snapshot,
			req.CheckIn, req.CheckOut,
			req.Adults, req.Children,
			quote,
			currencyKES, req.PaymentMethod, req.SpecialRequests,
		)
		if err != nil {
			return err
		}

		if err := repos.Bookings.Save(ctx, bk); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		// Same-day stays occupy the room immediately; future stays leave it
		// bookable until an explicit check-in.
		if bk.StartsToday(time.Now().UTC()) {
			rm.MarkOccupied()
			if err := repos.Rooms.Update(ctx, rm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBookingCreated(ctx, bk, roomNumber)

	s.logger.Info("booking created",
		zap.String("booking_number", bk.BookingNumber()),
		zap.String("room_number", roomNumber),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// CheckInBooking moves a confirmed booking to checked_in and occupies its room.
func (s *BookingService) CheckInBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	var roomNumber string
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		bk, err = repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bk.MarkCheckedIn(); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := repos.Bookings.Update(ctx, bk); err != nil {
			return err
		}

		rm, err := repos.Rooms.FindByID(ctx, bk.RoomID())
		if err != nil {
			return err
		}
		roomNumber = rm.Number()
		rm.MarkOccupied()
		return repos.Rooms.Update(ctx, rm)
	})
	if err != nil {
		return nil, err
	}

	evt := events.BookingCheckedInEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		RoomID:        bk.RoomID(),
		RoomNumber:    roomNumber,
		CheckedInAt:   *bk.CheckedInAt(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCheckedIn, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckOutBooking moves a checked_in booking to checked_out and sends its
// room to cleaning. The room only returns to available once housekeeping
// completes the cleaning task the checkout event triggers.
func (s *BookingService) CheckOutBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	var roomNumber string
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		bk, err = repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bk.MarkCheckedOut(); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := repos.Bookings.Update(ctx, bk); err != nil {
			return err
		}

		rm, err := repos.Rooms.FindByID(ctx, bk.RoomID())
		if err != nil {
			return err
		}
		roomNumber = rm.Number()
		rm.MarkCleaning()
		return repos.Rooms.Update(ctx, rm)
	})
	if err != nil {
		return nil, err
	}

	evt := events.BookingCheckedOutEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		RoomID:        bk.RoomID(),
		RoomNumber:    roomNumber,
		Balance:       bk.Balance(),
		CheckedOutAt:  *bk.CheckedOutAt(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCheckedOut, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking that is not yet checked out. The room is
// left as-is: reclaiming an occupied room goes through the explicit
// room-status flow.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, cancelledBy uuid.UUID, reason string) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		bk, err = repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bk.Cancel(reason); err != nil {
			return err
		}
		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CancelledBy:   cancelledBy,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// RecordPayment applies a completed payment to a booking. The booking's
// paidAmount and the payment row are written in one transaction so the sum
// of completed payments always equals paidAmount.
func (s *BookingService) RecordPayment(ctx context.Context, bookingID uuid.UUID, req RecordPaymentRequest) (*PaymentDTO, error) {
	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var bk *bookingDomain.Booking
	var pay *payment.Payment
	err = s.uow.WithinTx(ctx, func(repos Repositories) error {
		var err error
		bk, err = repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bk.ApplyPayment(req.Amount); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := repos.Bookings.Update(ctx, bk); err != nil {
			return err
		}

		pay, err = payment.NewPayment(bk.ID(), req.Amount, method, req.TransactionID)
		if err != nil {
			return err
		}
		return repos.Payments.Save(ctx, pay)
	})
	if err != nil {
		return nil, err
	}

	evt := events.PaymentRecordedEvent{
		PaymentID:     pay.ID(),
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		Amount:        pay.Amount(),
		Method:        string(pay.Method()),
		PaidAmount:    bk.PaidAmount(),
		Balance:       bk.Balance(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.PaymentRecorded, evt)

	s.logger.Info("payment recorded",
		zap.String("booking_number", bk.BookingNumber()),
		zap.Int64("amount", pay.Amount()),
		zap.Int64("balance", bk.Balance()),
	)
	result := toPaymentDTO(pay)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.uow.Repos().Bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByNumber retrieves a single booking by its booking number.
func (s *BookingService) GetBookingByNumber(ctx context.Context, number string) (*BookingDTO, error) {
	bk, err := s.uow.Repos().Bookings.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetGuestBookings retrieves paginated bookings for a specific guest.
func (s *BookingService) GetGuestBookings(ctx context.Context, guestID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.uow.Repos().Bookings.FindByGuestID(ctx, guestID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetRoomBookings retrieves paginated bookings for a specific room.
func (s *BookingService) GetRoomBookings(ctx context.Context, roomID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.uow.Repos().Bookings.FindByRoomID(ctx, roomID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// DeleteBooking removes a booking permanently (admin only).
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.uow.WithinTx(ctx, func(repos Repositories) error {
		if _, err := repos.Bookings.FindByID(ctx, bookingID); err != nil {
			return err
		}
		return repos.Bookings.Delete(ctx, bookingID)
	})
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of bookings, optionally filtered
// by status (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, status string, page, limit int) ([]BookingDTO, int64, error) {
	var statusFilter bookingDomain.BookingStatus
	if status != "" {
		parsed, err := bookingDomain.ParseBookingStatus(status)
		if err != nil {
			return nil, 0, domain.NewValidationError(err.Error())
		}
		statusFilter = parsed
	}

	bookings, total, err := s.uow.Repos().Bookings.ListAll(ctx, statusFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.uow.Repos().Bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		GuestID:         bk.GuestID(),
		RoomID:          bk.RoomID(),
		Guest:           bk.GuestSnapshot(),
		Status:          string(bk.Status()),
		CheckIn:         bk.CheckIn(),
		CheckOut:        bk.CheckOut(),
		Nights:          bk.Nights(),
		Adults:          bk.Adults(),
		Children:        bk.Children(),
		TotalAmount:     bk.TotalAmount(),
		PaidAmount:      bk.PaidAmount(),
		Balance:         bk.Balance(),
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
	}
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Amount:        p.Amount(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		RecordedAt:    p.RecordedAt(),
	}
}

func (s *BookingService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking, roomNumber string) {
	evt := events.BookingCreatedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestID:       bk.GuestID(),
		RoomID:        bk.RoomID(),
		RoomNumber:    roomNumber,
		CheckIn:       bk.CheckIn(),
		CheckOut:      bk.CheckOut(),
		Nights:        bk.Nights(),
		TotalAmount:   bk.TotalAmount(),
		Currency:      bk.Currency(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-frontdesk", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
