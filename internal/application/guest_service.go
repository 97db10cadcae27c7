package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	"github.com/acacia-hms/service-frontdesk/internal/domain/guest"
)

// RegisterGuestRequest holds the data needed to register a guest.
type RegisterGuestRequest struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	IDNumber         string `json:"id_number" binding:"required"`
	Nationality      string `json:"nationality"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	SpecialRequests  string `json:"special_requests"`
}

// UpdateGuestRequest holds the mutable guest attributes. Empty fields are
// left unchanged.
type UpdateGuestRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	IDNumber         string `json:"id_number"`
	Nationality      string `json:"nationality"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	SpecialRequests  string `json:"special_requests"`
}

// GuestDTO is the response representation of a guest.
type GuestDTO struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	IDNumber         string    `json:"id_number"`
	Nationality      string    `json:"nationality,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	SpecialRequests  string    `json:"special_requests,omitempty"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GuestService manages the guest registry.
type GuestService struct {
	guests guest.GuestRepository
	logger *zap.Logger
}

// NewGuestService creates a new GuestService.
func NewGuestService(guests guest.GuestRepository, logger *zap.Logger) *GuestService {
	return &GuestService{guests: guests, logger: logger}
}

// RegisterGuest registers a new guest. Email addresses are unique when set.
func (s *GuestService) RegisterGuest(ctx context.Context, req RegisterGuestRequest) (*GuestDTO, error) {
	if req.Email != "" {
		if existing, err := s.guests.FindByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, domain.NewConflictError(fmt.Sprintf("guest with email %s already exists", req.Email))
		}
	}

	g, err := guest.NewGuest(
		req.FirstName, req.LastName,
		req.Email, req.Phone, req.IDNumber,
		req.Nationality, req.Address,
		req.EmergencyContact, req.SpecialRequests,
	)
	if err != nil {
		return nil, err
	}

	if err := s.guests.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save guest: %w", err)
	}

	s.logger.Info("guest registered", zap.String("guest_id", g.ID().String()))
	result := toGuestDTO(g)
	return &result, nil
}

// GetGuest retrieves a guest by ID.
func (s *GuestService) GetGuest(ctx context.Context, guestID uuid.UUID) (*GuestDTO, error) {
	g, err := s.guests.FindByID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	result := toGuestDTO(g)
	return &result, nil
}

// SearchGuests matches the text against name, email, phone and ID number.
// An empty text lists everyone.
func (s *GuestService) SearchGuests(ctx context.Context, text string, page, limit int) (*domain.PaginatedResult[GuestDTO], error) {
	var (
		guests []*guest.Guest
		total  int64
		err    error
	)
	if text == "" {
		guests, total, err = s.guests.ListAll(ctx, page, limit)
	} else {
		guests, total, err = s.guests.Search(ctx, text, page, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}

	dtos := make([]GuestDTO, len(guests))
	for i, g := range guests {
		dtos[i] = toGuestDTO(g)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateGuest updates a guest's details.
func (s *GuestService) UpdateGuest(ctx context.Context, guestID uuid.UUID, req UpdateGuestRequest) (*GuestDTO, error) {
	g, err := s.guests.FindByID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	g.Update(
		req.FirstName, req.LastName,
		req.Email, req.Phone, req.IDNumber,
		req.Nationality, req.Address,
		req.EmergencyContact, req.SpecialRequests,
	)

	if err := s.guests.Update(ctx, g); err != nil {
		return nil, err
	}
	result := toGuestDTO(g)
	return &result, nil
}

// DeleteGuest removes a guest permanently (admin only).
func (s *GuestService) DeleteGuest(ctx context.Context, guestID uuid.UUID) error {
	if _, err := s.guests.FindByID(ctx, guestID); err != nil {
		return err
	}
	return s.guests.Delete(ctx, guestID)
}

func toGuestDTO(g *guest.Guest) GuestDTO {
	return GuestDTO{
		ID:               g.ID(),
		FirstName:        g.FirstName(),
		LastName:         g.LastName(),
		Email:            g.Email(),
		Phone:            g.Phone(),
		IDNumber:         g.IDNumber(),
		Nationality:      g.Nationality(),
		Address:          g.Address(),
		EmergencyContact: g.EmergencyContact(),
		SpecialRequests:  g.SpecialRequests(),
		Version:          g.Version(),
		CreatedAt:        g.CreatedAt(),
		UpdatedAt:        g.UpdatedAt(),
	}
}
