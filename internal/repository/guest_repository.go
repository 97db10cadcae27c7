package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
	guestDomain "github.com/acacia-hms/service-frontdesk/internal/domain/guest"
)

// GuestModel is the GORM model for the guests table.
type GuestModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName        string    `gorm:"not null;size:100"`
	LastName         string    `gorm:"not null;size:100"`
	Email            string    `gorm:"index;size:255"`
	Phone            string    `gorm:"size:30"`
	IDNumber         string    `gorm:"not null;size:50;index"`
	Nationality      string    `gorm:"size:60"`
	Address          string    `gorm:"size:500"`
	EmergencyContact string    `gorm:"size:255"`
	SpecialRequests  string    `gorm:"size:1000"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// GormGuestRepository is the GORM-based implementation of GuestRepository.
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID retrieves a guest by their unique identifier.
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Guest", id.String())
		}
		return nil, fmt.Errorf("failed to find guest by ID: %w", err)
	}
	return toDomainGuest(&model), nil
}

// FindByEmail retrieves a guest by their email address.
func (r *GormGuestRepository) FindByEmail(ctx context.Context, email string) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Guest", email)
		}
		return nil, fmt.Errorf("failed to find guest by email: %w", err)
	}
	return toDomainGuest(&model), nil
}

// Search matches the text against name, email, phone and ID number.
func (r *GormGuestRepository) Search(ctx context.Context, text string, page, limit int) ([]*guestDomain.Guest, int64, error) {
	pattern := "%" + text + "%"
	query := r.db.WithContext(ctx).Model(&GuestModel{}).
		Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR id_number ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guests: %w", err)
	}

	var models []GuestModel
	offset := (page - 1) * limit
	if err := query.
		Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search guests: %w", err)
	}

	return toDomainGuests(models, total)
}

// ListAll retrieves all guests with pagination.
func (r *GormGuestRepository) ListAll(ctx context.Context, page, limit int) ([]*guestDomain.Guest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&GuestModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guests: %w", err)
	}

	var models []GuestModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list guests: %w", err)
	}

	return toDomainGuests(models, total)
}

// Save persists a new guest.
func (r *GormGuestRepository) Save(ctx context.Context, g *guestDomain.Guest) error {
	if err := r.db.WithContext(ctx).Create(toGuestModel(g)).Error; err != nil {
		return fmt.Errorf("failed to save guest: %w", err)
	}
	return nil
}

// Update persists changes to an existing guest with optimistic locking.
func (r *GormGuestRepository) Update(ctx context.Context, g *guestDomain.Guest) error {
	model := toGuestModel(g)

	expectedVersion := g.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&GuestModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"first_name":        model.FirstName,
			"last_name":         model.LastName,
			"email":             model.Email,
			"phone":             model.Phone,
			"id_number":         model.IDNumber,
			"nationality":       model.Nationality,
			"address":           model.Address,
			"emergency_contact": model.EmergencyContact,
			"special_requests":  model.SpecialRequests,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("guest was modified by another transaction")
	}
	return nil
}

// Delete removes a guest permanently.
func (r *GormGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GuestModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Guest", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toGuestModel(g *guestDomain.Guest) *GuestModel {
	return &GuestModel{
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

func toDomainGuest(m *GuestModel) *guestDomain.Guest {
	return guestDomain.Reconstruct(
		m.ID,
		m.FirstName, m.LastName, m.Email, m.Phone, m.IDNumber,
		m.Nationality, m.Address, m.EmergencyContact, m.SpecialRequests,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainGuests(models []GuestModel, total int64) ([]*guestDomain.Guest, int64, error) {
	guests := make([]*guestDomain.Guest, len(models))
	for i, m := range models {
		guests[i] = toDomainGuest(&m)
	}
	return guests, total, nil
}
