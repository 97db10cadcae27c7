package guest

import (
	"time"

	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// Guest is the aggregate root for a registered hotel guest.
type Guest struct {
	id               uuid.UUID
	firstName        string
	lastName         string
	email            string
	phone            string
	idNumber         string
	nationality      string
	address          string
	emergencyContact string
	specialRequests  string
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewGuest creates a new guest record with validated identity fields.
func NewGuest(
	firstName, lastName, email, phone, idNumber string,
	nationality, address, emergencyContact, specialRequests string,
) (*Guest, error) {
	if firstName == "" {
		return nil, domain.NewValidationError("first name is required")
	}
	if lastName == "" {
		return nil, domain.NewValidationError("last name is required")
	}
	if email == "" && phone == "" {
		return nil, domain.NewValidationError("email or phone is required")
	}
	if idNumber == "" {
		return nil, domain.NewValidationError("ID number is required")
	}

	now := time.Now().UTC()
	return &Guest{
		id:               uuid.New(),
		firstName:        firstName,
		lastName:         lastName,
		email:            email,
		phone:            phone,
		idNumber:         idNumber,
		nationality:      nationality,
		address:          address,
		emergencyContact: emergencyContact,
		specialRequests:  specialRequests,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Guest from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	firstName, lastName, email, phone, idNumber string,
	nationality, address, emergencyContact, specialRequests string,
	version int64,
	createdAt, updatedAt time.Time,
) *Guest {
	return &Guest{
		id:               id,
		firstName:        firstName,
		lastName:         lastName,
		email:            email,
		phone:            phone,
		idNumber:         idNumber,
		nationality:      nationality,
		address:          address,
		emergencyContact: emergencyContact,
		specialRequests:  specialRequests,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (g *Guest) ID() uuid.UUID            { return g.id }
func (g *Guest) FirstName() string        { return g.firstName }
func (g *Guest) LastName() string         { return g.lastName }
func (g *Guest) Email() string            { return g.email }
func (g *Guest) Phone() string            { return g.phone }
func (g *Guest) IDNumber() string         { return g.idNumber }
func (g *Guest) Nationality() string      { return g.nationality }
func (g *Guest) Address() string          { return g.address }
func (g *Guest) EmergencyContact() string { return g.emergencyContact }
func (g *Guest) SpecialRequests() string  { return g.specialRequests }
func (g *Guest) Version() int64           { return g.version }
func (g *Guest) CreatedAt() time.Time     { return g.createdAt }
func (g *Guest) UpdatedAt() time.Time     { return g.updatedAt }

// FullName returns the guest's display name.
func (g *Guest) FullName() string {
	return g.firstName + " " + g.lastName
}

// --- Behavior ---

// Update applies partial updates to the guest record. Identity fields change
// only through this explicit edit.
func (g *Guest) Update(
	firstName, lastName, email, phone, idNumber string,
	nationality, address, emergencyContact, specialRequests string,
) {
	if firstName != "" {
		g.firstName = firstName
	}
	if lastName != "" {
		g.lastName = lastName
	}
	if email != "" {
		g.email = email
	}
	if phone != "" {
		g.phone = phone
	}
	if idNumber != "" {
		g.idNumber = idNumber
	}
	if nationality != "" {
		g.nationality = nationality
	}
	if address != "" {
		g.address = address
	}
	if emergencyContact != "" {
		g.emergencyContact = emergencyContact
	}
	if specialRequests != "" {
		g.specialRequests = specialRequests
	}
	g.version++
	g.updatedAt = time.Now().UTC()
}
