package guest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func TestNewGuest(t *testing.T) {
	g, err := NewGuest("Amina", "Otieno", "amina@example.com", "", "ID-29381", "Kenyan", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Amina Otieno", g.FullName())
	assert.Equal(t, int64(1), g.Version())
}

func TestNewGuest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		phone     string
		idNumber  string
	}{
		{"missing first name", "", "Otieno", "a@example.com", "", "ID-1"},
		{"missing last name", "Amina", "", "a@example.com", "", "ID-1"},
		{"no contact details", "Amina", "Otieno", "", "", "ID-1"},
		{"missing ID number", "Amina", "Otieno", "a@example.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGuest(tt.firstName, tt.lastName, tt.email, tt.phone, tt.idNumber, "", "", "", "")
			assert.True(t, domain.IsKind(err, domain.KindValidation))
		})
	}
}

func TestNewGuest_PhoneOnlyContact(t *testing.T) {
	_, err := NewGuest("Amina", "Otieno", "", "+254700000001", "ID-29381", "", "", "", "")
	assert.NoError(t, err)
}

func TestGuest_Update(t *testing.T) {
	g, err := NewGuest("Amina", "Otieno", "amina@example.com", "", "ID-29381", "", "", "", "")
	require.NoError(t, err)

	g.Update("", "", "", "+254700000002", "", "Kenyan", "Nairobi", "", "")

	// Updated fields change, blank fields are left alone.
	assert.Equal(t, "Amina", g.FirstName())
	assert.Equal(t, "amina@example.com", g.Email())
	assert.Equal(t, "+254700000002", g.Phone())
	assert.Equal(t, "Kenyan", g.Nationality())
	assert.Equal(t, "Nairobi", g.Address())
	assert.Equal(t, int64(2), g.Version())
}
