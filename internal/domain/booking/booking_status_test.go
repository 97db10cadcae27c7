package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCheckedOut, false},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, true},
		{StatusCheckedIn, StatusConfirmed, false},
		{StatusCheckedOut, StatusCancelled, false},
		{StatusCheckedOut, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCheckedIn, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusCheckedIn.IsTerminal())
	assert.True(t, StatusCheckedOut.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("checked_in")
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, status)

	_, err = ParseBookingStatus("lounging")
	assert.Error(t, err)
}
