package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func TestNewRoom(t *testing.T) {
	rm, err := NewRoom("305", TypeDeluxe, 15000, 3, 3, "corner room")
	require.NoError(t, err)

	assert.Equal(t, "305", rm.Number())
	assert.Equal(t, TypeDeluxe, rm.Type())
	assert.Equal(t, StatusAvailable, rm.Status())
	assert.True(t, rm.IsAvailable())
	assert.Equal(t, int64(1), rm.Version())
}

func TestNewRoom_Validation(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		roomType RoomType
		price    int64
		capacity int
	}{
		{"missing number", "", TypeSingle, 5000, 1},
		{"unknown type", "101", "penthouse", 5000, 1},
		{"zero price", "101", TypeSingle, 0, 1},
		{"zero capacity", "101", TypeSingle, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoom(tt.number, tt.roomType, tt.price, tt.capacity, 1, "")
			assert.True(t, domain.IsKind(err, domain.KindValidation))
		})
	}
}

func TestRoom_StatusFlow(t *testing.T) {
	rm, err := NewRoom("101", TypeSingle, 5000, 1, 1, "")
	require.NoError(t, err)

	rm.MarkOccupied()
	assert.Equal(t, StatusOccupied, rm.Status())
	assert.False(t, rm.IsAvailable())

	rm.MarkCleaning()
	assert.Equal(t, StatusCleaning, rm.Status())

	rm.MarkAvailable()
	assert.True(t, rm.IsAvailable())

	// Each status change bumps the version for optimistic locking.
	assert.Equal(t, int64(4), rm.Version())
}

func TestRoom_SetStatus(t *testing.T) {
	rm, err := NewRoom("101", TypeSingle, 5000, 1, 1, "")
	require.NoError(t, err)

	require.NoError(t, rm.SetStatus(StatusMaintenance))
	assert.Equal(t, StatusMaintenance, rm.Status())

	err = rm.SetStatus("haunted")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Equal(t, StatusMaintenance, rm.Status())
}

func TestParseRoomStatus(t *testing.T) {
	status, err := ParseRoomStatus("out_of_order")
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfOrder, status)

	_, err = ParseRoomStatus("tidy")
	assert.Error(t, err)
}
