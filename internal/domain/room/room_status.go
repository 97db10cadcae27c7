package room

import "fmt"

// RoomStatus represents the operational state of a room.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "available"
	StatusOccupied    RoomStatus = "occupied"
	StatusCleaning    RoomStatus = "cleaning"
	StatusMaintenance RoomStatus = "maintenance"
	StatusOutOfOrder  RoomStatus = "out_of_order"
)

// IsValid returns true if the status is a recognized room status.
func (s RoomStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance, StatusOutOfOrder:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s RoomStatus) String() string {
	return string(s)
}

// ParseRoomStatus converts a string to a RoomStatus, returning an error if invalid.
func ParseRoomStatus(s string) (RoomStatus, error) {
	status := RoomStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid room status: %s", s)
	}
	return status, nil
}
