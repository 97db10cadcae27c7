package room

import "strings"

// AvailabilityCriteria narrows the set of offerable rooms. Zero values mean
// "no constraint" for that field.
type AvailabilityCriteria struct {
	Type        RoomType
	MinCapacity int
	SearchText  string
}

// FilterAvailable returns the rooms that can take a new booking, in the same
// order they were given. A room whose status is anything other than available
// is never returned, regardless of the criteria.
//
// Availability is driven purely by the status flag; no date-range overlap
// check against existing bookings is performed.
func FilterAvailable(rooms []*Room, criteria AvailabilityCriteria) []*Room {
	search := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	result := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsAvailable() {
			continue
		}
		if criteria.Type != "" && r.Type() != criteria.Type {
			continue
		}
		if criteria.MinCapacity > 0 && r.Capacity() < criteria.MinCapacity {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func matchesSearch(r *Room, search string) bool {
	return strings.Contains(strings.ToLower(r.Number()), search) ||
		strings.Contains(strings.ToLower(string(r.Type())), search)
}
