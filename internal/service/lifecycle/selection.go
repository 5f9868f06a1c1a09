package lifecycle

import (
	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
)

// CandidateRooms lists rooms that can host occupancy guests: available ones
// plus currentRoomID, whose type is large enough and, if roomTypeID is set,
// of that type. Order follows the room collection.
func CandidateRooms(snap state.Snapshot, currentRoomID string, occupancy int, roomTypeID string) []domain.Room {
	capacity := make(map[string]int, len(snap.RoomTypes))
	for _, rt := range snap.RoomTypes {
		capacity[rt.ID] = rt.Capacity
	}

	var out []domain.Room
	for _, room := range snap.Rooms {
		if room.Status != domain.RoomStatusAvailable && room.ID != currentRoomID {
			continue
		}
		if roomTypeID != "" && room.RoomTypeID != roomTypeID {
			continue
		}
		c, ok := capacity[room.RoomTypeID]
		if !ok || c < occupancy {
			continue
		}
		out = append(out, room)
	}
	return out
}

func StayTypeOptions(snap state.Snapshot, roomTypeID string) []domain.StayTypeCombination {
	var out []domain.StayTypeCombination
	for _, c := range snap.StayTypes {
		if c.RoomTypeID == roomTypeID {
			out = append(out, c)
		}
	}
	return out
}

func containsRoom(rooms []domain.Room, id string) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}

func findStayType(options []domain.StayTypeCombination, id string) (domain.StayTypeCombination, bool) {
	for _, c := range options {
		if c.ID == id {
			return c, true
		}
	}
	return domain.StayTypeCombination{}, false
}
