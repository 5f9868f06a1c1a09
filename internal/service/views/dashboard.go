package views

import (
	"math"
	"sort"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
)

type RoomCount struct {
	Status domain.RoomStatus `json:"status"`
	Count  int               `json:"count"`
}

type HousekeepingItem struct {
	RoomID       string            `json:"roomId"`
	RoomNumber   string            `json:"roomNumber"`
	RoomNotFound bool              `json:"roomNotFound,omitempty"`
	Status       domain.RoomStatus `json:"status"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type Dashboard struct {
	Date          time.Time          `json:"date"`
	TotalRooms    int                `json:"totalRooms"`
	RoomsByStatus []RoomCount        `json:"roomsByStatus"`
	OccupancyRate float64            `json:"occupancyRate"`
	Arrivals      []Row              `json:"arrivals"`
	Departures    []Row              `json:"departures"`
	InHouse       []Row              `json:"inHouse"`
	Housekeeping  []HousekeepingItem `json:"housekeeping"`
}

// BuildDashboard summarizes the day of now. The occupancy rate is the share
// of rooms marked occupied, in percent with one decimal.
func BuildDashboard(snap state.Snapshot, now time.Time) Dashboard {
	ix := newIndex(snap)
	d := Dashboard{
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		TotalRooms:    len(snap.Rooms),
		RoomsByStatus: make([]RoomCount, 0, len(domain.RoomStatuses)),
		Arrivals:      []Row{},
		Departures:    []Row{},
		InHouse:       []Row{},
		Housekeeping:  []HousekeepingItem{},
	}

	counts := make(map[domain.RoomStatus]int)
	for _, r := range snap.Rooms {
		counts[r.Status]++
	}
	for _, s := range domain.RoomStatuses {
		d.RoomsByStatus = append(d.RoomsByStatus, RoomCount{Status: s, Count: counts[s]})
	}
	if d.TotalRooms > 0 {
		rate := float64(counts[domain.RoomStatusOccupied]) / float64(d.TotalRooms) * 100
		d.OccupancyRate = math.Round(rate*10) / 10
	}

	for _, r := range snap.Reservations {
		switch r.Status {
		case domain.ReservationStatusConfirmed:
			if sameDay(now, r.CheckIn) {
				d.Arrivals = append(d.Arrivals, ix.row(r))
			}
		case domain.ReservationStatusCheckedIn:
			row := ix.row(r)
			d.InHouse = append(d.InHouse, row)
			if sameDay(now, r.CheckOut) {
				d.Departures = append(d.Departures, row)
			}
		}
	}

	for _, hk := range snap.Housekeeping {
		if hk.Status != domain.RoomStatusToClean && hk.Status != domain.RoomStatusCleaningInProgress {
			continue
		}
		item := HousekeepingItem{RoomID: hk.RoomID, Status: hk.Status, UpdatedAt: hk.UpdatedAt}
		if room, ok := ix.rooms[hk.RoomID]; ok {
			item.RoomNumber = room.Number
		} else {
			item.RoomNotFound = true
		}
		d.Housekeeping = append(d.Housekeeping, item)
	}
	sort.SliceStable(d.Housekeeping, func(i, j int) bool {
		return d.Housekeeping[i].RoomNumber < d.Housekeeping[j].RoomNumber
	})
	return d
}
