package domain

import "time"

type RoomStatus string

const (
	RoomStatusAvailable          RoomStatus = "available"
	RoomStatusOccupied           RoomStatus = "occupied"
	RoomStatusMaintenance        RoomStatus = "maintenance"
	RoomStatusToClean            RoomStatus = "to-clean"
	RoomStatusCleaningInProgress RoomStatus = "cleaning-in-progress"
	RoomStatusCleaned            RoomStatus = "cleaned"
)

// RoomStatuses is the fixed display order used by the dashboard.
var RoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusMaintenance,
	RoomStatusToClean,
	RoomStatusCleaningInProgress,
	RoomStatusCleaned,
}

func (s RoomStatus) Valid() bool {
	for _, v := range RoomStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Room struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	RoomTypeID string     `json:"roomTypeId"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
}

func (r Room) EntityID() string { return r.ID }

type RoomType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BasePrice Money  `json:"basePrice"`
	Capacity  int    `json:"capacity"`
}

func (t RoomType) EntityID() string { return t.ID }

// StayTypeCombination is a sellable occupancy / meal plan / view bundle of a room type.
type StayTypeCombination struct {
	ID         string           `json:"id"`
	RoomTypeID string           `json:"roomTypeId"`
	Adults     int              `json:"adults"`
	Children   int              `json:"children"`
	MealPlan   string           `json:"mealPlan"`
	ViewType   string           `json:"viewType"`
	Prices     map[string]Money `json:"prices"`
}

func (c StayTypeCombination) EntityID() string { return c.ID }

type HousekeepingRecord struct {
	ID        string     `json:"id"`
	RoomID    string     `json:"roomId"`
	Status    RoomStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (h HousekeepingRecord) EntityID() string { return h.ID }
