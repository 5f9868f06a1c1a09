package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked-in"
	ReservationStatusCheckedOut ReservationStatus = "checked-out"
	ReservationStatusCanceled   ReservationStatus = "canceled"
)

type Reservation struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customerId"`
	RoomID      string            `json:"roomId"`
	CheckIn     time.Time         `json:"checkIn"`
	CheckOut    time.Time         `json:"checkOut"`
	Adults      int               `json:"adults"`
	Children    int               `json:"children"`
	TotalAmount Money             `json:"totalAmount"`
	Notes       string            `json:"notes"`
	Status      ReservationStatus `json:"status"`
	StayTypeID  null.String       `json:"stayTypeId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (r Reservation) EntityID() string { return r.ID }

// Occupancy is the number of guests staying in the room.
func (r Reservation) Occupancy() int { return r.Adults + r.Children }

// AllowedTransitions lists, per status, the statuses a reservation may move to.
// Checked-out and canceled are terminal.
var AllowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusConfirmed: {
		ReservationStatusCheckedIn,
		ReservationStatusCanceled,
	},
	ReservationStatusCheckedIn: {
		ReservationStatusCheckedOut,
		ReservationStatusCanceled,
	},
	ReservationStatusCheckedOut: {},
	ReservationStatusCanceled:   {},
}

// CanTransition checks if a reservation may move from one status to another.
func CanTransition(from, to ReservationStatus) bool {
	allowed, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition when the move is not allowed.
func ValidateTransition(from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
