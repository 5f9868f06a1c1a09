// Package views builds read models of the front desk state: the dashboard,
// reservation history and its spreadsheet export.
package views

import (
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/state"
)

// Row is a reservation joined with its guest, room and room type. A missing
// reference is flagged instead of leaving the joined fields blank.
type Row struct {
	ReservationID    string                   `json:"reservationId"`
	Status           domain.ReservationStatus `json:"status"`
	CheckIn          time.Time                `json:"checkIn"`
	CheckOut         time.Time                `json:"checkOut"`
	Nights           int                      `json:"nights"`
	Adults           int                      `json:"adults"`
	Children         int                      `json:"children"`
	TotalAmount      domain.Money             `json:"totalAmount"`
	StayTypeID       string                   `json:"stayTypeId,omitempty"`
	CustomerID       string                   `json:"customerId"`
	GuestName        string                   `json:"guestName"`
	CustomerNotFound bool                     `json:"customerNotFound,omitempty"`
	RoomID           string                   `json:"roomId"`
	RoomNumber       string                   `json:"roomNumber"`
	RoomNotFound     bool                     `json:"roomNotFound,omitempty"`
	RoomTypeName     string                   `json:"roomTypeName"`
	RoomTypeNotFound bool                     `json:"roomTypeNotFound,omitempty"`
}

// index caches lookups for one snapshot.
type index struct {
	customers map[string]domain.Customer
	rooms     map[string]domain.Room
	roomTypes map[string]domain.RoomType
}

func newIndex(snap state.Snapshot) index {
	ix := index{
		customers: make(map[string]domain.Customer, len(snap.Customers)),
		rooms:     make(map[string]domain.Room, len(snap.Rooms)),
		roomTypes: make(map[string]domain.RoomType, len(snap.RoomTypes)),
	}
	for _, c := range snap.Customers {
		ix.customers[c.ID] = c
	}
	for _, r := range snap.Rooms {
		ix.rooms[r.ID] = r
	}
	for _, t := range snap.RoomTypes {
		ix.roomTypes[t.ID] = t
	}
	return ix
}

func (ix index) row(r domain.Reservation) Row {
	row := Row{
		ReservationID: r.ID,
		Status:        r.Status,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Nights:        lifecycle.Nights(r.CheckIn, r.CheckOut),
		Adults:        r.Adults,
		Children:      r.Children,
		TotalAmount:   r.TotalAmount,
		StayTypeID:    r.StayTypeID.String,
		CustomerID:    r.CustomerID,
		RoomID:        r.RoomID,
	}
	if c, ok := ix.customers[r.CustomerID]; ok {
		row.GuestName = c.FullName()
	} else {
		row.CustomerNotFound = true
	}

	room, ok := ix.rooms[r.RoomID]
	if !ok {
		row.RoomNotFound = true
		row.RoomTypeNotFound = true
		return row
	}
	row.RoomNumber = room.Number
	if rt, ok := ix.roomTypes[room.RoomTypeID]; ok {
		row.RoomTypeName = rt.Name
	} else {
		row.RoomTypeNotFound = true
	}
	return row
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
