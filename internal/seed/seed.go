// Package seed provides the collections used when the store has none.
package seed

import (
	"fmt"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
	"gopkg.in/guregu/null.v4"
)

// Today truncates t to midnight in its own location.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Default returns the shipped dataset with reservation dates relative to now.
func Default(now time.Time) state.Snapshot {
	today := Today(now)
	day := func(n int) time.Time { return today.AddDate(0, 0, n) }

	roomTypes := []domain.RoomType{
		{ID: "rt-standard", Name: "Standard", BasePrice: domain.Dollars(100), Capacity: 2},
		{ID: "rt-superior", Name: "Superior", BasePrice: domain.Dollars(130), Capacity: 3},
		{ID: "rt-deluxe", Name: "Deluxe", BasePrice: domain.Dollars(180), Capacity: 4},
		{ID: "rt-suite", Name: "Suite", BasePrice: domain.Dollars(320), Capacity: 5},
	}

	layout := []struct {
		number string
		typeID string
		status domain.RoomStatus
	}{
		{"101", "rt-standard", domain.RoomStatusAvailable},
		{"102", "rt-standard", domain.RoomStatusOccupied},
		{"103", "rt-standard", domain.RoomStatusAvailable},
		{"104", "rt-superior", domain.RoomStatusToClean},
		{"201", "rt-superior", domain.RoomStatusAvailable},
		{"202", "rt-deluxe", domain.RoomStatusAvailable},
		{"203", "rt-deluxe", domain.RoomStatusMaintenance},
		{"301", "rt-suite", domain.RoomStatusAvailable},
	}
	rooms := make([]domain.Room, 0, len(layout))
	housekeeping := make([]domain.HousekeepingRecord, 0, len(layout))
	for _, l := range layout {
		id := "room-" + l.number
		rooms = append(rooms, domain.Room{
			ID:         id,
			Number:     l.number,
			RoomTypeID: l.typeID,
			Floor:      int(l.number[0] - '0'),
			Status:     l.status,
		})
		housekeeping = append(housekeeping, domain.HousekeepingRecord{
			ID:        fmt.Sprintf("hk-%s", l.number),
			RoomID:    id,
			Status:    l.status,
			UpdatedAt: today,
		})
	}

	customers := []domain.Customer{
		{ID: "cust-1", FirstName: "Maria", LastName: "Santos", Email: "maria.santos@example.com", Phone: "+1 555 0101"},
		{ID: "cust-2", FirstName: "Kenji", LastName: "Watanabe", Email: "kenji.w@example.com", Phone: "+81 3 5555 0102",
			IDNumber: "TK4471920", IDDocument: domain.IdentificationDocument{Name: "passport.pdf", URL: "data:application/pdf;base64,JVBERi0xLjQK"}},
		{ID: "cust-3", FirstName: "Amelia", LastName: "Clarke", Email: "amelia.clarke@example.com", Phone: "+44 20 5555 0103"},
		{ID: "cust-4", FirstName: "Somchai", LastName: "Prasert", Email: "somchai.p@example.com", Phone: "+66 2 555 0104"},
	}

	reservations := []domain.Reservation{
		{ID: "res-1001", CustomerID: "cust-1", RoomID: "room-101", CheckIn: day(0), CheckOut: day(3),
			Adults: 2, TotalAmount: domain.Dollars(300), Status: domain.ReservationStatusConfirmed, CreatedAt: day(-14), UpdatedAt: day(-14)},
		{ID: "res-1002", CustomerID: "cust-2", RoomID: "room-102", CheckIn: day(-2), CheckOut: day(1),
			Adults: 1, TotalAmount: domain.Dollars(300), Status: domain.ReservationStatusCheckedIn, CreatedAt: day(-30), UpdatedAt: day(-2)},
		{ID: "res-1003", CustomerID: "cust-3", RoomID: "room-202", CheckIn: day(10), CheckOut: day(14),
			Adults: 2, Children: 1, TotalAmount: domain.Dollars(720), Status: domain.ReservationStatusConfirmed,
			StayTypeID: null.StringFrom("st-deluxe-2a1c-bb"), CreatedAt: day(-3), UpdatedAt: day(-3)},
		{ID: "res-1004", CustomerID: "cust-4", RoomID: "room-104", CheckIn: day(-5), CheckOut: day(-1),
			Adults: 2, TotalAmount: domain.Dollars(520), Status: domain.ReservationStatusCheckedOut, CreatedAt: day(-20), UpdatedAt: day(-1)},
		{ID: "res-1005", CustomerID: "cust-1", RoomID: "room-301", CheckIn: day(5), CheckOut: day(7),
			Adults: 3, TotalAmount: domain.Dollars(640), Status: domain.ReservationStatusConfirmed, CreatedAt: day(-1), UpdatedAt: day(-1)},
	}

	stayTypes := []domain.StayTypeCombination{
		{ID: "st-standard-2a-ro", RoomTypeID: "rt-standard", Adults: 2, MealPlan: "room-only", ViewType: "city",
			Prices: map[string]domain.Money{"USD": domain.Dollars(100), "EUR": domain.Dollars(92)}},
		{ID: "st-standard-1a-bb", RoomTypeID: "rt-standard", Adults: 1, MealPlan: "bed-and-breakfast", ViewType: "city",
			Prices: map[string]domain.Money{"USD": domain.Dollars(110), "EUR": domain.Dollars(101)}},
		{ID: "st-superior-2a1c-bb", RoomTypeID: "rt-superior", Adults: 2, Children: 1, MealPlan: "bed-and-breakfast", ViewType: "garden",
			Prices: map[string]domain.Money{"USD": domain.Dollars(150), "EUR": domain.Dollars(138)}},
		{ID: "st-deluxe-2a1c-bb", RoomTypeID: "rt-deluxe", Adults: 2, Children: 1, MealPlan: "bed-and-breakfast", ViewType: "sea",
			Prices: map[string]domain.Money{"USD": domain.Dollars(200), "EUR": domain.Dollars(184)}},
		{ID: "st-deluxe-2a2c-hb", RoomTypeID: "rt-deluxe", Adults: 2, Children: 2, MealPlan: "half-board", ViewType: "sea",
			Prices: map[string]domain.Money{"USD": domain.Dollars(240), "EUR": domain.Dollars(221)}},
		{ID: "st-suite-4a-fb", RoomTypeID: "rt-suite", Adults: 4, MealPlan: "full-board", ViewType: "sea",
			Prices: map[string]domain.Money{"USD": domain.Dollars(420), "EUR": domain.Dollars(386)}},
	}

	rates := []domain.CurrencyRate{
		{Code: "USD", Rate: 1},
		{Code: "EUR", Rate: 0.92},
		{Code: "GBP", Rate: 0.79},
		{Code: "JPY", Rate: 151.2},
		{Code: "THB", Rate: 35.8},
	}

	return state.Snapshot{
		Customers:     customers,
		Rooms:         rooms,
		RoomTypes:     roomTypes,
		Reservations:  reservations,
		StayTypes:     stayTypes,
		Housekeeping:  housekeeping,
		Bills:         []domain.Bill{},
		CurrencyRates: rates,
		Audit:         []domain.AuditRecord{},
	}
}

// Empty returns reference data only: room inventory, stay types and currency
// rates, with no customers, reservations or history.
func Empty(now time.Time) state.Snapshot {
	s := Default(now)
	s.Customers = []domain.Customer{}
	s.Reservations = []domain.Reservation{}

	rooms := make([]domain.Room, len(s.Rooms))
	for i, r := range s.Rooms {
		r.Status = domain.RoomStatusAvailable
		rooms[i] = r
	}
	s.Rooms = rooms
	hk := make([]domain.HousekeepingRecord, len(s.Housekeeping))
	for i, h := range s.Housekeeping {
		h.Status = domain.RoomStatusAvailable
		hk[i] = h
	}
	s.Housekeeping = hk
	return s
}
