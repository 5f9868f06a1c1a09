package state

import (
	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/storage"
)

// Snapshot is the full domain state at one point in time. A published
// snapshot is never mutated; actions build a new one copy-on-write.
type Snapshot struct {
	Customers     []domain.Customer            `json:"customers"`
	Rooms         []domain.Room                `json:"rooms"`
	RoomTypes     []domain.RoomType            `json:"roomTypes"`
	Reservations  []domain.Reservation         `json:"reservations"`
	StayTypes     []domain.StayTypeCombination `json:"stayTypes"`
	Housekeeping  []domain.HousekeepingRecord  `json:"housekeeping"`
	Bills         []domain.Bill                `json:"bills"`
	CurrencyRates []domain.CurrencyRate        `json:"currencyRates"`
	Audit         []domain.AuditRecord         `json:"audit"`
}

type collectionDoc struct {
	key   string
	value any
}

func (s Snapshot) documents() []collectionDoc {
	return []collectionDoc{
		{storage.KeyCustomers, s.Customers},
		{storage.KeyRooms, s.Rooms},
		{storage.KeyRoomTypes, s.RoomTypes},
		{storage.KeyReservations, s.Reservations},
		{storage.KeyStayTypes, s.StayTypes},
		{storage.KeyHousekeeping, s.Housekeeping},
		{storage.KeyBills, s.Bills},
		{storage.KeyCurrencyRates, s.CurrencyRates},
		{storage.KeyAudit, s.Audit},
	}
}

func find[T Entity](list []T, kind, id string) (T, error) {
	for _, v := range list {
		if v.EntityID() == id {
			return v, nil
		}
	}
	var zero T
	return zero, domain.NotFound(kind, id)
}

func (s Snapshot) Reservation(id string) (domain.Reservation, error) {
	return find(s.Reservations, "reservation", id)
}

func (s Snapshot) Room(id string) (domain.Room, error) {
	return find(s.Rooms, "room", id)
}

func (s Snapshot) RoomType(id string) (domain.RoomType, error) {
	return find(s.RoomTypes, "room type", id)
}

// RoomTypeOf resolves the type of the given room.
func (s Snapshot) RoomTypeOf(roomID string) (domain.RoomType, error) {
	room, err := s.Room(roomID)
	if err != nil {
		return domain.RoomType{}, err
	}
	return s.RoomType(room.RoomTypeID)
}

func (s Snapshot) Customer(id string) (domain.Customer, error) {
	return find(s.Customers, "customer", id)
}

func (s Snapshot) StayType(id string) (domain.StayTypeCombination, error) {
	return find(s.StayTypes, "stay type", id)
}

func (s Snapshot) HousekeepingForRoom(roomID string) (domain.HousekeepingRecord, bool) {
	for _, h := range s.Housekeeping {
		if h.RoomID == roomID {
			return h, true
		}
	}
	return domain.HousekeepingRecord{}, false
}

func (s Snapshot) AuditFor(reservationID string) []domain.AuditRecord {
	var out []domain.AuditRecord
	for _, a := range s.Audit {
		if a.ReservationID == reservationID {
			out = append(out, a)
		}
	}
	return out
}
