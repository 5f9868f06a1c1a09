package state

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/storage"
)

var ErrAlreadyExists = errors.New("already exists")

// Entity is any record kept in a Snapshot collection.
type Entity interface {
	domain.Customer | domain.Room | domain.RoomType | domain.Reservation |
		domain.StayTypeCombination | domain.HousekeepingRecord | domain.Bill |
		domain.CurrencyRate | domain.AuditRecord
	EntityID() string
}

// Action is a state transition applied by Store.Dispatch.
type Action interface {
	Kind() string
	apply(s *Snapshot) error
}

func collection[T Entity](s *Snapshot) (*[]T, string) {
	var zero T
	switch any(zero).(type) {
	case domain.Customer:
		return any(&s.Customers).(*[]T), storage.KeyCustomers
	case domain.Room:
		return any(&s.Rooms).(*[]T), storage.KeyRooms
	case domain.RoomType:
		return any(&s.RoomTypes).(*[]T), storage.KeyRoomTypes
	case domain.Reservation:
		return any(&s.Reservations).(*[]T), storage.KeyReservations
	case domain.StayTypeCombination:
		return any(&s.StayTypes).(*[]T), storage.KeyStayTypes
	case domain.HousekeepingRecord:
		return any(&s.Housekeeping).(*[]T), storage.KeyHousekeeping
	case domain.Bill:
		return any(&s.Bills).(*[]T), storage.KeyBills
	case domain.CurrencyRate:
		return any(&s.CurrencyRates).(*[]T), storage.KeyCurrencyRates
	case domain.AuditRecord:
		return any(&s.Audit).(*[]T), storage.KeyAudit
	}
	panic(fmt.Sprintf("state: no collection for %T", zero))
}

func collectionName[T Entity]() string {
	_, key := collection[T](&Snapshot{})
	return key
}

func indexOf[T Entity](list []T, id string) int {
	for i, v := range list {
		if v.EntityID() == id {
			return i
		}
	}
	return -1
}

// Init replaces the whole state and enables persistence.
type Init struct {
	Snapshot Snapshot
}

func (Init) Kind() string { return "init" }

func (a Init) apply(s *Snapshot) error {
	*s = a.Snapshot
	return nil
}

type Add[T Entity] struct {
	Record T
}

func (Add[T]) Kind() string { return "add:" + collectionName[T]() }

func (a Add[T]) apply(s *Snapshot) error {
	list, key := collection[T](s)
	if indexOf(*list, a.Record.EntityID()) >= 0 {
		return fmt.Errorf("%s %q: %w", key, a.Record.EntityID(), ErrAlreadyExists)
	}
	next := make([]T, len(*list), len(*list)+1)
	copy(next, *list)
	*list = append(next, a.Record)
	return nil
}

// Update replaces the record with the same identity. An unknown identity
// leaves the state untouched and reports domain.ErrNotFound.
type Update[T Entity] struct {
	Record T
}

func (Update[T]) Kind() string { return "update:" + collectionName[T]() }

func (a Update[T]) apply(s *Snapshot) error {
	list, key := collection[T](s)
	i := indexOf(*list, a.Record.EntityID())
	if i < 0 {
		return domain.NotFound(key, a.Record.EntityID())
	}
	next := make([]T, len(*list))
	copy(next, *list)
	next[i] = a.Record
	*list = next
	return nil
}

type Delete[T Entity] struct {
	ID string
}

func (Delete[T]) Kind() string { return "delete:" + collectionName[T]() }

func (a Delete[T]) apply(s *Snapshot) error {
	list, key := collection[T](s)
	i := indexOf(*list, a.ID)
	if i < 0 {
		return domain.NotFound(key, a.ID)
	}
	next := make([]T, 0, len(*list)-1)
	next = append(next, (*list)[:i]...)
	*list = append(next, (*list)[i+1:]...)
	return nil
}

// Batch applies its actions in order and is published only if all succeed.
type Batch struct {
	Name    string
	Actions []Action
}

func (b Batch) Kind() string {
	if b.Name != "" {
		return "batch:" + b.Name
	}
	return "batch"
}

func (b Batch) apply(s *Snapshot) error {
	for _, a := range b.Actions {
		if err := a.apply(s); err != nil {
			return fmt.Errorf("%s: %w", a.Kind(), err)
		}
	}
	return nil
}
