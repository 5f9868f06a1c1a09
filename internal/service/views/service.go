package views

import (
	"context"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
)

type Reader interface {
	Dashboard(ctx context.Context) Dashboard
	History(ctx context.Context, q HistoryQuery) (HistoryPage, error)
	Reservation(ctx context.Context, id string) (Detail, error)
	ExportHistory(ctx context.Context, q HistoryQuery) ([]byte, error)
	Rooms(ctx context.Context) []RoomView
	Customer(ctx context.Context, id string) (domain.Customer, error)
}

type Snapshotter interface {
	Snapshot() state.Snapshot
}

// RoomView is a room with its type resolved.
type RoomView struct {
	domain.Room
	RoomTypeName     string       `json:"roomTypeName"`
	BasePrice        domain.Money `json:"basePrice"`
	Capacity         int          `json:"capacity"`
	RoomTypeNotFound bool         `json:"roomTypeNotFound,omitempty"`
}

type Service struct {
	store Snapshotter
	now   func() time.Time
}

func NewService(store Snapshotter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

func (s *Service) Dashboard(ctx context.Context) Dashboard {
	return BuildDashboard(s.store.Snapshot(), s.now())
}

func (s *Service) History(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	return History(s.store.Snapshot(), q)
}

func (s *Service) Reservation(ctx context.Context, id string) (Detail, error) {
	return ReservationDetail(s.store.Snapshot(), id)
}

// ExportHistory exports every row matching q, ignoring its paging.
func (s *Service) ExportHistory(ctx context.Context, q HistoryQuery) ([]byte, error) {
	rows, err := Filter(s.store.Snapshot(), q)
	if err != nil {
		return nil, err
	}
	return ExportHistory(rows)
}

func (s *Service) Rooms(ctx context.Context) []RoomView {
	snap := s.store.Snapshot()
	ix := newIndex(snap)
	out := make([]RoomView, 0, len(snap.Rooms))
	for _, r := range snap.Rooms {
		v := RoomView{Room: r}
		if rt, ok := ix.roomTypes[r.RoomTypeID]; ok {
			v.RoomTypeName = rt.Name
			v.BasePrice = rt.BasePrice
			v.Capacity = rt.Capacity
		} else {
			v.RoomTypeNotFound = true
		}
		out = append(out, v)
	}
	return out
}

func (s *Service) Customer(ctx context.Context, id string) (domain.Customer, error) {
	return s.store.Snapshot().Customer(id)
}

var _ Reader = (*Service)(nil)
