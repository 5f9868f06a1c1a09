package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/kafka"
	"github.com/Domenick1991/frontdesk/internal/state"
	"github.com/Domenick1991/frontdesk/internal/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(days int) time.Time { return testNow.Add(time.Duration(days) * day) }

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type fixedCharges domain.Money

func (c fixedCharges) PendingCharges(state.Snapshot, domain.Reservation) domain.Money {
	return domain.Money(c)
}

func fixture() state.Snapshot {
	return state.Snapshot{
		RoomTypes: []domain.RoomType{
			{ID: "t-std", Name: "Standard", BasePrice: domain.Dollars(100), Capacity: 2},
			{ID: "t-eco", Name: "Economy", BasePrice: domain.Dollars(80), Capacity: 2},
			{ID: "t-fam", Name: "Family", BasePrice: domain.Dollars(150), Capacity: 4},
		},
		Rooms: []domain.Room{
			{ID: "room-a", Number: "101", RoomTypeID: "t-std", Status: domain.RoomStatusAvailable},
			{ID: "room-b", Number: "102", RoomTypeID: "t-std", Status: domain.RoomStatusOccupied},
			{ID: "room-c", Number: "201", RoomTypeID: "t-fam", Status: domain.RoomStatusAvailable},
			{ID: "room-d", Number: "103", RoomTypeID: "t-std", Status: domain.RoomStatusOccupied},
			{ID: "room-e", Number: "104", RoomTypeID: "t-eco", Status: domain.RoomStatusOccupied},
			{ID: "room-m", Number: "105", RoomTypeID: "t-std", Status: domain.RoomStatusMaintenance},
		},
		Housekeeping: []domain.HousekeepingRecord{
			{ID: "hk-d", RoomID: "room-d", Status: domain.RoomStatusOccupied},
			{ID: "hk-e", RoomID: "room-e", Status: domain.RoomStatusOccupied},
		},
		Customers: []domain.Customer{
			{ID: "c1", FirstName: "Ana", LastName: "Lima", Email: "ana@example.com"},
			{ID: "c2", FirstName: "Ben", LastName: "Ito", Email: "ben@example.com",
				IDNumber: "P123", IDDocument: domain.IdentificationDocument{Name: "p.pdf", URL: "data:application/pdf;base64,AA=="}},
		},
		StayTypes: []domain.StayTypeCombination{
			{ID: "st-fam", RoomTypeID: "t-fam", Adults: 2, Children: 2, MealPlan: "half-board"},
			{ID: "st-std", RoomTypeID: "t-std", Adults: 1, MealPlan: "room-only"},
		},
		Reservations: []domain.Reservation{
			{ID: "r-cancel", CustomerID: "c1", RoomID: "room-b", CheckIn: at(10), CheckOut: at(13),
				Adults: 2, TotalAmount: domain.Dollars(500), Status: domain.ReservationStatusConfirmed},
			{ID: "r-checkin", CustomerID: "c1", RoomID: "room-a", CheckIn: at(0), CheckOut: at(3),
				Adults: 2, TotalAmount: domain.Money(999), Status: domain.ReservationStatusConfirmed},
			{ID: "r-stay", CustomerID: "c2", RoomID: "room-e", CheckIn: at(-1), CheckOut: at(2),
				Adults: 1, TotalAmount: domain.Dollars(240), Status: domain.ReservationStatusCheckedIn},
			{ID: "r-noid", CustomerID: "c1", RoomID: "room-d", CheckIn: at(-2), CheckOut: at(1),
				Adults: 2, TotalAmount: domain.Dollars(300), Status: domain.ReservationStatusCheckedIn,
				StayTypeID: null.String{}},
			{ID: "r-done", CustomerID: "c2", RoomID: "room-m", CheckIn: at(-5), CheckOut: at(-3),
				Adults: 1, TotalAmount: domain.Dollars(200), Status: domain.ReservationStatusCheckedOut},
		},
	}
}

type harness struct {
	store    *state.Store
	engine   *Engine
	service  *Service
	producer *MockProducer
}

func newHarness(t *testing.T, opts ...EngineOption) *harness {
	t.Helper()
	store := state.NewStore(storage.NewAdapter(storage.NewMemoryKV(), zap.NewNop()), zap.NewNop())
	require.NoError(t, store.Dispatch(context.Background(), state.Init{Snapshot: fixture()}))

	producer := new(MockProducer)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	ids := 0
	base := []EngineOption{
		WithProducer(producer),
		WithClock(func() time.Time { return testNow }),
	}
	engine := NewEngine(store, "lifecycle", append(base, opts...)...)
	engine.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return &harness{
		store:    store,
		engine:   engine,
		service:  NewService(engine),
		producer: producer,
	}
}

func (h *harness) reservation(t *testing.T, id string) domain.Reservation {
	t.Helper()
	r, err := h.store.Snapshot().Reservation(id)
	require.NoError(t, err)
	return r
}

func (h *harness) room(t *testing.T, id string) domain.Room {
	t.Helper()
	r, err := h.store.Snapshot().Room(id)
	require.NoError(t, err)
	return r
}

func (h *harness) eventTypes() []string {
	var types []string
	for _, c := range h.producer.Calls {
		if c.Method != "Publish" {
			continue
		}
		if ev, ok := c.Arguments.Get(3).(kafka.LifecycleEvent); ok && c.Arguments.String(1) == "lifecycle" {
			types = append(types, ev.Type)
		}
	}
	return types
}

func nullString(s string) null.String { return null.StringFrom(s) }
