package api

import (
	"context"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/stretchr/testify/mock"
)

type MockFrontDesk struct {
	mock.Mock
}

func (m *MockFrontDesk) CheckIn(ctx context.Context, req lifecycle.CheckInRequest) (domain.Reservation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *MockFrontDesk) Extend(ctx context.Context, req lifecycle.ExtendRequest) (domain.Reservation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *MockFrontDesk) CheckOut(ctx context.Context, req lifecycle.CheckOutRequest) (domain.Reservation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *MockFrontDesk) Cancel(ctx context.Context, req lifecycle.CancelRequest) (domain.Reservation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *MockFrontDesk) RefundQuote(ctx context.Context, id string) (lifecycle.RefundQuote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(lifecycle.RefundQuote), args.Error(1)
}

func (m *MockFrontDesk) CandidateRooms(ctx context.Context, id string, occupancy int, roomTypeID string) ([]domain.Room, error) {
	args := m.Called(ctx, id, occupancy, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockFrontDesk) AttachDocument(ctx context.Context, customerID, name string, data []byte) (domain.Customer, error) {
	args := m.Called(ctx, customerID, name, data)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockFrontDesk) SetRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (domain.Room, error) {
	args := m.Called(ctx, roomID, status)
	return args.Get(0).(domain.Room), args.Error(1)
}

type MockViews struct {
	mock.Mock
}

func (m *MockViews) Dashboard(ctx context.Context) views.Dashboard {
	return m.Called(ctx).Get(0).(views.Dashboard)
}

func (m *MockViews) History(ctx context.Context, q views.HistoryQuery) (views.HistoryPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(views.HistoryPage), args.Error(1)
}

func (m *MockViews) Reservation(ctx context.Context, id string) (views.Detail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(views.Detail), args.Error(1)
}

func (m *MockViews) ExportHistory(ctx context.Context, q views.HistoryQuery) ([]byte, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockViews) Rooms(ctx context.Context) []views.RoomView {
	return m.Called(ctx).Get(0).([]views.RoomView)
}

func (m *MockViews) Customer(ctx context.Context, id string) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}
