package lifecycle

import (
	"context"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
	"go.uber.org/zap"
)

// FrontDesk runs complete lifecycle operations for callers that submit all
// decisions at once, such as the HTTP API.
type FrontDesk interface {
	CheckIn(ctx context.Context, req CheckInRequest) (domain.Reservation, error)
	Extend(ctx context.Context, req ExtendRequest) (domain.Reservation, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (domain.Reservation, error)
	Cancel(ctx context.Context, req CancelRequest) (domain.Reservation, error)
	RefundQuote(ctx context.Context, reservationID string) (RefundQuote, error)
	CandidateRooms(ctx context.Context, reservationID string, occupancy int, roomTypeID string) ([]domain.Room, error)
	AttachDocument(ctx context.Context, customerID, name string, data []byte) (domain.Customer, error)
	SetRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (domain.Room, error)
}

type CheckInRequest struct {
	ReservationID string  `json:"-"`
	RoomID        string  `json:"roomId"`
	StayTypeID    string  `json:"stayTypeId"`
	Adults        *int    `json:"adults"`
	Children      *int    `json:"children"`
	Notes         *string `json:"notes"`
	IDNumber      string  `json:"idNumber"`
	Actor         string  `json:"actor"`
}

type ExtendRequest struct {
	ReservationID string    `json:"-"`
	NewCheckOut   time.Time `json:"newCheckOut"`
	RoomID        string    `json:"roomId"`
	StayTypeID    string    `json:"stayTypeId"`
	Actor         string    `json:"actor"`
}

type CheckOutRequest struct {
	ReservationID string `json:"-"`
	IDNumber      string `json:"idNumber"`
	Actor         string `json:"actor"`
}

type CancelRequest struct {
	ReservationID string `json:"-"`
	Reason        string `json:"reason"`
	// RefundAmount defaults to the full refundable amount when nil.
	RefundAmount   *domain.Money `json:"refundAmount"`
	RefundMethod   string        `json:"refundMethod"`
	TransactionRef string        `json:"transactionRef"`
	Actor          string        `json:"actor"`
}

type Service struct {
	engine           *Engine
	maxDocumentBytes int64
	logger           *zap.Logger
}

type ServiceOption func(*Service)

func WithMaxDocumentBytes(n int64) ServiceOption {
	return func(s *Service) { s.maxDocumentBytes = n }
}

func WithServiceLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

func NewService(engine *Engine, opts ...ServiceOption) *Service {
	s := &Service{
		engine:           engine,
		maxDocumentBytes: DefaultMaxDocumentBytes,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) (domain.Reservation, error) {
	snap := s.engine.Snapshot()
	f, err := NewCheckInFlow(snap, req.ReservationID)
	if err != nil {
		return domain.Reservation{}, err
	}

	adults, children := f.Draft.Adults, f.Draft.Children
	if req.Adults != nil {
		adults = *req.Adults
	}
	if req.Children != nil {
		children = *req.Children
	}
	if err := f.SetOccupancy(adults, children); err != nil {
		return domain.Reservation{}, err
	}
	if req.Notes != nil {
		f.SetNotes(*req.Notes)
	}
	f.SetIdentification(req.IDNumber, domain.IdentificationDocument{})

	changed := false
	if req.RoomID != "" && req.RoomID != f.Draft.RoomID {
		if err := f.GoTo(CheckInChangeRoom); err != nil {
			return domain.Reservation{}, err
		}
		if err := f.SelectRoom(snap, req.RoomID); err != nil {
			return domain.Reservation{}, err
		}
		changed = true
	}
	if req.StayTypeID != "" {
		if err := f.GoTo(CheckInChangeStayType); err != nil {
			return domain.Reservation{}, err
		}
		if err := f.SelectStayType(snap, req.StayTypeID); err != nil {
			return domain.Reservation{}, err
		}
		changed = true
	}
	if changed {
		if err := f.GoTo(CheckInConfirmChange); err != nil {
			return domain.Reservation{}, err
		}
	}
	if err := f.GoTo(CheckInFinal); err != nil {
		return domain.Reservation{}, err
	}
	return s.engine.CommitCheckIn(ctx, f, req.Actor)
}

func (s *Service) Extend(ctx context.Context, req ExtendRequest) (domain.Reservation, error) {
	snap := s.engine.Snapshot()
	f, err := NewCheckOutFlow(snap, req.ReservationID, ModeExtendOnly)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := f.SetNewCheckOut(req.NewCheckOut); err != nil {
		return domain.Reservation{}, err
	}

	switch {
	case req.StayTypeID != "":
		if req.RoomID != "" && req.RoomID != f.Reservation.RoomID {
			return domain.Reservation{}, domain.NewValidationError("stayTypeId", "a stay type can only be changed in the current room")
		}
		if err := f.GoTo(CheckOutExtendRoom); err != nil {
			return domain.Reservation{}, err
		}
		if err := f.SetRoomMode(ExtendChangeStayType); err != nil {
			return domain.Reservation{}, err
		}
		if err := f.SelectStayType(snap, req.StayTypeID); err != nil {
			return domain.Reservation{}, err
		}
	case req.RoomID != "" && req.RoomID != f.Reservation.RoomID:
		if err := f.GoTo(CheckOutExtendRoom); err != nil {
			return domain.Reservation{}, err
		}
		if err := f.SelectRoom(snap, req.RoomID); err != nil {
			return domain.Reservation{}, err
		}
	}

	if err := f.GoTo(CheckOutConfirmExtension); err != nil {
		return domain.Reservation{}, err
	}
	return s.engine.CommitExtension(ctx, f, req.Actor)
}

func (s *Service) CheckOut(ctx context.Context, req CheckOutRequest) (domain.Reservation, error) {
	f, err := NewCheckOutFlow(s.engine.Snapshot(), req.ReservationID, ModeCheckOut)
	if err != nil {
		return domain.Reservation{}, err
	}
	f.SetIdentification(req.IDNumber, domain.IdentificationDocument{})
	if err := f.GoTo(CheckOutFinal); err != nil {
		return domain.Reservation{}, err
	}
	return s.engine.CommitCheckOut(ctx, f, req.Actor)
}

func (s *Service) Cancel(ctx context.Context, req CancelRequest) (domain.Reservation, error) {
	f, err := NewCancelFlow(s.engine.Snapshot(), req.ReservationID, s.engine.Now())
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := f.GoTo(CancelReason); err != nil {
		return domain.Reservation{}, err
	}
	if err := f.SetReason(req.Reason); err != nil {
		return domain.Reservation{}, err
	}

	if f.NextAfterReason() == CancelRefund {
		if err := f.GoTo(CancelRefund); err != nil {
			return domain.Reservation{}, err
		}
		amount := f.Refundable
		if req.RefundAmount != nil {
			amount = *req.RefundAmount
		}
		if err := f.SetRefund(amount, req.RefundMethod, req.TransactionRef); err != nil {
			return domain.Reservation{}, err
		}
	}
	if err := f.GoTo(CancelConfirm); err != nil {
		return domain.Reservation{}, err
	}
	return s.engine.CommitCancel(ctx, f, req.Actor)
}

func (s *Service) RefundQuote(ctx context.Context, reservationID string) (RefundQuote, error) {
	res, err := s.engine.Snapshot().Reservation(reservationID)
	if err != nil {
		return RefundQuote{}, err
	}
	return QuoteRefund(res, s.engine.Now()), nil
}

// CandidateRooms lists rooms the reservation could move to. A zero occupancy
// means the reservation's own guest count.
func (s *Service) CandidateRooms(ctx context.Context, reservationID string, occupancy int, roomTypeID string) ([]domain.Room, error) {
	snap := s.engine.Snapshot()
	res, err := snap.Reservation(reservationID)
	if err != nil {
		return nil, err
	}
	if occupancy <= 0 {
		occupancy = res.Occupancy()
	}
	return CandidateRooms(snap, res.RoomID, occupancy, roomTypeID), nil
}

func (s *Service) AttachDocument(ctx context.Context, customerID, name string, data []byte) (domain.Customer, error) {
	c, err := s.engine.Snapshot().Customer(customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	doc, err := EncodeDocument(name, data, s.maxDocumentBytes)
	if err != nil {
		return domain.Customer{}, err
	}
	c.IDDocument = doc
	if err := s.engine.store.Dispatch(ctx, state.Update[domain.Customer]{Record: c}); err != nil {
		return domain.Customer{}, err
	}
	s.logger.Info("identification attached", zap.String("customer_id", c.ID), zap.String("name", doc.Name))
	return c, nil
}

// SetRoomStatus changes a room's status and keeps its housekeeping record in step.
func (s *Service) SetRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (domain.Room, error) {
	if !status.Valid() {
		return domain.Room{}, domain.NewValidationError("status", "unknown room status "+string(status))
	}
	snap := s.engine.Snapshot()
	room, err := snap.Room(roomID)
	if err != nil {
		return domain.Room{}, err
	}
	room.Status = status

	actions := []state.Action{state.Update[domain.Room]{Record: room}}
	if hk, ok := snap.HousekeepingForRoom(roomID); ok {
		hk.Status = status
		hk.UpdatedAt = s.engine.Now()
		actions = append(actions, state.Update[domain.HousekeepingRecord]{Record: hk})
	}
	if err := s.engine.store.Dispatch(ctx, state.Batch{Name: "room-status", Actions: actions}); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

var _ FrontDesk = (*Service)(nil)
