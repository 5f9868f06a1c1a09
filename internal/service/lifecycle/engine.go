package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/kafka"
	"github.com/Domenick1991/frontdesk/internal/state"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StateStore interface {
	Snapshot() state.Snapshot
	Dispatch(ctx context.Context, a state.Action) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ChargesCalculator returns charges still owed when a guest checks out.
type ChargesCalculator interface {
	PendingCharges(snap state.Snapshot, r domain.Reservation) domain.Money
}

type noCharges struct{}

func (noCharges) PendingCharges(state.Snapshot, domain.Reservation) domain.Money { return 0 }

// Engine commits finished flows to the store, one batch per commit.
type Engine struct {
	store              StateStore
	producer           Producer
	lifecycleTopic     string
	notificationsTopic string
	charges            ChargesCalculator
	now                func() time.Time
	newID              func() string
	logger             *zap.Logger
}

type EngineOption func(*Engine)

func WithProducer(p Producer) EngineOption {
	return func(e *Engine) { e.producer = p }
}

func WithNotificationsTopic(topic string) EngineOption {
	return func(e *Engine) { e.notificationsTopic = topic }
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func WithCharges(c ChargesCalculator) EngineOption {
	return func(e *Engine) { e.charges = c }
}

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(store StateStore, lifecycleTopic string, opts ...EngineOption) *Engine {
	e := &Engine{
		store:          store,
		lifecycleTopic: lifecycleTopic,
		charges:        noCharges{},
		now:            time.Now,
		newID:          uuid.NewString,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Now() time.Time { return e.now() }

func (e *Engine) Snapshot() state.Snapshot { return e.store.Snapshot() }

// CommitCheckIn applies a check-in flow standing on its final step.
func (e *Engine) CommitCheckIn(ctx context.Context, f *CheckInFlow, actor string) (domain.Reservation, error) {
	if err := f.require(CheckInFinal); err != nil {
		return domain.Reservation{}, err
	}
	snap := e.store.Snapshot()
	res, err := snap.Reservation(f.Reservation.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCheckedIn); err != nil {
		return domain.Reservation{}, err
	}
	if !containsRoom(CandidateRooms(snap, res.RoomID, f.Occupancy(), ""), f.Draft.RoomID) {
		return domain.Reservation{}, domain.NewValidationError("roomId", fmt.Sprintf("room %s is no longer available", f.Draft.RoomID))
	}
	if err := f.checkCapacity(snap); err != nil {
		return domain.Reservation{}, err
	}
	quote, err := f.Quote(snap)
	if err != nil {
		return domain.Reservation{}, err
	}

	now := e.now()
	oldRoomID := res.RoomID
	res.RoomID = f.Draft.RoomID
	res.Adults = f.Draft.Adults
	res.Children = f.Draft.Children
	res.Notes = f.Draft.Notes
	res.StayTypeID = f.Draft.StayTypeID
	res.TotalAmount = quote.Total
	res.Status = domain.ReservationStatusCheckedIn
	res.UpdatedAt = now

	var actions []state.Action
	if a, ok := customerIdentity(snap, res.CustomerID, f.Draft.IDNumber, f.Draft.IDDocument); ok {
		actions = append(actions, a)
	}
	actions = append(actions, state.Update[domain.Reservation]{Record: res})
	if oldRoomID != res.RoomID {
		actions = appendRoomStatus(actions, snap, oldRoomID, domain.RoomStatusAvailable)
	}
	actions = appendRoomStatus(actions, snap, res.RoomID, domain.RoomStatusOccupied)
	audit := e.audit(res.ID, domain.AuditCheckedIn, actor, now, map[string]string{
		"roomId": res.RoomID,
		"nights": fmt.Sprint(quote.Nights),
		"total":  res.TotalAmount.String(),
	})
	if oldRoomID != res.RoomID {
		audit.Payload["previousRoomId"] = oldRoomID
	}
	actions = append(actions, state.Add[domain.AuditRecord]{Record: audit})

	if err := e.store.Dispatch(ctx, state.Batch{Name: "check-in", Actions: actions}); err != nil {
		return domain.Reservation{}, fmt.Errorf("commit check-in: %w", err)
	}
	f.Reservation = res
	_ = f.move(CheckInCommitted)

	e.publish(ctx, kafka.EventCheckedIn, res, res.TotalAmount, audit.Payload)
	return res, nil
}

// CommitExtension applies the confirmed extension. A checkout flow continues
// to final checkout; an extension-only flow is finished.
func (e *Engine) CommitExtension(ctx context.Context, f *CheckOutFlow, actor string) (domain.Reservation, error) {
	if err := f.require(CheckOutConfirmExtension); err != nil {
		return domain.Reservation{}, err
	}
	snap := e.store.Snapshot()
	res, err := snap.Reservation(f.Reservation.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if res.Status != domain.ReservationStatusCheckedIn {
		return domain.Reservation{}, &domain.TransitionError{From: res.Status, To: domain.ReservationStatusCheckedIn}
	}
	if f.Draft.RoomID != res.RoomID && !containsRoom(CandidateRooms(snap, res.RoomID, f.Occupancy(), ""), f.Draft.RoomID) {
		return domain.Reservation{}, domain.NewValidationError("roomId", fmt.Sprintf("room %s is no longer available", f.Draft.RoomID))
	}
	rt, err := snap.RoomTypeOf(f.Draft.RoomID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := validateNewCheckOut(res, f.Draft.NewCheckOut); err != nil {
		return domain.Reservation{}, err
	}
	quote := Extend(res, rt, f.Draft.NewCheckOut)
	if quote.AdditionalNights <= 0 {
		return domain.Reservation{}, domain.NewValidationError("checkOut", "the new check-out adds no nights")
	}

	now := e.now()
	oldRoomID := res.RoomID
	res.CheckOut = f.Draft.NewCheckOut
	res.TotalAmount = quote.NewTotal
	res.RoomID = f.Draft.RoomID
	res.StayTypeID = f.Draft.StayTypeID
	res.Adults = f.Draft.Adults
	res.Children = f.Draft.Children
	res.UpdatedAt = now

	actions := []state.Action{state.Update[domain.Reservation]{Record: res}}
	if oldRoomID != res.RoomID {
		actions = appendRoomStatus(actions, snap, oldRoomID, domain.RoomStatusAvailable)
		actions = appendRoomStatus(actions, snap, res.RoomID, domain.RoomStatusOccupied)
	}
	audit := e.audit(res.ID, domain.AuditExtended, actor, now, map[string]string{
		"newCheckOut":      res.CheckOut.Format(time.RFC3339),
		"additionalNights": fmt.Sprint(quote.AdditionalNights),
		"extensionPrice":   quote.ExtensionPrice.String(),
		"roomId":           res.RoomID,
	})
	actions = append(actions, state.Add[domain.AuditRecord]{Record: audit})

	if err := e.store.Dispatch(ctx, state.Batch{Name: "extension", Actions: actions}); err != nil {
		return domain.Reservation{}, fmt.Errorf("commit extension: %w", err)
	}
	f.Reservation = res
	if f.Mode == ModeExtendOnly {
		_ = f.move(CheckOutDone)
	} else {
		_ = f.move(CheckOutFinal)
	}

	e.publish(ctx, kafka.EventExtended, res, quote.ExtensionPrice, audit.Payload)
	return res, nil
}

// CommitCheckOut checks the guest out once identification is on record. On a
// validation failure nothing is written and f.Errors says why.
func (e *Engine) CommitCheckOut(ctx context.Context, f *CheckOutFlow, actor string) (domain.Reservation, error) {
	if err := f.require(CheckOutFinal); err != nil {
		return domain.Reservation{}, err
	}
	if err := f.ValidateIdentification(); err != nil {
		return domain.Reservation{}, err
	}
	snap := e.store.Snapshot()
	res, err := snap.Reservation(f.Reservation.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCheckedOut); err != nil {
		return domain.Reservation{}, err
	}

	now := e.now()
	charges := e.charges.PendingCharges(snap, res)
	res.TotalAmount += charges
	res.Status = domain.ReservationStatusCheckedOut
	res.UpdatedAt = now

	var actions []state.Action
	if a, ok := customerIdentity(snap, res.CustomerID, f.Draft.IDNumber, f.Draft.IDDocument); ok {
		actions = append(actions, a)
	}
	actions = append(actions, state.Update[domain.Reservation]{Record: res})
	actions = appendRoomStatus(actions, snap, res.RoomID, domain.RoomStatusMaintenance)
	if hk, ok := snap.HousekeepingForRoom(res.RoomID); ok {
		hk.Status = domain.RoomStatusToClean
		hk.UpdatedAt = now
		actions = append(actions, state.Update[domain.HousekeepingRecord]{Record: hk})
	}
	audit := e.audit(res.ID, domain.AuditCheckedOut, actor, now, map[string]string{
		"roomId":         res.RoomID,
		"pendingCharges": charges.String(),
		"total":          res.TotalAmount.String(),
	})
	actions = append(actions, state.Add[domain.AuditRecord]{Record: audit})

	if err := e.store.Dispatch(ctx, state.Batch{Name: "check-out", Actions: actions}); err != nil {
		return domain.Reservation{}, fmt.Errorf("commit check-out: %w", err)
	}
	f.Reservation = res
	_ = f.move(CheckOutDone)

	e.publish(ctx, kafka.EventCheckedOut, res, res.TotalAmount, audit.Payload)
	return res, nil
}

// CommitCancel cancels the reservation and records the refund granted.
func (e *Engine) CommitCancel(ctx context.Context, f *CancelFlow, actor string) (domain.Reservation, error) {
	if err := f.require(CancelConfirm); err != nil {
		return domain.Reservation{}, err
	}
	snap := e.store.Snapshot()
	res, err := snap.Reservation(f.Reservation.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCanceled); err != nil {
		return domain.Reservation{}, err
	}
	if f.Draft.RefundAmount > RefundableAmount(res, e.now()) {
		return domain.Reservation{}, domain.NewValidationError("refundAmount", "exceeds the refundable amount")
	}

	now := e.now()
	wasConfirmed := res.Status == domain.ReservationStatusConfirmed
	res.Status = domain.ReservationStatusCanceled
	res.Notes = appendNote(res.Notes, CancellationNote(f.Draft))
	res.UpdatedAt = now

	actions := []state.Action{state.Update[domain.Reservation]{Record: res}}
	if room, err := snap.Room(res.RoomID); err == nil && (room.Status == domain.RoomStatusOccupied || wasConfirmed) {
		room.Status = domain.RoomStatusAvailable
		actions = append(actions, state.Update[domain.Room]{Record: room})
	}
	payload := map[string]string{
		"reason":       f.Draft.Reason,
		"refundAmount": f.Draft.RefundAmount.String(),
	}
	if f.Draft.RefundAmount > 0 {
		payload["refundMethod"] = f.Draft.RefundMethod
	}
	if f.Draft.TransactionRef.Valid {
		payload["transactionRef"] = f.Draft.TransactionRef.String
	}
	audit := e.audit(res.ID, domain.AuditCanceled, actor, now, payload)
	actions = append(actions, state.Add[domain.AuditRecord]{Record: audit})

	if err := e.store.Dispatch(ctx, state.Batch{Name: "cancel", Actions: actions}); err != nil {
		return domain.Reservation{}, fmt.Errorf("commit cancellation: %w", err)
	}
	f.Reservation = res
	_ = f.move(CancelDone)

	e.publish(ctx, kafka.EventCanceled, res, res.TotalAmount, payload)
	if f.Draft.RefundAmount > 0 {
		e.logger.Info("refund granted",
			zap.String("reservation_id", res.ID),
			zap.String("amount", f.Draft.RefundAmount.String()),
			zap.String("method", f.Draft.RefundMethod),
			zap.String("transaction_ref", f.Draft.TransactionRef.String),
		)
		e.publish(ctx, kafka.EventRefunded, res, f.Draft.RefundAmount, payload)
	}
	return res, nil
}

func (e *Engine) audit(reservationID string, event domain.AuditEvent, actor string, at time.Time, payload map[string]string) domain.AuditRecord {
	if actor == "" {
		actor = "front-desk"
	}
	return domain.AuditRecord{
		ID:            e.newID(),
		ReservationID: reservationID,
		Event:         event,
		Actor:         actor,
		At:            at,
		Payload:       payload,
	}
}

func (e *Engine) publish(ctx context.Context, eventType string, res domain.Reservation, amount domain.Money, details map[string]string) {
	if e.producer == nil || e.lifecycleTopic == "" {
		return
	}
	event := kafka.LifecycleEvent{
		ID:            e.newID(),
		Type:          eventType,
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		RoomID:        res.RoomID,
		Status:        string(res.Status),
		Amount:        int64(amount),
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		OccurredAt:    e.now(),
		Details:       details,
	}
	if c, err := e.store.Snapshot().Customer(res.CustomerID); err == nil {
		event.GuestName = c.FullName()
		event.Email = c.Email
	}

	if err := e.producer.Publish(ctx, e.lifecycleTopic, res.ID, event); err != nil {
		e.logger.Warn("publish lifecycle event failed", zap.String("type", eventType), zap.String("reservation_id", res.ID), zap.Error(err))
		return
	}
	if e.notificationsTopic != "" {
		if err := e.producer.Publish(ctx, e.notificationsTopic, res.ID, event); err != nil {
			e.logger.Warn("publish notification failed", zap.String("type", eventType), zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}
}

// customerIdentity returns an update when the draft identification differs
// from what is on file.
func customerIdentity(snap state.Snapshot, customerID, idNumber string, doc domain.IdentificationDocument) (state.Action, bool) {
	c, err := snap.Customer(customerID)
	if err != nil {
		return nil, false
	}
	changed := false
	if idNumber != "" && idNumber != c.IDNumber {
		c.IDNumber = idNumber
		changed = true
	}
	if doc.URL != "" && doc != c.IDDocument {
		c.IDDocument = doc
		changed = true
	}
	if !changed {
		return nil, false
	}
	return state.Update[domain.Customer]{Record: c}, true
}

func appendRoomStatus(actions []state.Action, snap state.Snapshot, roomID string, status domain.RoomStatus) []state.Action {
	room, err := snap.Room(roomID)
	if err != nil {
		return actions
	}
	room.Status = status
	return append(actions, state.Update[domain.Room]{Record: room})
}
