package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
	"gopkg.in/guregu/null.v4"
)

const (
	CheckOutSummary          Step = "summary"
	CheckOutExtendDate       Step = "extend-date"
	CheckOutExtendRoom       Step = "extend-room"
	CheckOutConfirmExtension Step = "confirm-extension"
	CheckOutFinal            Step = "final-checkout"
	CheckOutDone             Step = "done"
)

var checkOutEdges = map[Step][]Step{
	CheckOutSummary:          {CheckOutExtendDate, CheckOutFinal},
	CheckOutExtendDate:       {CheckOutExtendRoom, CheckOutConfirmExtension, CheckOutSummary},
	CheckOutExtendRoom:       {CheckOutConfirmExtension, CheckOutExtendDate},
	CheckOutConfirmExtension: {CheckOutFinal, CheckOutDone, CheckOutExtendDate, CheckOutExtendRoom},
	CheckOutFinal:            {CheckOutDone, CheckOutSummary},
}

type CheckOutMode int

const (
	ModeCheckOut CheckOutMode = iota
	// ModeExtendOnly starts at the date step and ends with the extension commit.
	ModeExtendOnly
)

// ExtendRoomMode selects what may change together with an extension.
type ExtendRoomMode string

const (
	ExtendChangeRoom     ExtendRoomMode = "room"
	ExtendChangeStayType ExtendRoomMode = "stay-type"
)

type CheckOutDraft struct {
	NewCheckOut time.Time
	RoomMode    ExtendRoomMode
	RoomID      string
	StayTypeID  null.String
	Adults      int
	Children    int
	IDNumber    string
	IDDocument  domain.IdentificationDocument
}

type CheckOutFlow struct {
	*Wizard
	Mode        CheckOutMode
	Reservation domain.Reservation
	Draft       CheckOutDraft
	// Errors holds field-level messages for the final checkout form.
	Errors map[string]string
}

// NewCheckOutFlow opens a checkout (or extension) for a checked-in reservation.
func NewCheckOutFlow(snap state.Snapshot, reservationID string, mode CheckOutMode) (*CheckOutFlow, error) {
	res, err := snap.Reservation(reservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCheckedOut); err != nil {
		return nil, err
	}

	start := CheckOutSummary
	if mode == ModeExtendOnly {
		start = CheckOutExtendDate
	}
	f := &CheckOutFlow{
		Wizard:      newWizard(start, CheckOutDone, checkOutEdges),
		Mode:        mode,
		Reservation: res,
		Draft: CheckOutDraft{
			NewCheckOut: res.CheckOut,
			RoomMode:    ExtendChangeRoom,
			RoomID:      res.RoomID,
			StayTypeID:  res.StayTypeID,
			Adults:      res.Adults,
			Children:    res.Children,
		},
		Errors: make(map[string]string),
	}
	if c, err := snap.Customer(res.CustomerID); err == nil {
		f.Draft.IDNumber = strings.TrimSpace(c.IDNumber)
		f.Draft.IDDocument = c.IDDocument
	}

	checkoutOnly := func(Step) error {
		if f.Mode == ModeExtendOnly {
			return fmt.Errorf("%w: extension-only flow does not check out", domain.ErrInvalidStep)
		}
		return nil
	}
	f.guards[CheckOutSummary] = checkoutOnly
	f.guards[CheckOutFinal] = checkoutOnly
	f.guards[CheckOutConfirmExtension] = func(Step) error {
		if err := validateNewCheckOut(f.Reservation, f.Draft.NewCheckOut); err != nil {
			return err
		}
		q, err := f.ExtensionQuote(snap)
		if err != nil {
			return err
		}
		if q.AdditionalNights <= 0 {
			return domain.NewValidationError("checkOut", "the new check-out adds no nights")
		}
		return nil
	}
	return f, nil
}

func (f *CheckOutFlow) Occupancy() int { return f.Draft.Adults + f.Draft.Children }

func (f *CheckOutFlow) RoomChanged() bool { return f.Draft.RoomID != f.Reservation.RoomID }

// SetNewCheckOut records the requested check-out. Dates earlier than one day
// after the current check-out are kept in the draft but rejected.
func (f *CheckOutFlow) SetNewCheckOut(t time.Time) error {
	if err := f.require(CheckOutExtendDate); err != nil {
		return err
	}
	f.Draft.NewCheckOut = t
	return validateNewCheckOut(f.Reservation, t)
}

// validateNewCheckOut requires an extension to move check-out by a full day.
func validateNewCheckOut(res domain.Reservation, t time.Time) error {
	if t.Before(res.CheckOut.Add(day)) {
		return domain.NewValidationError("checkOut", "must be at least one day after the current check-out")
	}
	return nil
}

func (f *CheckOutFlow) SetRoomMode(mode ExtendRoomMode) error {
	if err := f.require(CheckOutExtendRoom); err != nil {
		return err
	}
	if mode != ExtendChangeRoom && mode != ExtendChangeStayType {
		return domain.NewValidationError("mode", "unknown change mode")
	}
	f.Draft.RoomMode = mode
	if mode == ExtendChangeStayType {
		f.Draft.RoomID = f.Reservation.RoomID
	}
	return nil
}

// CandidateRooms follows the check-in selection rules; in stay-type mode only
// the current room is offered.
func (f *CheckOutFlow) CandidateRooms(snap state.Snapshot) []domain.Room {
	if f.Draft.RoomMode == ExtendChangeStayType {
		room, err := snap.Room(f.Reservation.RoomID)
		if err != nil {
			return nil
		}
		return []domain.Room{room}
	}
	return CandidateRooms(snap, f.Reservation.RoomID, f.Occupancy(), "")
}

func (f *CheckOutFlow) SelectRoom(snap state.Snapshot, roomID string) error {
	if err := f.require(CheckOutExtendRoom); err != nil {
		return err
	}
	if !containsRoom(f.CandidateRooms(snap), roomID) {
		return domain.NewValidationError("roomId", fmt.Sprintf("room %s is not available for this stay", roomID))
	}
	if roomID != f.Draft.RoomID {
		f.Draft.StayTypeID = null.String{}
	}
	f.Draft.RoomID = roomID
	return nil
}

func (f *CheckOutFlow) StayTypeOptions(snap state.Snapshot) []domain.StayTypeCombination {
	room, err := snap.Room(f.Draft.RoomID)
	if err != nil {
		return nil
	}
	return StayTypeOptions(snap, room.RoomTypeID)
}

func (f *CheckOutFlow) SelectStayType(snap state.Snapshot, stayTypeID string) error {
	if err := f.require(CheckOutExtendRoom); err != nil {
		return err
	}
	if f.Draft.RoomMode != ExtendChangeStayType {
		return domain.NewValidationError("mode", "switch to stay-type mode first")
	}
	c, ok := findStayType(f.StayTypeOptions(snap), stayTypeID)
	if !ok {
		return domain.NewValidationError("stayTypeId", "stay type does not belong to this room")
	}
	f.Draft.StayTypeID = null.StringFrom(c.ID)
	f.Draft.Adults = c.Adults
	f.Draft.Children = c.Children
	return nil
}

// ExtensionQuote prices the added nights at the selected room's base rate.
func (f *CheckOutFlow) ExtensionQuote(snap state.Snapshot) (ExtensionQuote, error) {
	rt, err := snap.RoomTypeOf(f.Draft.RoomID)
	if err != nil {
		return ExtensionQuote{}, err
	}
	q := Extend(f.Reservation, rt, f.Draft.NewCheckOut)
	q.RoomID = f.Draft.RoomID
	return q, nil
}

func (f *CheckOutFlow) SetIdentification(idNumber string, doc domain.IdentificationDocument) {
	f.Draft.IDNumber = strings.TrimSpace(idNumber)
	if doc.URL != "" {
		f.Draft.IDDocument = doc
	}
}

// ValidateIdentification fills Errors and fails unless an ID number and a
// document are recorded.
func (f *CheckOutFlow) ValidateIdentification() error {
	delete(f.Errors, "idNumber")
	delete(f.Errors, "idDocument")

	var first *domain.ValidationError
	if strings.TrimSpace(f.Draft.IDNumber) == "" {
		f.Errors["idNumber"] = "identification number is required before checkout"
		first = domain.NewValidationError("idNumber", f.Errors["idNumber"])
	}
	if f.Draft.IDDocument.URL == "" {
		f.Errors["idDocument"] = "an identification document must be uploaded before checkout"
		if first == nil {
			first = domain.NewValidationError("idDocument", f.Errors["idDocument"])
		}
	}
	if first != nil {
		return first
	}
	return nil
}
