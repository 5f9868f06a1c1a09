package lifecycle

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/state"
	"gopkg.in/guregu/null.v4"
)

const (
	CheckInDetails        Step = "details"
	CheckInChangeRoom     Step = "change-room"
	CheckInChangeStayType Step = "change-stay-type"
	CheckInConfirmChange  Step = "confirm-change"
	CheckInFinal          Step = "final-checkin"
	CheckInCommitted      Step = "committed"
)

var checkInEdges = map[Step][]Step{
	CheckInDetails:        {CheckInChangeRoom, CheckInChangeStayType, CheckInFinal},
	CheckInChangeRoom:     {CheckInChangeStayType, CheckInConfirmChange, CheckInDetails},
	CheckInChangeStayType: {CheckInConfirmChange, CheckInDetails},
	CheckInConfirmChange:  {CheckInFinal, CheckInDetails},
	CheckInFinal:          {CheckInCommitted, CheckInDetails},
}

// CheckInDraft holds the front-desk decisions until the check-in is committed.
type CheckInDraft struct {
	RoomID     string
	Adults     int
	Children   int
	Notes      string
	StayTypeID null.String
	IDNumber   string
	IDDocument domain.IdentificationDocument
}

type CheckInFlow struct {
	*Wizard
	Reservation    domain.Reservation
	Draft          CheckInDraft
	RoomTypeFilter string
}

// NewCheckInFlow opens a check-in for a confirmed reservation. The draft
// starts from the reservation and the guest's identification on file.
func NewCheckInFlow(snap state.Snapshot, reservationID string) (*CheckInFlow, error) {
	res, err := snap.Reservation(reservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCheckedIn); err != nil {
		return nil, err
	}

	f := &CheckInFlow{
		Wizard:      newWizard(CheckInDetails, CheckInCommitted, checkInEdges),
		Reservation: res,
		Draft: CheckInDraft{
			RoomID:     res.RoomID,
			Adults:     res.Adults,
			Children:   res.Children,
			Notes:      res.Notes,
			StayTypeID: res.StayTypeID,
		},
	}
	if c, err := snap.Customer(res.CustomerID); err == nil {
		f.Draft.IDNumber = c.IDNumber
		f.Draft.IDDocument = c.IDDocument
	}
	f.guards[CheckInFinal] = func(Step) error { return f.checkCapacity(snap) }
	return f, nil
}

func (f *CheckInFlow) Occupancy() int { return f.Draft.Adults + f.Draft.Children }

func (f *CheckInFlow) RoomChanged() bool { return f.Draft.RoomID != f.Reservation.RoomID }

func (f *CheckInFlow) SetOccupancy(adults, children int) error {
	if adults < 1 {
		return domain.NewValidationError("adults", "at least one adult is required")
	}
	if children < 0 {
		return domain.NewValidationError("children", "must not be negative")
	}
	f.Draft.Adults = adults
	f.Draft.Children = children
	return nil
}

func (f *CheckInFlow) SetNotes(notes string) { f.Draft.Notes = notes }

func (f *CheckInFlow) SetIdentification(idNumber string, doc domain.IdentificationDocument) {
	f.Draft.IDNumber = strings.TrimSpace(idNumber)
	if doc.URL != "" {
		f.Draft.IDDocument = doc
	}
}

func (f *CheckInFlow) CandidateRooms(snap state.Snapshot) []domain.Room {
	return CandidateRooms(snap, f.Reservation.RoomID, f.Occupancy(), f.RoomTypeFilter)
}

// SelectRoom picks the room to check into; only candidate rooms are accepted.
func (f *CheckInFlow) SelectRoom(snap state.Snapshot, roomID string) error {
	if err := f.require(CheckInChangeRoom); err != nil {
		return err
	}
	if !containsRoom(f.CandidateRooms(snap), roomID) {
		return domain.NewValidationError("roomId", fmt.Sprintf("room %s cannot host %d guests", roomID, f.Occupancy()))
	}
	if roomID != f.Draft.RoomID {
		// a stay type belongs to a room type and may not fit the new room
		f.Draft.StayTypeID = null.String{}
	}
	f.Draft.RoomID = roomID
	return nil
}

func (f *CheckInFlow) StayTypeOptions(snap state.Snapshot) []domain.StayTypeCombination {
	room, err := snap.Room(f.Draft.RoomID)
	if err != nil {
		return nil
	}
	return StayTypeOptions(snap, room.RoomTypeID)
}

// SelectStayType applies a combination of the selected room's type and takes
// over its adult and child counts.
func (f *CheckInFlow) SelectStayType(snap state.Snapshot, stayTypeID string) error {
	if err := f.require(CheckInChangeStayType); err != nil {
		return err
	}
	c, ok := findStayType(f.StayTypeOptions(snap), stayTypeID)
	if !ok {
		return domain.NewValidationError("stayTypeId", "stay type does not belong to the selected room type")
	}
	f.Draft.StayTypeID = null.StringFrom(c.ID)
	f.Draft.Adults = c.Adults
	f.Draft.Children = c.Children
	return nil
}

// Quote prices the stay at the selected room's current base rate.
func (f *CheckInFlow) Quote(snap state.Snapshot) (Quote, error) {
	rt, err := snap.RoomTypeOf(f.Draft.RoomID)
	if err != nil {
		return Quote{}, err
	}
	nights := Nights(f.Reservation.CheckIn, f.Reservation.CheckOut)
	return Quote{
		RoomID:      f.Draft.RoomID,
		RoomTypeID:  rt.ID,
		Nights:      nights,
		NightlyRate: rt.BasePrice,
		Total:       StayPrice(rt, nights),
	}, nil
}

func (f *CheckInFlow) checkCapacity(snap state.Snapshot) error {
	rt, err := snap.RoomTypeOf(f.Draft.RoomID)
	if err != nil {
		return err
	}
	if f.Occupancy() > rt.Capacity {
		return domain.NewValidationError("adults", fmt.Sprintf("%s rooms hold at most %d guests", rt.Name, rt.Capacity))
	}
	return nil
}
