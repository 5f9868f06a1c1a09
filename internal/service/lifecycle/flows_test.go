package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func TestWizard_EdgesAndHistory(t *testing.T) {
	w := newWizard("a", "z", map[Step][]Step{
		"a": {"b"},
		"b": {"c", "a"},
		"c": {"z"},
	})

	assert.ErrorIs(t, w.GoTo("c"), domain.ErrInvalidStep)
	require.NoError(t, w.GoTo("b"))
	require.NoError(t, w.GoTo("c"))
	assert.Equal(t, Step("c"), w.Step())

	assert.False(t, w.CanGo("z"))
	assert.ErrorIs(t, w.GoTo("z"), domain.ErrInvalidStep, "the terminal step needs a commit")

	require.NoError(t, w.Back())
	require.NoError(t, w.Back())
	assert.Equal(t, Step("a"), w.Step())
	assert.ErrorIs(t, w.Back(), domain.ErrInvalidStep)
}

func TestNewFlows_RejectIllegalTransitions(t *testing.T) {
	snap := fixture()

	_, err := NewCheckInFlow(snap, "r-done")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = NewCheckOutFlow(snap, "r-cancel", ModeCheckOut)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = NewCancelFlow(snap, "r-done", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = NewCheckInFlow(snap, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckInFlow_RoomSelection(t *testing.T) {
	snap := fixture()
	f, err := NewCheckInFlow(snap, "r-checkin")
	require.NoError(t, err)

	assert.ErrorIs(t, f.SelectRoom(snap, "room-c"), domain.ErrInvalidStep)

	require.NoError(t, f.GoTo(CheckInChangeRoom))
	requireValidation(t, f.SelectRoom(snap, "room-m"), "roomId")
	require.NoError(t, f.SelectRoom(snap, "room-c"))
	assert.True(t, f.RoomChanged())

	require.NoError(t, f.GoTo(CheckInChangeStayType))
	requireValidation(t, f.SelectStayType(snap, "st-std"), "stayTypeId")
	require.NoError(t, f.SelectStayType(snap, "st-fam"))
	assert.Equal(t, 4, f.Occupancy())

	q, err := f.Quote(snap)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, domain.Dollars(450), q.Total)
}

func TestCheckInFlow_CapacityGuard(t *testing.T) {
	snap := fixture()
	f, err := NewCheckInFlow(snap, "r-checkin")
	require.NoError(t, err)

	require.NoError(t, f.SetOccupancy(2, 1))
	requireValidation(t, f.GoTo(CheckInFinal), "adults")
	assert.Equal(t, CheckInDetails, f.Step())

	requireValidation(t, f.SetOccupancy(0, 1), "adults")
	require.NoError(t, f.SetOccupancy(2, 0))
	require.NoError(t, f.GoTo(CheckInFinal))
}

func TestCheckInFlow_ChangingRoomDropsStayType(t *testing.T) {
	snap := fixture()
	f, err := NewCheckInFlow(snap, "r-checkin")
	require.NoError(t, err)
	f.Draft.StayTypeID = nullString("st-std")

	require.NoError(t, f.GoTo(CheckInChangeRoom))
	require.NoError(t, f.SelectRoom(snap, "room-a"))
	assert.True(t, f.Draft.StayTypeID.Valid, "reselecting the same room keeps the stay type")

	require.NoError(t, f.SelectRoom(snap, "room-c"))
	assert.False(t, f.Draft.StayTypeID.Valid)
}

func TestCheckOutFlow_ExtensionToSameDateIsRefused(t *testing.T) {
	snap := fixture()
	f, err := NewCheckOutFlow(snap, "r-stay", ModeCheckOut)
	require.NoError(t, err)
	assert.Equal(t, CheckOutSummary, f.Step())

	require.NoError(t, f.GoTo(CheckOutExtendDate))
	requireValidation(t, f.SetNewCheckOut(f.Reservation.CheckOut), "checkOut")

	q, err := f.ExtensionQuote(snap)
	require.NoError(t, err)
	assert.Zero(t, q.AdditionalNights)

	assert.False(t, f.CanGo(CheckOutConfirmExtension))
	requireValidation(t, f.GoTo(CheckOutConfirmExtension), "checkOut")

	require.NoError(t, f.SetNewCheckOut(at(4)))
	assert.True(t, f.CanGo(CheckOutConfirmExtension))
}

func TestCheckOutFlow_ExtensionShorterThanADayIsRefused(t *testing.T) {
	snap := fixture()
	f, err := NewCheckOutFlow(snap, "r-stay", ModeExtendOnly)
	require.NoError(t, err)

	late := f.Reservation.CheckOut.Add(2 * time.Hour)
	requireValidation(t, f.SetNewCheckOut(late), "checkOut")
	assert.Equal(t, late, f.Draft.NewCheckOut)

	q, err := f.ExtensionQuote(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, q.AdditionalNights, "a partial day still rounds up to a night")

	assert.False(t, f.CanGo(CheckOutConfirmExtension))
	requireValidation(t, f.GoTo(CheckOutConfirmExtension), "checkOut")
	assert.Equal(t, CheckOutExtendDate, f.Step())
}

func TestCheckOutFlow_ExtendOnlyMode(t *testing.T) {
	snap := fixture()
	f, err := NewCheckOutFlow(snap, "r-stay", ModeExtendOnly)
	require.NoError(t, err)

	assert.Equal(t, CheckOutExtendDate, f.Step())
	assert.ErrorIs(t, f.GoTo(CheckOutSummary), domain.ErrInvalidStep)
}

func TestCheckOutFlow_StayTypeModeKeepsCurrentRoom(t *testing.T) {
	snap := fixture()
	f, err := NewCheckOutFlow(snap, "r-noid", ModeExtendOnly)
	require.NoError(t, err)
	require.NoError(t, f.SetNewCheckOut(at(3)))
	require.NoError(t, f.GoTo(CheckOutExtendRoom))

	requireValidation(t, f.SelectStayType(snap, "st-std"), "mode")

	require.NoError(t, f.SetRoomMode(ExtendChangeStayType))
	rooms := f.CandidateRooms(snap)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-d", rooms[0].ID)
	requireValidation(t, f.SelectRoom(snap, "room-a"), "roomId")

	require.NoError(t, f.SelectStayType(snap, "st-std"))
	assert.Equal(t, 1, f.Occupancy())
}

func TestCheckOutFlow_IdentificationGate(t *testing.T) {
	snap := fixture()
	f, err := NewCheckOutFlow(snap, "r-noid", ModeCheckOut)
	require.NoError(t, err)

	requireValidation(t, f.ValidateIdentification(), "idNumber")
	assert.Contains(t, f.Errors, "idNumber")
	assert.Contains(t, f.Errors, "idDocument")

	f.SetIdentification(" X-1 ", domain.IdentificationDocument{Name: "id.png", URL: "data:image/png;base64,AA=="})
	require.NoError(t, f.ValidateIdentification())
	assert.Empty(t, f.Errors)
	assert.Equal(t, "X-1", f.Draft.IDNumber)
}

func TestCheckOutFlow_IdentificationOnFileIsTrimmed(t *testing.T) {
	tests := []struct {
		name     string
		idNumber string
		wantErr  bool
		want     string
	}{
		{"blank", "   ", true, ""},
		{"padded", " P-77 ", false, "P-77"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixture()
			for i := range snap.Customers {
				if snap.Customers[i].ID == "c2" {
					snap.Customers[i].IDNumber = tt.idNumber
				}
			}
			f, err := NewCheckOutFlow(snap, "r-stay", ModeCheckOut)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Draft.IDNumber)

			if tt.wantErr {
				requireValidation(t, f.ValidateIdentification(), "idNumber")
				return
			}
			require.NoError(t, f.ValidateIdentification())
		})
	}
}

func TestCancelFlow_RefundStep(t *testing.T) {
	snap := fixture()
	f, err := NewCancelFlow(snap, "r-cancel", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(500), f.Refundable)

	require.NoError(t, f.GoTo(CancelReason))
	requireValidation(t, f.SetReason("   "), "reason")
	require.NoError(t, f.SetReason("Change of plans"))
	assert.Equal(t, CancelRefund, f.NextAfterReason())
	assert.ErrorIs(t, f.GoTo(CancelConfirm), domain.ErrInvalidStep, "the refund must be reviewed")

	require.NoError(t, f.GoTo(CancelRefund))
	requireValidation(t, f.SetRefund(domain.Dollars(501), "card", ""), "refundAmount")
	assert.False(t, f.CanGo(CancelConfirm))
	requireValidation(t, f.SetRefund(-1, "card", ""), "refundAmount")
	requireValidation(t, f.SetRefund(domain.Dollars(100), "", ""), "refundMethod")

	require.NoError(t, f.SetRefund(domain.Dollars(100), "cash", ""))
	require.NoError(t, f.GoTo(CancelConfirm))
	assert.False(t, f.Draft.TransactionRef.Valid)
}

func TestCancelFlow_SkipsRefundWhenNothingIsRefundable(t *testing.T) {
	snap := fixture()
	f, err := NewCancelFlow(snap, "r-stay", testNow)
	require.NoError(t, err)
	assert.Zero(t, f.Refundable)

	require.NoError(t, f.GoTo(CancelReason))
	require.NoError(t, f.SetReason("Emergency"))
	assert.Equal(t, CancelConfirm, f.NextAfterReason())
	assert.ErrorIs(t, f.GoTo(CancelRefund), domain.ErrInvalidStep)
	require.NoError(t, f.GoTo(CancelConfirm))
}
