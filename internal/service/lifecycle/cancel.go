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
	CancelSummary Step = "summary"
	CancelReason  Step = "reason"
	CancelRefund  Step = "refund"
	CancelConfirm Step = "confirm"
	CancelDone    Step = "done"
)

var cancelEdges = map[Step][]Step{
	CancelSummary: {CancelReason},
	CancelReason:  {CancelRefund, CancelConfirm, CancelSummary},
	CancelRefund:  {CancelConfirm, CancelReason},
	CancelConfirm: {CancelDone, CancelRefund, CancelReason},
}

type CancelDraft struct {
	Reason         string
	RefundAmount   domain.Money
	RefundMethod   string
	TransactionRef null.String
}

type CancelFlow struct {
	*Wizard
	Reservation domain.Reservation
	// Refundable is the policy ceiling computed when the flow was opened.
	Refundable domain.Money
	Draft      CancelDraft
}

func NewCancelFlow(snap state.Snapshot, reservationID string, now time.Time) (*CancelFlow, error) {
	res, err := snap.Reservation(reservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(res.Status, domain.ReservationStatusCanceled); err != nil {
		return nil, err
	}

	refundable := RefundableAmount(res, now)
	f := &CancelFlow{
		Wizard:      newWizard(CancelSummary, CancelDone, cancelEdges),
		Reservation: res,
		Refundable:  refundable,
		Draft:       CancelDraft{RefundAmount: refundable},
	}

	f.guards[CancelRefund] = func(Step) error {
		if f.Refundable == 0 {
			return fmt.Errorf("%w: nothing to refund", domain.ErrInvalidStep)
		}
		return nil
	}
	f.guards[CancelConfirm] = func(from Step) error {
		if f.Draft.Reason == "" {
			return domain.NewValidationError("reason", "a cancellation reason is required")
		}
		if from == CancelReason && f.Refundable > 0 {
			return fmt.Errorf("%w: refund must be reviewed first", domain.ErrInvalidStep)
		}
		return f.validateRefund()
	}
	return f, nil
}

func (f *CancelFlow) SetReason(reason string) error {
	if err := f.require(CancelReason); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.NewValidationError("reason", "a cancellation reason is required")
	}
	f.Draft.Reason = reason
	return nil
}

// NextAfterReason is the refund step, or confirm when nothing is refundable.
func (f *CancelFlow) NextAfterReason() Step {
	if f.Refundable == 0 {
		return CancelConfirm
	}
	return CancelRefund
}

// SetRefund records the refund the guest gets. Amounts above the refundable
// ceiling are kept in the draft but block continuation.
func (f *CancelFlow) SetRefund(amount domain.Money, method string, transactionRef string) error {
	if err := f.require(CancelRefund); err != nil {
		return err
	}
	f.Draft.RefundAmount = amount
	f.Draft.RefundMethod = strings.TrimSpace(method)
	f.Draft.TransactionRef = null.NewString(strings.TrimSpace(transactionRef), strings.TrimSpace(transactionRef) != "")
	return f.validateRefund()
}

func (f *CancelFlow) validateRefund() error {
	if f.Draft.RefundAmount < 0 {
		return domain.NewValidationError("refundAmount", "must not be negative")
	}
	if f.Draft.RefundAmount > f.Refundable {
		return domain.NewValidationError("refundAmount", fmt.Sprintf("exceeds the refundable amount of %s", f.Refundable))
	}
	if f.Draft.RefundAmount > 0 && f.Draft.RefundMethod == "" {
		return domain.NewValidationError("refundMethod", "choose how the refund is paid")
	}
	return nil
}

// CancellationNote is the line appended to the reservation notes on commit.
func CancellationNote(d CancelDraft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Canceled: %s. Refund: %s", d.Reason, d.RefundAmount)
	if d.RefundAmount > 0 {
		fmt.Fprintf(&b, " via %s", methodLabel(d.RefundMethod))
	}
	if d.TransactionRef.Valid {
		fmt.Fprintf(&b, " (Ref: %s)", d.TransactionRef.String)
	}
	return b.String()
}

func methodLabel(m string) string {
	m = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(m))
	if m == "" {
		return m
	}
	return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
}

func appendNote(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
