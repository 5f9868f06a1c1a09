package lifecycle

import (
	"math"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
)

// DaysUntil counts started days from now until t; negative once t has passed.
func DaysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// RefundPercent is the share of the total returned when canceling with the given notice.
func RefundPercent(daysUntilCheckIn int) int64 {
	switch {
	case daysUntilCheckIn > 7:
		return 100
	case daysUntilCheckIn >= 3:
		return 50
	case daysUntilCheckIn >= 0:
		return 25
	default:
		return 0
	}
}

// RefundableAmount is the most that may be returned when r is canceled at now.
// Guests who already arrived get nothing back.
func RefundableAmount(r domain.Reservation, now time.Time) domain.Money {
	if r.Status == domain.ReservationStatusCheckedIn || r.Status == domain.ReservationStatusCheckedOut {
		return 0
	}
	return r.TotalAmount.Percent(RefundPercent(DaysUntil(now, r.CheckIn)))
}

type RefundQuote struct {
	ReservationID    string       `json:"reservationId"`
	DaysUntilCheckIn int          `json:"daysUntilCheckIn"`
	Percent          int64        `json:"percent"`
	TotalAmount      domain.Money `json:"totalAmount"`
	Refundable       domain.Money `json:"refundable"`
}

func QuoteRefund(r domain.Reservation, now time.Time) RefundQuote {
	q := RefundQuote{
		ReservationID:    r.ID,
		DaysUntilCheckIn: DaysUntil(now, r.CheckIn),
		TotalAmount:      r.TotalAmount,
		Refundable:       RefundableAmount(r, now),
	}
	if q.Refundable > 0 {
		q.Percent = RefundPercent(q.DaysUntilCheckIn)
	}
	return q
}
