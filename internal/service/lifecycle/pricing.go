package lifecycle

import (
	"math"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
)

const day = 24 * time.Hour

// Nights is the number of started days between check-in and check-out, never negative.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// StayPrice prices a stay at the room type's current base rate.
func StayPrice(rt domain.RoomType, nights int) domain.Money {
	return rt.BasePrice.Mul(nights)
}

type Quote struct {
	RoomID      string       `json:"roomId"`
	RoomTypeID  string       `json:"roomTypeId"`
	Nights      int          `json:"nights"`
	NightlyRate domain.Money `json:"nightlyRate"`
	Total       domain.Money `json:"total"`
}

type ExtensionQuote struct {
	RoomID           string       `json:"roomId"`
	NewCheckOut      time.Time    `json:"newCheckOut"`
	OriginalNights   int          `json:"originalNights"`
	NewNights        int          `json:"newNights"`
	AdditionalNights int          `json:"additionalNights"`
	NightlyRate      domain.Money `json:"nightlyRate"`
	ExtensionPrice   domain.Money `json:"extensionPrice"`
	NewTotal         domain.Money `json:"newTotal"`
}

// Extend prices only the nights added beyond the reservation's current check-out.
func Extend(r domain.Reservation, rt domain.RoomType, newCheckOut time.Time) ExtensionQuote {
	orig := Nights(r.CheckIn, r.CheckOut)
	next := Nights(r.CheckIn, newCheckOut)
	q := ExtensionQuote{
		NewCheckOut:      newCheckOut,
		OriginalNights:   orig,
		NewNights:        next,
		AdditionalNights: next - orig,
		NightlyRate:      rt.BasePrice,
		NewTotal:         r.TotalAmount,
	}
	if q.AdditionalNights > 0 {
		q.ExtensionPrice = rt.BasePrice.Mul(q.AdditionalNights)
		q.NewTotal = r.TotalAmount + q.ExtensionPrice
	}
	return q
}
