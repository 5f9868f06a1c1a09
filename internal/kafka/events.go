package kafka

import "time"

const (
	EventCheckedIn  = "reservation_checked_in"
	EventExtended   = "reservation_extended"
	EventCheckedOut = "reservation_checked_out"
	EventCanceled   = "reservation_canceled"
	EventRefunded   = "reservation_refunded"
)

// LifecycleEvent is published after every committed reservation change.
// Amount is in cents.
type LifecycleEvent struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	ReservationID string            `json:"reservation_id"`
	CustomerID    string            `json:"customer_id"`
	GuestName     string            `json:"guest_name"`
	Email         string            `json:"email"`
	RoomID        string            `json:"room_id"`
	Status        string            `json:"status"`
	Amount        int64             `json:"amount"`
	CheckIn       time.Time         `json:"check_in"`
	CheckOut      time.Time         `json:"check_out"`
	OccurredAt    time.Time         `json:"occurred_at"`
	Details       map[string]string `json:"details,omitempty"`
}
