package domain

import "time"

type Bill struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservationId"`
	Amount        Money     `json:"amount"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (b Bill) EntityID() string { return b.ID }

type CurrencyRate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

func (c CurrencyRate) EntityID() string { return c.Code }

type AuditEvent string

const (
	AuditCheckedIn  AuditEvent = "checked_in"
	AuditExtended   AuditEvent = "extended"
	AuditCheckedOut AuditEvent = "checked_out"
	AuditCanceled   AuditEvent = "canceled"
)

// AuditRecord is an append-only entry describing one lifecycle commit.
type AuditRecord struct {
	ID            string            `json:"id"`
	ReservationID string            `json:"reservationId"`
	Event         AuditEvent        `json:"event"`
	Actor         string            `json:"actor"`
	At            time.Time         `json:"at"`
	Payload       map[string]string `json:"payload,omitempty"`
}

func (a AuditRecord) EntityID() string { return a.ID }
