package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/kafka"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Compose renders the guest notification for a lifecycle event. It reports
// false for events guests are not told about.
func Compose(event kafka.LifecycleEvent) (Message, bool) {
	if event.Email == "" {
		return Message{}, false
	}
	name := event.GuestName
	if name == "" {
		name = "guest"
	}
	amount := domain.Money(event.Amount)
	m := Message{To: event.Email}
	switch event.Type {
	case kafka.EventCheckedIn:
		m.Subject = "Welcome, you are checked in"
		m.Body = fmt.Sprintf("Dear %s, your stay until %s is confirmed. Total: %s.", name, event.CheckOut.Format("Jan 2, 2006"), amount)
	case kafka.EventExtended:
		m.Subject = "Your stay has been extended"
		m.Body = fmt.Sprintf("Dear %s, your new check-out date is %s. Extension charge: %s.", name, event.CheckOut.Format("Jan 2, 2006"), amount)
	case kafka.EventCheckedOut:
		m.Subject = "Thank you for staying with us"
		m.Body = fmt.Sprintf("Dear %s, you have checked out. Final total: %s.", name, amount)
	case kafka.EventCanceled:
		m.Subject = "Your reservation was canceled"
		m.Body = fmt.Sprintf("Dear %s, reservation %s for %s has been canceled.", name, event.ReservationID, event.CheckIn.Format("Jan 2, 2006"))
	case kafka.EventRefunded:
		m.Subject = "Your refund is on its way"
		m.Body = fmt.Sprintf("Dear %s, a refund of %s was issued for reservation %s.", name, amount, event.ReservationID)
	default:
		return Message{}, false
	}
	return m, true
}

// Sender delivers guest notifications. Delivery is a log line until a mail
// transport is configured.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.LifecycleEvent) error {
	m, ok := Compose(event)
	if !ok {
		s.logger.Debug("no notification for event", zap.String("type", event.Type), zap.String("reservation_id", event.ReservationID))
		return nil
	}
	s.logger.Info("send email",
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
		zap.String("body", m.Body),
		zap.String("reservation_id", event.ReservationID),
	)
	return nil
}
