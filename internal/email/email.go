package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"go.uber.org/zap"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender turns booking events into guest notifications. Delivery is a
// structured log line; there is no SMTP transport.
type Sender struct {
	users  UserLookup
	logger *zap.Logger
}

func NewSender(users UserLookup, logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{users: users, logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", event.UserID, err)
	}
	if user == nil {
		s.logger.Warn("Dropping notification for unknown user",
			zap.Int64("user_id", event.UserID),
			zap.String("reference", event.Reference),
		)
		return nil
	}

	msg, ok := Compose(event, user)
	if !ok {
		s.logger.Debug("No notification for event type", zap.String("type", event.Type))
		return nil
	}

	s.logger.Info("Booking notification sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("reference", event.Reference),
	)
	return nil
}

func Compose(event kafka.BookingEvent, user *domain.User) (Message, bool) {
	var subject, lead string
	switch event.Type {
	case kafka.EventBookingCreated:
		subject = "Your booking is confirmed"
		lead = "your booking is confirmed"
	case kafka.EventBookingCancelled:
		subject = "Your booking was cancelled"
		lead = "your booking has been cancelled"
	case kafka.EventBookingCompleted:
		subject = "Thanks for staying with us"
		lead = "we hope you enjoyed your stay"
	default:
		return Message{}, false
	}

	body := fmt.Sprintf("Hi %s, %s.\nReference: %s\nRoom: %d\nDates: %s to %s\nGuests: %d\nTotal: %s\n",
		user.Name, lead, event.Reference, event.RoomID, event.CheckIn, event.CheckOut, event.Guests, event.TotalPrice)

	return Message{To: user.Email, Subject: subject, Body: body}, true
}
