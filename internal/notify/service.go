package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
)

// DetailLoader loads a booking with its customer and seat.
type DetailLoader interface {
	GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error)
}

// Service sends booking confirmations: it renders the ID card and mails
// it to the customer.
type Service struct {
	bookings DetailLoader
	cards    *IDCardRenderer
	mail     *Mailer
	log      *logrus.Logger
}

func NewService(bookings DetailLoader, cards *IDCardRenderer, mail *Mailer, log *logrus.Logger) *Service {
	return &Service{bookings: bookings, cards: cards, mail: mail, log: log}
}

// Confirm renders and emails the ID card of d.
func (s *Service) Confirm(d model.BookingDetail) error {
	card, err := s.cards.Render(d)
	if err != nil {
		return err
	}
	if err := s.mail.SendConfirmation(d, card); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	s.log.WithFields(logrus.Fields{"booking_id": d.ID, "to": d.CustomerEmail}).Info("confirmation sent")
	return nil
}

// HandleBookingConfirmed is the queue.Handler of the confirmation
// consumer.  It reloads the booking so the mail reflects the stored
// state; cancelled bookings are skipped.
func (s *Service) HandleBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	d, err := s.bookings.GetDetail(ctx, ev.BookingID)
	if err != nil {
		return fmt.Errorf("load booking %d: %w", ev.BookingID, err)
	}
	if d.Status == model.StatusCancelled {
		s.log.WithField("booking_id", d.ID).Info("skipping confirmation of cancelled booking")
		return nil
	}
	return s.Confirm(*d)
}

// SendContact forwards a contact form message to the owner.
func (s *Service) SendContact(c ContactMessage) error {
	return s.mail.SendContact(c)
}

// SendExpiryReminder mails an expiry reminder for d.
func (s *Service) SendExpiryReminder(d model.BookingDetail) error {
	return s.mail.SendExpiryReminder(d)
}
