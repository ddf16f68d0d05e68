package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
)

type captureTransport struct{ sent []Mail }

func (c *captureTransport) Deliver(m Mail) error {
	c.sent = append(c.sent, m)
	return nil
}

type fakeDetails map[uint64]model.BookingDetail

func (f fakeDetails) GetDetail(_ context.Context, id uint64) (*model.BookingDetail, error) {
	d, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func detail() model.BookingDetail {
	seat := uint32(5)
	return model.BookingDetail{
		Booking: model.Booking{
			ID:                 42,
			StartDate:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			StartTime:          "09:00",
			DurationType:       model.FullTime,
			SubscriptionPeriod: model.OneMonth,
			Status:             model.StatusActive,
		},
		CustomerName:  "Anaïs",
		CustomerEmail: "anais@example.com",
		CustomerPhone: "9876543210",
		SeatNumber:    &seat,
		ExpiryDate:    "2024-03-31",
	}
}

var smtpCfg = config.SMTPConfig{Business: "Focus Study Room", OwnerEmail: "owner@example.com"}

func TestRenderIDCardProducesPDF(t *testing.T) {
	out, err := NewIDCardRenderer("Focus Study Room").Render(detail())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderIDCardNeedsSeat(t *testing.T) {
	d := detail()
	d.SeatNumber = nil
	_, err := NewIDCardRenderer("x").Render(d)
	assert.Error(t, err)
}

func TestHandleBookingConfirmedMailsCard(t *testing.T) {
	tr := &captureTransport{}
	svc := NewService(fakeDetails{42: detail()}, NewIDCardRenderer(smtpCfg.Business), NewMailer(tr, smtpCfg, ""), logging.Discard())

	require.NoError(t, svc.HandleBookingConfirmed(context.Background(), queue.BookingConfirmedEvent{BookingID: 42}))
	require.Len(t, tr.sent, 1)
	m := tr.sent[0]
	assert.Equal(t, "anais@example.com", m.To)
	assert.Contains(t, m.Subject, "seat 5")
	assert.Contains(t, m.HTML, "2024-03-31")
	require.Len(t, m.Attachments, 1)
	assert.Equal(t, "idcard-42.pdf", m.Attachments[0].Name)

	assert.Error(t, svc.HandleBookingConfirmed(context.Background(), queue.BookingConfirmedEvent{BookingID: 7}))
}

func TestHandleBookingConfirmedSkipsCancelled(t *testing.T) {
	d := detail()
	d.Status = model.StatusCancelled
	tr := &captureTransport{}
	svc := NewService(fakeDetails{42: d}, NewIDCardRenderer("x"), NewMailer(tr, smtpCfg, ""), logging.Discard())

	require.NoError(t, svc.HandleBookingConfirmed(context.Background(), queue.BookingConfirmedEvent{BookingID: 42}))
	assert.Empty(t, tr.sent)
}

func TestSendContact(t *testing.T) {
	tr := &captureTransport{}
	m := NewMailer(tr, smtpCfg, "")

	require.NoError(t, m.SendContact(ContactMessage{Name: "Ravi", Email: "ravi@example.in\r\nBcc: x@y.z", Message: "Is seat 3 free?"}))
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "owner@example.com", tr.sent[0].To)
	assert.NotContains(t, tr.sent[0].ReplyTo, "\r\n")
	assert.Equal(t, "[Focus Study Room] Contact form", tr.sent[0].Subject)

	assert.Error(t, NewMailer(tr, config.SMTPConfig{}, "").SendContact(ContactMessage{}))
}

func TestExpiryReminderIncludesRenewLink(t *testing.T) {
	tr := &captureTransport{}
	require.NoError(t, NewMailer(tr, smtpCfg, "https://studyroom.example").SendExpiryReminder(detail()))
	assert.Contains(t, tr.sent[0].HTML, "https://studyroom.example")
	assert.Contains(t, tr.sent[0].Subject, "2024-03-31")
}

func TestNewTransportFallsBackToLog(t *testing.T) {
	_, ok := NewTransport(config.SMTPConfig{}, logging.Discard()).(LogTransport)
	assert.True(t, ok)
	_, ok = NewTransport(config.SMTPConfig{Host: "smtp.example.com", Username: "u"}, logging.Discard()).(*SMTPTransport)
	assert.True(t, ok)
}
