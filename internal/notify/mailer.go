package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// Attachment is a file sent with a Mail.
type Attachment struct {
	Name string
	Data []byte
}

// Mail is one outgoing message.
type Mail struct {
	To          string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Transport delivers a Mail.
type Transport interface {
	Deliver(m Mail) error
}

// SMTPTransport sends through an SMTP relay with gomail.
type SMTPTransport struct {
	from   string
	name   string
	dialer *gomail.Dialer
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		from:   cfg.Username,
		name:   cfg.FromName,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (t *SMTPTransport) Deliver(m Mail) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", t.from, t.name)
	msg.SetHeader("To", m.To)
	if m.ReplyTo != "" {
		msg.SetHeader("Reply-To", m.ReplyTo)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	for _, a := range m.Attachments {
		data := a.Data
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return t.dialer.DialAndSend(msg)
}

// LogTransport only logs what would have been sent.  It is used when SMTP
// is not configured.
type LogTransport struct {
	Log *logrus.Logger
}

func (t LogTransport) Deliver(m Mail) error {
	t.Log.WithFields(logrus.Fields{
		"to":          m.To,
		"subject":     m.Subject,
		"attachments": len(m.Attachments),
	}).Info("[MOCK EMAIL]")
	return nil
}

// NewTransport picks SMTP when configured and the log transport
// otherwise.
func NewTransport(cfg config.SMTPConfig, log *logrus.Logger) Transport {
	if cfg.Configured() {
		return NewSMTPTransport(cfg)
	}
	return LogTransport{Log: log}
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Mailer composes the customer and owner emails.
type Mailer struct {
	t        Transport
	business string
	owner    string
	frontend string
}

func NewMailer(t Transport, cfg config.SMTPConfig, frontendURL string) *Mailer {
	return &Mailer{t: t, business: cfg.Business, owner: cfg.OwnerEmail, frontend: frontendURL}
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html><body style="font-family:Arial,Helvetica,sans-serif;color:#222">
<h2>{{.Business}}: booking confirmed</h2>
<p>Hi {{.Name}},</p>
<p>Your seat <strong>{{.Seat}}</strong> is booked.</p>
<table cellpadding="4">
<tr><td>Plan</td><td>{{.Plan}}</td></tr>
<tr><td>Valid from</td><td>{{.Start}}</td></tr>
<tr><td>Valid until</td><td>{{.Expiry}}</td></tr>
<tr><td>Booking</td><td>#{{.ID}}</td></tr>
</table>
<p>Your ID card is attached. Please show it at the desk.</p>
</body></html>`))

var reminderHTML = template.Must(template.New("reminder").Parse(`<!doctype html>
<html><body style="font-family:Arial,Helvetica,sans-serif;color:#222">
<h2>{{.Business}}: your plan ends on {{.Expiry}}</h2>
<p>Hi {{.Name}},</p>
<p>Your booking #{{.ID}} for seat {{.Seat}} expires on <strong>{{.Expiry}}</strong>.</p>
{{if .Link}}<p><a href="{{.Link}}">Renew your seat</a></p>{{end}}
</body></html>`))

type mailView struct {
	Business, Name, Plan, Start, Expiry, Link string
	Seat                                      uint32
	ID                                        uint64
}

func (m *Mailer) view(d model.BookingDetail) mailView {
	v := mailView{
		Business: m.business,
		Name:     d.CustomerName,
		Plan:     d.DurationType.Label() + ", " + d.SubscriptionPeriod.Label(),
		Start:    d.StartDate.Format(model.DateLayout),
		Expiry:   d.ExpiryDate,
		Link:     m.frontend,
		ID:       d.ID,
	}
	if d.SeatNumber != nil {
		v.Seat = *d.SeatNumber
	}
	return v
}

func render(t *template.Template, v any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SendConfirmation emails the customer the booking summary with the ID
// card attached.
func (m *Mailer) SendConfirmation(d model.BookingDetail, card []byte) error {
	v := m.view(d)
	html, err := render(confirmationHTML, v)
	if err != nil {
		return err
	}
	return m.t.Deliver(Mail{
		To:      d.CustomerEmail,
		Subject: fmt.Sprintf("%s: seat %d confirmed", m.business, v.Seat),
		Text: fmt.Sprintf("Hi %s,\n\nYour seat %d is booked (%s) from %s until %s.\nBooking #%d. Your ID card is attached.\n",
			v.Name, v.Seat, v.Plan, v.Start, v.Expiry, v.ID),
		HTML:        html,
		Attachments: []Attachment{{Name: fmt.Sprintf("idcard-%d.pdf", d.ID), Data: card}},
	})
}

// SendExpiryReminder tells the customer the booking ends soon.
func (m *Mailer) SendExpiryReminder(d model.BookingDetail) error {
	v := m.view(d)
	html, err := render(reminderHTML, v)
	if err != nil {
		return err
	}
	return m.t.Deliver(Mail{
		To:      d.CustomerEmail,
		Subject: fmt.Sprintf("%s: your plan ends on %s", m.business, v.Expiry),
		Text:    fmt.Sprintf("Hi %s,\n\nYour booking #%d expires on %s.\n", v.Name, v.ID, v.Expiry),
		HTML:    html,
	})
}

// SendContact forwards a contact form submission to the owner.
func (m *Mailer) SendContact(c ContactMessage) error {
	if m.owner == "" {
		return fmt.Errorf("owner email not configured")
	}
	safe := func(s string) string { return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ") }
	subject := safe(c.Subject)
	if subject == "" {
		subject = "Contact form"
	}
	return m.t.Deliver(Mail{
		To:      m.owner,
		ReplyTo: safe(c.Email),
		Subject: fmt.Sprintf("[%s] %s", m.business, subject),
		Text: fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s\n",
			safe(c.Name), safe(c.Email), safe(c.Phone), strings.TrimSpace(c.Message)),
	})
}
