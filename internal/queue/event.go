// Package queue carries booking events over RabbitMQ.
package queue

// BookingConfirmedQueue is the durable queue confirmation events go to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published once per booking that has a seat:
// on full-time reservation and again when staff assign a seat or ask for
// the email to be resent.  Consumers reload the booking by ID, so the
// other fields are informational.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	CustomerEmail string `json:"customer_email"`
	SeatNumber    uint32 `json:"seat_number"`
	StartDate     string `json:"start_date"`
	Reason        string `json:"reason"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// Reasons carried by BookingConfirmedEvent.
const (
	ReasonReserved = "reserved"
	ReasonAssigned = "seat_assigned"
	ReasonResend   = "resend"
)
