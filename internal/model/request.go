package model

import "time"

// BookingRequestBody is the JSON body posted by the booking wizard.  It is
// parsed into a BookingRequest before anything else looks at it; the
// client supplied total is accepted for compatibility and ignored.
type BookingRequestBody struct {
	Customer           CustomerInfo `json:"customer"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	StartDate          string       `json:"start_date"`
	StartTime          string       `json:"start_time"`
	DurationType       string       `json:"duration_type"`
	SubscriptionPeriod string       `json:"subscription_period"`
	SelectedSeats      []uint32     `json:"selected_seats"`
	TotalAmount        any          `json:"total_amount,omitempty"`
}

// Contact returns the customer block, falling back to the flat fields used
// by older clients.
func (b BookingRequestBody) Contact() CustomerInfo {
	c := b.Customer
	if c.Name == "" {
		c.Name = b.Name
	}
	if c.Email == "" {
		c.Email = b.Email
	}
	if c.Phone == "" {
		c.Phone = b.Phone
	}
	return c
}

// BookingRequest is either a FourHourRequest or a FullTimeRequest.  Each
// variant carries only the fields that apply to it.
type BookingRequest interface {
	Common() BookingCommon
	Duration() DurationType
}

// BookingCommon holds the fields shared by both request variants.
type BookingCommon struct {
	Customer  CustomerInfo
	StartDate time.Time
	StartTime string
	Period    SubscriptionPeriod
}

// FourHourRequest books a 4-hour session.  No seat is chosen; staff assign
// one later.
type FourHourRequest struct {
	BookingCommon
}

func (r FourHourRequest) Common() BookingCommon  { return r.BookingCommon }
func (r FourHourRequest) Duration() DurationType { return FourHour }

// FullTimeRequest books one or more specific seats for the whole period.
type FullTimeRequest struct {
	BookingCommon
	SeatNumbers []uint32
}

func (r FullTimeRequest) Common() BookingCommon  { return r.BookingCommon }
func (r FullTimeRequest) Duration() DurationType { return FullTime }
