package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire and in the
// start_date column.
const DateLayout = "2006-01-02"

// Booking is one seat reservation (or one unassigned 4-hour session).
// SeatID is nil for 4-hour bookings until staff allocate a seat.
//
// Fields:
//  ID                 – primary key identifier.
//  CustomerID         – customer who booked.
//  SeatID             – allocated seat (nil while unassigned).
//  StartDate          – first day of the subscription (UTC midnight).
//  StartTime          – session start time of day, HH:MM.
//  DurationType       – 4hours or fulltime.
//  SubscriptionPeriod – 0.5 (15 days) or 1 (30 days).
//  TotalAmount        – server-computed price for this row.
//  Status             – active, cancelled or completed.
//  PaymentStatus      – pending, paid or failed.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Booking struct {
	ID                 uint64             `json:"id"`
	CustomerID         uint64             `json:"customer_id"`
	SeatID             *uint64            `json:"seat_id"`
	StartDate          time.Time          `json:"start_date"`
	StartTime          string             `json:"start_time"`
	DurationType       DurationType       `json:"duration_type"`
	SubscriptionPeriod SubscriptionPeriod `json:"subscription_period"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	Status             BookingStatus      `json:"status"`
	PaymentStatus      PaymentStatus      `json:"payment_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// BookingDraft holds the validated values needed to insert booking rows.
// Amount is the price of a single row.
type BookingDraft struct {
	StartDate          time.Time
	StartTime          string
	DurationType       DurationType
	SubscriptionPeriod SubscriptionPeriod
	Amount             decimal.Decimal
}

// BookingDetail is a booking joined with its customer and seat, as shown
// on the admin dashboard and printed on ID cards.
type BookingDetail struct {
	Booking
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	SeatNumber    *uint32 `json:"seat_number"`
	ExpiryDate    string  `json:"expiry_date"`
}
