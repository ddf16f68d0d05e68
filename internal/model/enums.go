package model

import (
	"fmt"
	"strings"
)

// DurationType distinguishes 4-hour sessions from full-time subscriptions.
// The string value is the wire form used by the booking form.
type DurationType string

const (
	FourHour DurationType = "4hours"
	FullTime DurationType = "fulltime"
)

// ParseDurationType validates a raw duration value.  Besides the wire
// values it accepts the spelled-out names used by the admin dashboard.
func ParseDurationType(raw string) (DurationType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "4hours", "fourhour", "four_hour":
		return FourHour, nil
	case "fulltime", "full_time":
		return FullTime, nil
	}
	return "", fmt.Errorf("invalid duration type %q", raw)
}

// SubscriptionPeriod is the length of a subscription.  HalfMonth covers 15
// days and OneMonth covers 30 days.
type SubscriptionPeriod string

const (
	HalfMonth SubscriptionPeriod = "0.5"
	OneMonth  SubscriptionPeriod = "1"
)

// ParseSubscriptionPeriod validates a raw period value.
func ParseSubscriptionPeriod(raw string) (SubscriptionPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0.5", "halfmonth", "half_month":
		return HalfMonth, nil
	case "1", "onemonth", "one_month":
		return OneMonth, nil
	}
	return "", fmt.Errorf("invalid subscription period %q", raw)
}

// Label is the human readable period name printed on ID cards and emails.
func (p SubscriptionPeriod) Label() string {
	switch p {
	case HalfMonth:
		return "15 days"
	case OneMonth:
		return "1 month"
	}
	return string(p)
}

// Label is the human readable duration name.
func (d DurationType) Label() string {
	switch d {
	case FourHour:
		return "4 hours"
	case FullTime:
		return "Full time"
	}
	return string(d)
}

// BookingStatus is the lifecycle state of a booking.  New bookings are
// active and may later be cancelled or completed.
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a raw booking status.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch s := BookingStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusCancelled, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("invalid booking status %q", raw)
}

// PaymentStatus tracks the payment state independently of the booking status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ParsePaymentStatus validates a raw payment status.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return s, nil
	}
	return "", fmt.Errorf("invalid payment status %q", raw)
}
