package service

import (
	"strings"
	"time"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// ParseBookingRequest validates the raw booking form and builds the
// matching request variant.  Every problem found is reported in a single
// *ValidationError.  The client supplied total is never read.
func ParseBookingRequest(body model.BookingRequestBody) (model.BookingRequest, error) {
	verr := &ValidationError{}
	contact := validateCustomer(verr, body.Contact())

	var start time.Time
	if s := strings.TrimSpace(body.StartDate); s == "" {
		verr.Add("start_date", "is required")
	} else if d, err := time.Parse(model.DateLayout, s); err != nil {
		verr.Add("start_date", "must be YYYY-MM-DD")
	} else {
		start = d
	}

	duration, err := model.ParseDurationType(body.DurationType)
	if err != nil {
		verr.Add("duration_type", "must be 4hours or fulltime")
	}
	period, err := model.ParseSubscriptionPeriod(body.SubscriptionPeriod)
	if err != nil {
		verr.Add("subscription_period", "must be 0.5 or 1")
	}

	startTime := strings.TrimSpace(body.StartTime)
	switch {
	case startTime != "" && !isValidClock(startTime):
		verr.Add("start_time", "must be HH:MM")
	case startTime == "" && duration == model.FourHour:
		verr.Add("start_time", "is required for 4-hour bookings")
	}

	var seats []uint32
	if duration == model.FullTime {
		seats = selectedSeats(verr, body.SelectedSeats)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	common := model.BookingCommon{Customer: contact, StartDate: start, StartTime: startTime, Period: period}
	if duration == model.FourHour {
		return model.FourHourRequest{BookingCommon: common}, nil
	}
	return model.FullTimeRequest{BookingCommon: common, SeatNumbers: seats}, nil
}

// selectedSeats drops repeated seat numbers, keeping the first occurrence,
// and records an error for an empty list or a zero seat number.
func selectedSeats(verr *ValidationError, raw []uint32) []uint32 {
	if len(raw) == 0 {
		verr.Add("selected_seats", "at least one seat is required")
		return nil
	}
	seats := make([]uint32, 0, len(raw))
	seen := make(map[uint32]bool, len(raw))
	for _, n := range raw {
		if n == 0 {
			verr.Add("selected_seats", "seat numbers start at 1")
			continue
		}
		if !seen[n] {
			seen[n] = true
			seats = append(seats, n)
		}
	}
	return seats
}

// validateCustomer trims the contact fields and records problems on verr.
func validateCustomer(verr *ValidationError, c model.CustomerInfo) model.CustomerInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	switch {
	case c.Name == "":
		verr.Add("name", "is required")
	case len(c.Name) > 100:
		verr.Add("name", "must be at most 100 characters")
	}
	switch {
	case c.Email == "":
		verr.Add("email", "is required")
	case !isValidEmail(c.Email):
		verr.Add("email", "is not a valid email address")
	}
	switch {
	case c.Phone == "":
		verr.Add("phone", "is required")
	case !isValidPhone(c.Phone):
		verr.Add("phone", "must contain 7 to 15 digits")
	}
	return c
}

// ValidateCustomer checks an admin-submitted customer record.
func ValidateCustomer(c model.CustomerInfo) (model.CustomerInfo, error) {
	verr := &ValidationError{}
	c = validateCustomer(verr, c)
	return c, verr.OrNil()
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t") {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	domain := parts[1]
	return len(parts[0]) > 0 && strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// isValidPhone accepts digits with an optional leading + and spaces or
// dashes as separators.
func isValidPhone(phone string) bool {
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0, r == ' ', r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func isValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidateContact checks a contact form submission.
func ValidateContact(name, email, message string) error {
	verr := &ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "is required")
	}
	if e := strings.TrimSpace(email); e == "" || !isValidEmail(e) {
		verr.Add("email", "is not a valid email address")
	}
	switch m := strings.TrimSpace(message); {
	case m == "":
		verr.Add("message", "is required")
	case len(m) > 5000:
		verr.Add("message", "must be at most 5000 characters")
	}
	return verr.OrNil()
}
