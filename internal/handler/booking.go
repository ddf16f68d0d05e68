package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// BookingHandler serves the public booking wizard.
type BookingHandler struct {
	Bookings *service.BookingService
	Seats    service.SeatLookup
	Log      *logrus.Logger
}

func NewBookingHandler(bookings *service.BookingService, seats service.SeatLookup, log *logrus.Logger) *BookingHandler {
	if bookings == nil || seats == nil || log == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Seats: seats, Log: log}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var body model.BookingRequestBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	req, err := service.ParseBookingRequest(body)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	res, err := h.Bookings.CreateBooking(ctx, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, res)
}

// ListSeats handles GET /api/seats.
func (h *BookingHandler) ListSeats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	seats, err := h.Seats.List(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, seats)
}

// Availability handles GET /api/seats/availability.  It needs start_date,
// duration_type and subscription_period query parameters.
func (h *BookingHandler) Availability(c echo.Context) error {
	verr := &service.ValidationError{}
	start, err := time.Parse(model.DateLayout, c.QueryParam("start_date"))
	if err != nil {
		verr.Add("start_date", "must be YYYY-MM-DD")
	}
	duration, err := model.ParseDurationType(c.QueryParam("duration_type"))
	if err != nil {
		verr.Add("duration_type", "must be 4hours or fulltime")
	}
	period, err := model.ParseSubscriptionPeriod(c.QueryParam("subscription_period"))
	if err != nil {
		verr.Add("subscription_period", "must be 0.5 or 1")
	}
	if err := verr.OrNil(); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	seats, err := h.Bookings.SeatAvailability(ctx, start, duration, period)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, seats)
}

// SendBookingEmail handles POST /api/send-booking-email.
func (h *BookingHandler) SendBookingEmail(c echo.Context) error {
	var body struct {
		BookingID uint64 `json:"booking_id"`
	}
	if err := c.Bind(&body); err != nil || body.BookingID == 0 {
		return fail(c, http.StatusBadRequest, "booking_id is required", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Bookings.ResendConfirmation(ctx, body.BookingID); err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, echo.Map{"booking_id": body.BookingID, "queued": true})
}
