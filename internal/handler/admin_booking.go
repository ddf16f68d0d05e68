package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListBookings handles GET /api/admin/bookings[?status=active].
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Admin.ListBookings(ctx, c.QueryParam("status"))
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, list)
}

// GetBooking handles GET /api/admin/bookings/:id.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid booking id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.Bookings.GetBooking(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, d)
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/:id/status.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid booking id", nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.Bookings.UpdateBookingStatus(ctx, id, body.Status)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, d)
}

// UpdatePaymentStatus handles PATCH /api/admin/bookings/:id/payment-status.
func (h *AdminHandler) UpdatePaymentStatus(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid booking id", nil)
	}
	var body struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.Bookings.UpdatePaymentStatus(ctx, id, body.PaymentStatus)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, d)
}

// AssignSeat handles PATCH /api/admin/bookings/:id/seat and confirms a
// pending 4-hour booking.
func (h *AdminHandler) AssignSeat(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid booking id", nil)
	}
	var body struct {
		SeatNumber uint32 `json:"seat_number"`
	}
	if err := c.Bind(&body); err != nil || body.SeatNumber == 0 {
		return fail(c, http.StatusBadRequest, "seat_number is required", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.Bookings.AssignSeat(ctx, id, body.SeatNumber)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, d)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid booking id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Admin.DeleteBooking(ctx, id); err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "deleted": true})
}
