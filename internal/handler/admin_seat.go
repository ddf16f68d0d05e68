package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// ListSeats handles GET /api/admin/seats.  Inactive seats are included.
func (h *AdminHandler) ListSeats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	seats, err := h.Admin.ListSeats(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, seats)
}

// CreateSeat handles POST /api/admin/seats.
func (h *AdminHandler) CreateSeat(c echo.Context) error {
	var in service.SeatInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	seat, err := h.Admin.CreateSeat(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	h.seatsChanged(ctx)
	return ok(c, http.StatusOK, seat)
}

// UpdateSeat handles PUT /api/admin/seats/:id.
func (h *AdminHandler) UpdateSeat(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat id", nil)
	}
	var in service.SeatInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	seat, err := h.Admin.UpdateSeat(ctx, id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	h.seatsChanged(ctx)
	return ok(c, http.StatusOK, seat)
}

// DeleteSeat handles DELETE /api/admin/seats/:id.
func (h *AdminHandler) DeleteSeat(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Admin.DeleteSeat(ctx, id); err != nil {
		return respondError(c, h.Log, err)
	}
	h.seatsChanged(ctx)
	return ok(c, http.StatusOK, echo.Map{"id": id, "deleted": true})
}
