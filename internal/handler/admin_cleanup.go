package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/middleware"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
)

// Cleanup handles DELETE /api/admin/cleanup/:table.  table is one of
// bookings, customers, seats or expenses.
func (h *AdminHandler) Cleanup(c echo.Context) error {
	table := repository.Table(c.Param("table"))
	switch table {
	case repository.TableBookings, repository.TableCustomers, repository.TableSeats, repository.TableExpenses:
	default:
		return fail(c, http.StatusBadRequest, "unknown table", nil)
	}
	// LOCK TABLES may wait on running booking transactions.
	ctx, cancel := withTimeout(c)
	defer cancel()
	n, err := h.Admin.Clean(ctx, middleware.AdminName(c), table)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	if table == repository.TableSeats {
		h.seatsChanged(ctx)
	}
	return ok(c, http.StatusOK, echo.Map{"table": table, "deleted": n})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.Admin.Stats(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, s)
}
