package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/middleware"
	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// ListExpenses handles GET /api/admin/expenses.
func (h *AdminHandler) ListExpenses(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Admin.ListExpenses(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, list)
}

// CreateExpense handles POST /api/admin/expenses.  The entry is attributed
// to the authenticated admin.
func (h *AdminHandler) CreateExpense(c echo.Context) error {
	var in service.ExpenseInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	e, err := h.Admin.CreateExpense(ctx, middleware.AdminName(c), in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, e)
}

// UpdateExpense handles PUT /api/admin/expenses/:id.
func (h *AdminHandler) UpdateExpense(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid expense id", nil)
	}
	var in service.ExpenseInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	e, err := h.Admin.UpdateExpense(ctx, id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, e)
}

// DeleteExpense handles DELETE /api/admin/expenses/:id.
func (h *AdminHandler) DeleteExpense(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid expense id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Admin.DeleteExpense(ctx, id); err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "deleted": true})
}
