package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// ListCustomers handles GET /api/admin/customers.
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Admin.ListCustomers(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, list)
}

// GetCustomer handles GET /api/admin/customers/:id.
func (h *AdminHandler) GetCustomer(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid customer id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	cust, err := h.Admin.GetCustomer(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, cust)
}

// CreateCustomer handles POST /api/admin/customers.
func (h *AdminHandler) CreateCustomer(c echo.Context) error {
	var in model.CustomerInfo
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	cust, err := h.Admin.CreateCustomer(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, cust)
}

// UpdateCustomer handles PUT /api/admin/customers/:id.
func (h *AdminHandler) UpdateCustomer(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid customer id", nil)
	}
	var in model.CustomerInfo
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	cust, err := h.Admin.UpdateCustomer(ctx, id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, cust)
}

// DeleteCustomer handles DELETE /api/admin/customers/:id.  Customers with
// bookings are refused.
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid customer id", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Admin.DeleteCustomer(ctx, id); err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "deleted": true})
}
