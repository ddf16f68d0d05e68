package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	if db == nil {
		panic("nil db passed to NewHealthHandler")
	}
	return &HealthHandler{DB: db}
}

// Health returns 200 when the database answers a ping within two seconds.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return fail(c, http.StatusServiceUnavailable, "database unreachable", nil)
	}
	return ok(c, http.StatusOK, echo.Map{"status": "ok"})
}
