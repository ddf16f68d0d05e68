package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// requestTimeout bounds the database work of one request.
const requestTimeout = 5 * time.Second

// ok writes the success envelope.
func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// fail writes the error envelope.  details is omitted when nil.
func fail(c echo.Context, status int, msg string, details any) error {
	body := echo.Map{"success": false, "error": msg}
	if details != nil {
		body["details"] = details
	}
	return c.JSON(status, body)
}

// respondError maps service errors to status codes.  Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c echo.Context, log *logrus.Logger, err error) error {
	var (
		verr     *service.ValidationError
		notFound *service.NotFoundError
		conflict *service.ConflictError
		upstream *service.UpstreamError
	)
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.As(err, &notFound):
		return fail(c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		return fail(c, http.StatusBadRequest, conflict.Reason, nil)
	case errors.As(err, &upstream):
		log.WithError(err).WithField("path", c.Path()).Error("upstream failure")
		return fail(c, http.StatusBadGateway, upstream.Service+" is unavailable, please try again", nil)
	case errors.Is(err, context.DeadlineExceeded):
		return fail(c, http.StatusGatewayTimeout, "request timed out", nil)
	}
	log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return fail(c, http.StatusInternalServerError, "internal server error", nil)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}
