package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// AdminHandler bundles the services behind the admin dashboard.
type AdminHandler struct {
	Admin    *service.AdminService
	Bookings *service.BookingService
	Log      *logrus.Logger
	// SeatsChanged runs after writes that change the seat list, e.g. to
	// drop cached responses.  May be nil.
	SeatsChanged func(ctx context.Context)
}

// NewAdminHandler constructs an AdminHandler and panics if any required
// dependency is nil.
func NewAdminHandler(admin *service.AdminService, bookings *service.BookingService, log *logrus.Logger) *AdminHandler {
	if admin == nil || bookings == nil || log == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Admin: admin, Bookings: bookings, Log: log}
}

func (h *AdminHandler) seatsChanged(ctx context.Context) {
	if h.SeatsChanged != nil {
		h.SeatsChanged(ctx)
	}
}
