package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/handler"
)

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterPublic registers the booking wizard endpoints used by customers.
// limit guards the public writes; seatCache fronts the seat list.
func RegisterPublic(e *echo.Echo, b *handler.BookingHandler, p *handler.PublicHandler, limit, seatCache echo.MiddlewareFunc) {
	g := e.Group("/api")

	// ---- Seats ----
	g.GET("/seats", b.ListSeats, seatCache)
	g.GET("/seats/availability", b.Availability)

	// ---- Bookings ----
	g.POST("/bookings", b.Create, limit)
	g.POST("/send-booking-email", b.SendBookingEmail, limit)

	// ---- Payment, contact, uploads ----
	g.POST("/payment/create-order", p.CreateOrder, limit)
	g.POST("/contact", p.Contact, limit)
	g.POST("/upload-pdf", p.UploadPDF, limit)
}
