package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/handler"
	"github.com/iliyamo/studyroom-seat-booking/internal/middleware"
	"github.com/iliyamo/studyroom-seat-booking/internal/utils"
)

// RegisterAdmin registers the dashboard endpoints under /api/admin.  Login
// is open (rate limited); everything else needs an ADMIN token.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, o *handler.AdminHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	e.POST("/api/admin/login", a.Login, limit)

	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)

	// ---- Customers ----
	g.GET("/customers", o.ListCustomers)
	g.GET("/customers/:id", o.GetCustomer)
	g.POST("/customers", o.CreateCustomer)
	g.PUT("/customers/:id", o.UpdateCustomer)
	g.DELETE("/customers/:id", o.DeleteCustomer)

	// ---- Seats ----
	g.GET("/seats", o.ListSeats)
	g.POST("/seats", o.CreateSeat)
	g.PUT("/seats/:id", o.UpdateSeat)
	g.DELETE("/seats/:id", o.DeleteSeat)

	// ---- Bookings ----
	g.GET("/bookings", o.ListBookings)
	g.GET("/bookings/:id", o.GetBooking)
	g.PATCH("/bookings/:id/status", o.UpdateBookingStatus)
	g.PATCH("/bookings/:id/payment-status", o.UpdatePaymentStatus)
	g.PATCH("/bookings/:id/seat", o.AssignSeat)
	g.DELETE("/bookings/:id", o.DeleteBooking)

	// ---- Expenses ----
	g.GET("/expenses", o.ListExpenses)
	g.POST("/expenses", o.CreateExpense)
	g.PUT("/expenses/:id", o.UpdateExpense)
	g.DELETE("/expenses/:id", o.DeleteExpense)

	// ---- Maintenance ----
	g.GET("/stats", o.Stats)
	g.DELETE("/cleanup/:table", o.Cleanup)
}
