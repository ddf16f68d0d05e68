package middleware

import "github.com/labstack/echo/v4"

// AdminName returns the username of the authenticated admin, or "anon"
// on public routes.
func AdminName(c echo.Context) string {
	if v, ok := c.Get(CtxAdmin).(string); ok && v != "" {
		return v
	}
	return "anon"
}
