package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studyroom-seat-booking/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxAdmin = "admin_username"
	CtxRole  = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer admin token
// and stores the subject and role claims in the request context under
// CtxAdmin and CtxRole.  The secret must match the one used at login.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return deny(c, http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := utils.ParseAdminToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return deny(c, http.StatusUnauthorized, "invalid token")
			}
			c.Set(CtxAdmin, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// deny writes the error envelope used by every endpoint.
func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}
