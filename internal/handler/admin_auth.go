package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// AuthHandler serves the admin login.
type AuthHandler struct {
	Auth *service.AuthService
	Log  *logrus.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logrus.Logger) *AuthHandler {
	if auth == nil || log == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Auth: auth, Log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	tok, err := h.Auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return fail(c, http.StatusUnauthorized, "invalid credentials", nil)
	}
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, echo.Map{"token": tok.Token, "expires": tok.Exp})
}
