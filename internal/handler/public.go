package handler

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/notify"
	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

// maxUploadBytes caps uploaded PDFs.
const maxUploadBytes = 10 << 20

// PublicHandler serves the checkout, contact form and PDF upload.
type PublicHandler struct {
	Checkout  *service.CheckoutService
	Notify    *notify.Service
	UploadDir string
	Log       *logrus.Logger
}

func NewPublicHandler(checkout *service.CheckoutService, n *notify.Service, uploadDir string, log *logrus.Logger) *PublicHandler {
	if checkout == nil || n == nil || log == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Checkout: checkout, Notify: n, UploadDir: uploadDir, Log: log}
}

// CreateOrder handles POST /api/payment/create-order.
func (h *PublicHandler) CreateOrder(c echo.Context) error {
	var req service.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	order, err := h.Checkout.CreateOrder(ctx, req)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return ok(c, http.StatusOK, order)
}

// Contact handles POST /api/contact.
func (h *PublicHandler) Contact(c echo.Context) error {
	var msg notify.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if err := service.ValidateContact(msg.Name, msg.Email, msg.Message); err != nil {
		return respondError(c, h.Log, err)
	}
	if err := h.Notify.SendContact(msg); err != nil {
		return respondError(c, h.Log, &service.UpstreamError{Service: "email", Err: err})
	}
	return ok(c, http.StatusOK, echo.Map{"sent": true})
}

// UploadPDF handles POST /api/upload-pdf.  The multipart field "file" must
// hold a PDF; it is stored under a random name.
func (h *PublicHandler) UploadPDF(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "file is required", nil)
	}
	if fh.Size > maxUploadBytes {
		return fail(c, http.StatusBadRequest, "file is larger than 10MB", nil)
	}
	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "cannot read file", nil)
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return fail(c, http.StatusBadRequest, "cannot read file", nil)
	}
	if len(data) > maxUploadBytes {
		return fail(c, http.StatusBadRequest, "file is larger than 10MB", nil)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) || !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return fail(c, http.StatusBadRequest, "only PDF files are accepted", nil)
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return respondError(c, h.Log, err)
	}
	name := uuid.NewString() + ".pdf"
	if err := os.WriteFile(filepath.Join(h.UploadDir, name), data, 0o644); err != nil {
		return respondError(c, h.Log, err)
	}
	h.Log.WithFields(logrus.Fields{"file": name, "bytes": len(data)}).Info("pdf uploaded")
	return ok(c, http.StatusOK, echo.Map{"file": name, "url": "/uploads/" + name})
}
