// Package payment creates checkout orders on the hosted payment gateway.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// Order is what the client needs to open the checkout.
type Order struct {
	OrderID      string          `json:"order_id"`
	SessionToken string          `json:"payment_session_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

// Gateway talks to the hosted checkout REST API.  Without credentials it
// returns stub orders so the booking flow can be exercised locally.
type Gateway struct {
	cfg    config.PaymentConfig
	client *http.Client
	log    *logrus.Logger
}

func NewGateway(cfg config.PaymentConfig, client *http.Client, log *logrus.Logger) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Gateway{cfg: cfg, client: client, log: log}
}

// Configured reports whether real orders are created.
func (g *Gateway) Configured() bool { return g.cfg.AppID != "" && g.cfg.SecretKey != "" }

type orderRequest struct {
	OrderID       string  `json:"order_id"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
	Customer      struct {
		ID    string `json:"customer_id"`
		Name  string `json:"customer_name"`
		Email string `json:"customer_email"`
		Phone string `json:"customer_phone"`
	} `json:"customer_details"`
	Meta *struct {
		ReturnURL string `json:"return_url"`
	} `json:"order_meta,omitempty"`
}

type orderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	Message          string `json:"message"`
}

// CreateOrder opens a checkout order for amount.  Non-2xx replies and
// transport failures come back as errors; callers treat them as fatal to
// checkout.
func (g *Gateway) CreateOrder(ctx context.Context, customer model.CustomerInfo, amount decimal.Decimal) (*Order, error) {
	orderID := "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if !g.Configured() {
		g.log.WithFields(logrus.Fields{"order_id": orderID, "amount": amount.StringFixed(2)}).Info("[MOCK PAYMENT] order created")
		return &Order{OrderID: orderID, SessionToken: "stub_session_" + orderID, Amount: amount, Currency: g.cfg.Currency}, nil
	}

	var req orderRequest
	req.OrderID = orderID
	req.OrderAmount = amount.Round(2).InexactFloat64()
	req.OrderCurrency = g.cfg.Currency
	req.Customer.ID = customerID(customer.Email)
	req.Customer.Name = customer.Name
	req.Customer.Email = customer.Email
	req.Customer.Phone = customer.Phone
	if g.cfg.ReturnURL != "" {
		req.Meta = &struct {
			ReturnURL string `json:"return_url"`
		}{ReturnURL: g.cfg.ReturnURL + "?order_id={order_id}"}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.cfg.BaseURL, "/")+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-client-id", g.cfg.AppID)
	httpReq.Header.Set("x-client-secret", g.cfg.SecretKey)
	httpReq.Header.Set("x-api-version", g.cfg.APIVersion)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}
	var out orderResponse
	_ = json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("create order: gateway returned %d: %s", resp.StatusCode, msg)
	}
	if out.PaymentSessionID == "" {
		return nil, fmt.Errorf("create order: response without payment_session_id")
	}
	if out.OrderID == "" {
		out.OrderID = orderID
	}
	return &Order{OrderID: out.OrderID, SessionToken: out.PaymentSessionID, Amount: amount.Round(2), Currency: g.cfg.Currency}, nil
}

// customerID derives the gateway's customer id, which only allows
// alphanumerics, underscores and hyphens.
func customerID(email string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(email) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "guest"
	}
	return b.String()
}
