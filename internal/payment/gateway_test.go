package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

var customer = model.CustomerInfo{Name: "Ravi", Email: "ravi.k@example.in", Phone: "9876543210"}

func TestCreateOrderSendsCredentialsAndAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pg/orders", r.URL.Path)
		assert.Equal(t, "app", r.Header.Get("x-client-id"))
		assert.Equal(t, "key", r.Header.Get("x-client-secret"))
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))

		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, float64(600), body["order_amount"])
		assert.True(t, strings.HasPrefix(body["order_id"].(string), "order_"))
		details := body["customer_details"].(map[string]any)
		assert.Equal(t, "ravi_k_example_in", details["customer_id"])

		_ = json.NewEncoder(w).Encode(map[string]string{"order_id": body["order_id"].(string), "payment_session_id": "session_abc"})
	}))
	defer srv.Close()

	g := NewGateway(config.PaymentConfig{BaseURL: srv.URL + "/pg/", AppID: "app", SecretKey: "key", APIVersion: "2023-08-01", Currency: "INR"}, srv.Client(), logging.Discard())
	order, err := g.CreateOrder(context.Background(), customer, decimal.NewFromInt(600))

	require.NoError(t, err)
	assert.Equal(t, "session_abc", order.SessionToken)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"authentication Failed"}`))
	}))
	defer srv.Close()

	g := NewGateway(config.PaymentConfig{BaseURL: srv.URL, AppID: "app", SecretKey: "bad"}, srv.Client(), logging.Discard())
	_, err := g.CreateOrder(context.Background(), customer, decimal.NewFromInt(300))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication Failed")
}

func TestCreateOrderStubWithoutCredentials(t *testing.T) {
	g := NewGateway(config.PaymentConfig{Currency: "INR"}, nil, logging.Discard())
	order, err := g.CreateOrder(context.Background(), customer, decimal.NewFromInt(400))

	require.NoError(t, err)
	assert.False(t, g.Configured())
	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
	assert.Equal(t, "stub_session_"+order.OrderID, order.SessionToken)
}
