package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/payment"
)

type fakeGateway struct {
	amount decimal.Decimal
	err    error
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ model.CustomerInfo, amount decimal.Decimal) (*payment.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.amount = amount
	return &payment.Order{OrderID: "order_1", SessionToken: "s", Amount: amount}, nil
}

func TestCheckoutPricesOnServer(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewCheckoutService(gw, logging.Discard())

	_, err := svc.CreateOrder(context.Background(), CheckoutRequest{
		Name: "Ravi", Email: "ravi@example.in", Phone: "9876543210",
		DurationType: "fulltime", SubscriptionPeriod: "0.5", SelectedSeats: []uint32{1, 2},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(gw.amount))

	_, err = svc.CreateOrder(context.Background(), CheckoutRequest{
		Customer:     model.CustomerInfo{Name: "Ravi", Email: "ravi@example.in", Phone: "9876543210"},
		DurationType: "4hours", SubscriptionPeriod: "1", SelectedSeats: []uint32{3, 4},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(gw.amount))
}

func TestCheckoutChargesDistinctSeats(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewCheckoutService(gw, logging.Discard())
	req := CheckoutRequest{
		Name: "Ravi", Email: "ravi@example.in", Phone: "9876543210",
		DurationType: "fulltime", SubscriptionPeriod: "1", SelectedSeats: []uint32{5, 5, 5},
	}

	_, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(gw.amount), gw.amount.String())

	// The stored booking for the same form is priced the same way.
	parsed, err := ParseBookingRequest(model.BookingRequestBody{
		Name: req.Name, Email: req.Email, Phone: req.Phone, StartDate: "2025-03-01",
		DurationType: req.DurationType, SubscriptionPeriod: req.SubscriptionPeriod, SelectedSeats: req.SelectedSeats,
	})
	require.NoError(t, err)
	full, ok := parsed.(model.FullTimeRequest)
	require.True(t, ok)
	total, err := TotalFor(model.FullTime, model.OneMonth, len(full.SeatNumbers))
	require.NoError(t, err)
	assert.True(t, total.Equal(gw.amount))
}

func TestCheckoutRejectsMissingOrZeroSeats(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewCheckoutService(gw, logging.Discard())
	for _, seats := range [][]uint32{nil, {0}, {2, 0}} {
		_, err := svc.CreateOrder(context.Background(), CheckoutRequest{
			Name: "Ravi", Email: "ravi@example.in", Phone: "9876543210",
			DurationType: "fulltime", SubscriptionPeriod: "0.5", SelectedSeats: seats,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "%v", seats)
		assert.Equal(t, "selected_seats", verr.Fields[0].Field)
	}
	assert.True(t, gw.amount.IsZero())
}

func TestCheckoutErrors(t *testing.T) {
	svc := NewCheckoutService(&fakeGateway{err: errors.New("timeout")}, logging.Discard())

	_, err := svc.CreateOrder(context.Background(), CheckoutRequest{DurationType: "fulltime", SubscriptionPeriod: "1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.CreateOrder(context.Background(), CheckoutRequest{
		Name: "Ravi", Email: "ravi@example.in", Phone: "9876543210",
		DurationType: "4hours", SubscriptionPeriod: "1",
	})
	var up *UpstreamError
	assert.ErrorAs(t, err, &up)
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact("Ravi", "ravi@example.in", "hello"))
	var verr *ValidationError
	require.ErrorAs(t, ValidateContact("", "nope", " "), &verr)
	assert.Len(t, verr.Fields, 3)
}
