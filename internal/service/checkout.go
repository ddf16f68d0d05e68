package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/payment"
)

// OrderCreator opens a checkout order on the payment gateway.
type OrderCreator interface {
	CreateOrder(ctx context.Context, customer model.CustomerInfo, amount decimal.Decimal) (*payment.Order, error)
}

// CheckoutRequest is the body of the create-order call.  Only the plan and
// the distinct selected seats decide the amount.
type CheckoutRequest struct {
	Customer           model.CustomerInfo `json:"customer"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	DurationType       string             `json:"duration_type"`
	SubscriptionPeriod string             `json:"subscription_period"`
	SelectedSeats      []uint32           `json:"selected_seats"`
}

// CheckoutService prices a plan on the server and opens the payment order.
type CheckoutService struct {
	gateway OrderCreator
	log     *logrus.Logger
}

func NewCheckoutService(gateway OrderCreator, log *logrus.Logger) *CheckoutService {
	return &CheckoutService{gateway: gateway, log: log}
}

// CreateOrder validates req, computes the amount from the price table and
// opens an order.  Gateway failures are returned as *UpstreamError.
func (s *CheckoutService) CreateOrder(ctx context.Context, req CheckoutRequest) (*payment.Order, error) {
	verr := &ValidationError{}
	contact := req.Customer
	if contact.Name == "" && contact.Email == "" && contact.Phone == "" {
		contact = model.CustomerInfo{Name: req.Name, Email: req.Email, Phone: req.Phone}
	}
	contact = validateCustomer(verr, contact)
	duration, err := model.ParseDurationType(req.DurationType)
	if err != nil {
		verr.Add("duration_type", "must be 4hours or fulltime")
	}
	period, err := model.ParseSubscriptionPeriod(req.SubscriptionPeriod)
	if err != nil {
		verr.Add("subscription_period", "must be 0.5 or 1")
	}
	seats := 1
	if duration == model.FullTime {
		seats = len(selectedSeats(verr, req.SelectedSeats))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	amount, err := TotalFor(duration, period, seats)
	if err != nil {
		return nil, err
	}
	order, err := s.gateway.CreateOrder(ctx, contact, amount)
	if err != nil {
		return nil, &UpstreamError{Service: "payment gateway", Err: err}
	}
	s.log.WithFields(logrus.Fields{"order_id": order.OrderID, "amount": amount.StringFixed(2)}).Info("payment order created")
	return order, nil
}
