package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/availability"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
)

// BookingStore is the persistence the booking use cases need.
type BookingStore interface {
	CreateFourHour(ctx context.Context, info model.CustomerInfo, draft model.BookingDraft) (*model.Booking, error)
	ReserveFullTime(ctx context.Context, info model.CustomerInfo, draft model.BookingDraft, seatNumbers []uint32) ([]model.Booking, error)
	GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error
	AssignSeat(ctx context.Context, id, seatID uint64) error
	ActiveWindowsBySeat(ctx context.Context, dt model.DurationType) (map[uint64][]availability.Window, error)
}

// SeatLookup resolves seats.
type SeatLookup interface {
	List(ctx context.Context) ([]model.Seat, error)
	GetByNumber(ctx context.Context, number uint32) (*model.Seat, error)
}

// EventPublisher hands confirmation events to the notification worker.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// BookingResult is returned by CreateBooking.
type BookingResult struct {
	Bookings    []model.Booking `json:"bookings"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ExpiryDate  string          `json:"expiry_date"`
}

// BookingService implements the public booking flow and the booking state
// transitions used by staff.
type BookingService struct {
	bookings BookingStore
	seats    SeatLookup
	events   EventPublisher
	log      *logrus.Logger
}

// NewBookingService wires a BookingService.  events may be nil, in which
// case no confirmation is sent.
func NewBookingService(bookings BookingStore, seats SeatLookup, events EventPublisher, log *logrus.Logger) *BookingService {
	return &BookingService{bookings: bookings, seats: seats, events: events, log: log}
}

// CreateBooking stores a booking request.  A 4-hour request becomes one
// booking without a seat.  A full-time request reserves every selected
// seat atomically and queues one confirmation per booking; a failed
// publish is logged and does not undo the reservation.
func (s *BookingService) CreateBooking(ctx context.Context, req model.BookingRequest) (*BookingResult, error) {
	common := req.Common()
	switch r := req.(type) {
	case model.FourHourRequest:
		total, err := TotalFor(model.FourHour, common.Period, 1)
		if err != nil {
			return nil, err
		}
		b, err := s.bookings.CreateFourHour(ctx, common.Customer, draftOf(common, model.FourHour, total))
		if err != nil {
			return nil, s.translate(err)
		}
		s.log.WithFields(logrus.Fields{"booking_id": b.ID, "customer_id": b.CustomerID}).Info("4-hour booking created")
		return &BookingResult{Bookings: []model.Booking{*b}, TotalAmount: total, ExpiryDate: expiryOf(common)}, nil

	case model.FullTimeRequest:
		if len(r.SeatNumbers) == 0 {
			return nil, invalid("selected_seats", "at least one seat is required")
		}
		unit, err := PriceFor(model.FullTime, common.Period)
		if err != nil {
			return nil, err
		}
		created, err := s.bookings.ReserveFullTime(ctx, common.Customer, draftOf(common, model.FullTime, unit), r.SeatNumbers)
		if err != nil {
			return nil, s.translate(err)
		}
		total := unit.Mul(decimal.NewFromInt(int64(len(created))))
		// ReserveFullTime inserts in ascending seat order.
		numbers := slices.Sorted(slices.Values(r.SeatNumbers))
		for i, b := range created {
			s.log.WithFields(logrus.Fields{"booking_id": b.ID, "seat_id": *b.SeatID}).Info("full-time booking created")
			s.publish(ctx, queue.BookingConfirmedEvent{
				BookingID:     b.ID,
				CustomerEmail: common.Customer.Email,
				SeatNumber:    numbers[i],
				StartDate:     common.StartDate.Format(model.DateLayout),
				Reason:        queue.ReasonReserved,
			})
		}
		return &BookingResult{Bookings: created, TotalAmount: total, ExpiryDate: expiryOf(common)}, nil
	}
	return nil, invalid("duration_type", "unsupported booking type")
}

func draftOf(c model.BookingCommon, d model.DurationType, amount decimal.Decimal) model.BookingDraft {
	return model.BookingDraft{
		StartDate:          c.StartDate,
		StartTime:          c.StartTime,
		DurationType:       d,
		SubscriptionPeriod: c.Period,
		Amount:             amount,
	}
}

func expiryOf(c model.BookingCommon) string {
	return availability.Expiry(c.StartDate, c.Period).Format(model.DateLayout)
}

// publishTimeout bounds how long a booking request waits on the broker.
var publishTimeout = 3 * time.Second

func (s *BookingService) publish(ctx context.Context, ev queue.BookingConfirmedEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.PublishBookingConfirmed(ctx, ev); err != nil {
		s.log.WithError(err).WithField("booking_id", ev.BookingID).Warn("confirmation not queued")
	}
}

// translate maps repository errors onto the service taxonomy.
func (s *BookingService) translate(err error) error {
	var notFound *repository.SeatNotFoundError
	var unavailable *repository.SeatUnavailableError
	switch {
	case errors.As(err, &notFound):
		return &NotFoundError{Resource: "seat", Key: notFound.SeatNumber}
	case errors.As(err, &unavailable):
		return &ConflictError{Reason: fmt.Sprintf("seat %d is already booked for the selected dates", unavailable.SeatNumber)}
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Resource: "booking", Key: "id"}
	case errors.Is(err, repository.ErrConflict):
		return &ConflictError{Reason: "customer email already in use"}
	}
	return err
}

// GetBooking returns the booking detail or a NotFoundError.
func (s *BookingService) GetBooking(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "booking", Key: id}
	}
	return d, err
}

// UpdateBookingStatus moves a booking to the status named by raw.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id uint64, raw string) (*model.BookingDetail, error) {
	status, err := model.ParseBookingStatus(raw)
	if err != nil {
		return nil, invalid("status", "must be active, cancelled or completed")
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, s.notFoundOr(err, id)
	}
	return s.GetBooking(ctx, id)
}

// UpdatePaymentStatus sets the payment status named by raw.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, id uint64, raw string) (*model.BookingDetail, error) {
	status, err := model.ParsePaymentStatus(raw)
	if err != nil {
		return nil, invalid("payment_status", "must be pending, paid or failed")
	}
	if err := s.bookings.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, s.notFoundOr(err, id)
	}
	return s.GetBooking(ctx, id)
}

// AssignSeat puts a booking on the given seat and queues the
// confirmation.  Staff pick the seat, so availability is not re-checked.
func (s *BookingService) AssignSeat(ctx context.Context, id uint64, seatNumber uint32) (*model.BookingDetail, error) {
	if seatNumber == 0 {
		return nil, invalid("seat_number", "is required")
	}
	seat, err := s.seats.GetByNumber(ctx, seatNumber)
	if err != nil {
		return nil, s.translate(err)
	}
	if err := s.bookings.AssignSeat(ctx, id, seat.ID); err != nil {
		return nil, s.notFoundOr(err, id)
	}
	d, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": id, "seat_number": seatNumber}).Info("seat assigned")
	s.publish(ctx, queue.BookingConfirmedEvent{
		BookingID:     id,
		CustomerEmail: d.CustomerEmail,
		SeatNumber:    seatNumber,
		StartDate:     d.StartDate.Format(model.DateLayout),
		Reason:        queue.ReasonAssigned,
	})
	return d, nil
}

// ResendConfirmation queues the confirmation email of a booking again.
// Bookings without a seat have no ID card yet.
func (s *BookingService) ResendConfirmation(ctx context.Context, id uint64) error {
	d, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if d.SeatNumber == nil {
		return &ConflictError{Reason: "booking has no seat assigned yet"}
	}
	if s.events == nil {
		return &UpstreamError{Service: "notification", Err: errors.New("not configured")}
	}
	err = s.events.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:     id,
		CustomerEmail: d.CustomerEmail,
		SeatNumber:    *d.SeatNumber,
		StartDate:     d.StartDate.Format(model.DateLayout),
		Reason:        queue.ReasonResend,
	})
	if err != nil {
		return &UpstreamError{Service: "notification", Err: err}
	}
	return nil
}

// SeatAvailability lists every seat with whether it can take a booking
// of the given type and period starting on start.  Inactive seats are
// never available.
func (s *BookingService) SeatAvailability(ctx context.Context, start time.Time, d model.DurationType, p model.SubscriptionPeriod) ([]model.SeatAvailability, error) {
	seats, err := s.seats.List(ctx)
	if err != nil {
		return nil, err
	}
	windows, err := s.bookings.ActiveWindowsBySeat(ctx, d)
	if err != nil {
		return nil, err
	}
	requested := availability.NewWindow(start, p)
	out := make([]model.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		out = append(out, model.SeatAvailability{
			Seat:      seat,
			Available: seat.IsActive && availability.IsAvailable(requested, windows[seat.ID]),
		})
	}
	return out, nil
}

func (s *BookingService) notFoundOr(err error, id uint64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "booking", Key: id}
	}
	return err
}
