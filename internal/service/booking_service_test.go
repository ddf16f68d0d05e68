package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
)

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

var alice = model.CustomerInfo{Name: "Alice", Email: "alice@example.com", Phone: "9876543210"}

func fullTime(start string, p model.SubscriptionPeriod, seats ...uint32) model.FullTimeRequest {
	return model.FullTimeRequest{
		BookingCommon: model.BookingCommon{Customer: alice, StartDate: date(start), StartTime: "09:00", Period: p},
		SeatNumbers:   seats,
	}
}

func newBookingService(store *memStore, pub EventPublisher) *BookingService {
	return NewBookingService(store, store, pub, logging.Discard())
}

func TestCreateFourHourBookingHasNoSeat(t *testing.T) {
	store := newMemStore(22)
	pub := &recordingPublisher{}
	svc := newBookingService(store, pub)

	res, err := svc.CreateBooking(context.Background(), model.FourHourRequest{
		BookingCommon: model.BookingCommon{Customer: alice, StartDate: date("2024-03-01"), StartTime: "10:00", Period: model.OneMonth},
	})

	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Nil(t, res.Bookings[0].SeatID)
	assert.True(t, decimal.NewFromInt(400).Equal(res.TotalAmount))
	assert.Empty(t, pub.events, "4-hour bookings are confirmed after seat assignment")
}

func TestCreateFullTimePricesPerSeatAndPublishes(t *testing.T) {
	store := newMemStore(22)
	pub := &recordingPublisher{}
	svc := newBookingService(store, pub)

	res, err := svc.CreateBooking(context.Background(), fullTime("2024-03-01", model.OneMonth, 7, 3))

	require.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.True(t, decimal.NewFromInt(1200).Equal(res.TotalAmount))
	assert.Equal(t, "2024-03-31", res.ExpiryDate)
	require.Len(t, pub.events, 2)
	assert.Equal(t, uint32(3), pub.events[0].SeatNumber)
	assert.Equal(t, uint32(7), pub.events[1].SeatNumber)
	assert.Equal(t, queue.ReasonReserved, pub.events[0].Reason)
}

func TestCreateFullTimeRejectsOverlap(t *testing.T) {
	store := newMemStore(22)
	svc := newBookingService(store, nil)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, fullTime("2024-02-15", model.HalfMonth, 5))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, fullTime("2024-03-01", model.OneMonth, 5))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Reason, "seat 5")

	_, err = svc.CreateBooking(ctx, fullTime("2024-03-02", model.OneMonth, 5))
	assert.NoError(t, err)
}

func TestCreateFullTimeIsAllOrNothing(t *testing.T) {
	store := newMemStore(22)
	svc := newBookingService(store, nil)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, fullTime("2024-01-01", model.OneMonth, 2))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, fullTime("2024-01-10", model.OneMonth, 1, 2))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, store.bookings, 1, "seat 1 must not be booked when seat 2 fails")
}

func TestCreateFullTimeUnknownSeat(t *testing.T) {
	svc := newBookingService(newMemStore(22), nil)

	_, err := svc.CreateBooking(context.Background(), fullTime("2024-01-01", model.OneMonth, 99))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint32(99), nf.Key)
}

func TestCreateFullTimePublishFailureKeepsBooking(t *testing.T) {
	store := newMemStore(22)
	svc := newBookingService(store, &recordingPublisher{err: errBroker})

	res, err := svc.CreateBooking(context.Background(), fullTime("2024-01-01", model.HalfMonth, 4))
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Len(t, store.bookings, 1)
}

func TestCreateBookingDoesNotWaitOnStalledBroker(t *testing.T) {
	orig := publishTimeout
	publishTimeout = 50 * time.Millisecond
	t.Cleanup(func() { publishTimeout = orig })

	store := newMemStore(22)
	pub := &stalledPublisher{calls: make(chan struct{}, 1)}
	svc := newBookingService(store, pub)

	start := time.Now()
	res, err := svc.CreateBooking(context.Background(), fullTime("2024-01-01", model.OneMonth, 2))
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Len(t, pub.calls, 1)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDifferentDurationTypesDoNotConflict(t *testing.T) {
	store := newMemStore(22)
	svc := newBookingService(store, nil)
	ctx := context.Background()

	four, err := svc.CreateBooking(ctx, model.FourHourRequest{
		BookingCommon: model.BookingCommon{Customer: alice, StartDate: date("2024-01-01"), StartTime: "10:00", Period: model.OneMonth},
	})
	require.NoError(t, err)
	_, err = svc.AssignSeat(ctx, four.Bookings[0].ID, 6)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, fullTime("2024-01-01", model.OneMonth, 6))
	assert.NoError(t, err)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	store := newMemStore(1)
	svc := newBookingService(store, nil)
	ctx := context.Background()
	res, err := svc.CreateBooking(ctx, fullTime("2024-01-01", model.OneMonth, 1))
	require.NoError(t, err)
	id := res.Bookings[0].ID

	_, err = svc.UpdateBookingStatus(ctx, id, "archived")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Fields[0].Field)

	d, err := svc.UpdateBookingStatus(ctx, id, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, d.Status)

	d, err = svc.UpdatePaymentStatus(ctx, id, "paid")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, d.PaymentStatus)

	_, err = svc.UpdatePaymentStatus(ctx, id, "refunded")
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateBookingStatus(ctx, 999, "active")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCancelledBookingFreesSeat(t *testing.T) {
	store := newMemStore(1)
	svc := newBookingService(store, nil)
	ctx := context.Background()
	res, err := svc.CreateBooking(ctx, fullTime("2024-01-01", model.OneMonth, 1))
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(ctx, res.Bookings[0].ID, "cancelled")
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, fullTime("2024-01-05", model.OneMonth, 1))
	assert.NoError(t, err)
}

func TestAssignSeatPublishesConfirmation(t *testing.T) {
	store := newMemStore(22)
	pub := &recordingPublisher{}
	svc := newBookingService(store, pub)
	ctx := context.Background()
	res, err := svc.CreateBooking(ctx, model.FourHourRequest{
		BookingCommon: model.BookingCommon{Customer: alice, StartDate: date("2024-01-01"), StartTime: "10:00", Period: model.HalfMonth},
	})
	require.NoError(t, err)

	d, err := svc.AssignSeat(ctx, res.Bookings[0].ID, 12)
	require.NoError(t, err)
	require.NotNil(t, d.SeatNumber)
	assert.Equal(t, uint32(12), *d.SeatNumber)
	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.ReasonAssigned, pub.events[0].Reason)
	assert.Equal(t, alice.Email, pub.events[0].CustomerEmail)

	_, err = svc.AssignSeat(ctx, res.Bookings[0].ID, 40)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestResendConfirmation(t *testing.T) {
	store := newMemStore(22)
	pub := &recordingPublisher{}
	svc := newBookingService(store, pub)
	ctx := context.Background()
	four, err := svc.CreateBooking(ctx, model.FourHourRequest{
		BookingCommon: model.BookingCommon{Customer: alice, StartDate: date("2024-01-01"), StartTime: "10:00", Period: model.HalfMonth},
	})
	require.NoError(t, err)

	var conflict *ConflictError
	assert.ErrorAs(t, svc.ResendConfirmation(ctx, four.Bookings[0].ID), &conflict)

	full, err := svc.CreateBooking(ctx, fullTime("2024-01-01", model.HalfMonth, 2))
	require.NoError(t, err)
	require.NoError(t, svc.ResendConfirmation(ctx, full.Bookings[0].ID))
	assert.Equal(t, queue.ReasonResend, pub.events[len(pub.events)-1].Reason)

	pub.err = errBroker
	var up *UpstreamError
	assert.ErrorAs(t, svc.ResendConfirmation(ctx, full.Bookings[0].ID), &up)
}

func TestSeatAvailability(t *testing.T) {
	store := newMemStore(3)
	store.seats[2].IsActive = false
	svc := newBookingService(store, nil)
	ctx := context.Background()
	_, err := svc.CreateBooking(ctx, fullTime("2024-02-15", model.HalfMonth, 1))
	require.NoError(t, err)

	got, err := svc.SeatAvailability(ctx, date("2024-03-01"), model.FullTime, model.OneMonth)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.False(t, got[0].Available, "overlaps the existing window on its expiry day")
	assert.True(t, got[1].Available)
	assert.False(t, got[2].Available, "inactive seat")

	got, err = svc.SeatAvailability(ctx, date("2024-03-02"), model.FullTime, model.OneMonth)
	require.NoError(t, err)
	assert.True(t, got[0].Available)
}
