package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchDecodesEvent(t *testing.T) {
	var got BookingConfirmedEvent
	err := dispatch(context.Background(),
		[]byte(`{"booking_id":7,"customer_email":"a@b.co","seat_number":5,"reason":"reserved"}`),
		func(_ context.Context, ev BookingConfirmedEvent) error { got = ev; return nil })

	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.BookingID)
	assert.Equal(t, uint32(5), got.SeatNumber)
	assert.Equal(t, ReasonReserved, got.Reason)
}

func TestDispatchRejectsBadPayloads(t *testing.T) {
	noop := func(context.Context, BookingConfirmedEvent) error { return nil }

	assert.Error(t, dispatch(context.Background(), []byte(`not json`), noop))
	assert.Error(t, dispatch(context.Background(), []byte(`{"customer_email":"a@b.co"}`), noop))
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	boom := errors.New("smtp down")
	err := dispatch(context.Background(), []byte(`{"booking_id":1}`),
		func(context.Context, BookingConfirmedEvent) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestUnconfiguredPublisher(t *testing.T) {
	var p *Publisher
	assert.Error(t, p.PublishBookingConfirmed(context.Background(), BookingConfirmedEvent{BookingID: 1}))
	assert.Error(t, NewPublisher("").PublishBookingConfirmed(context.Background(), BookingConfirmedEvent{BookingID: 1}))
}

func TestSleepHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.False(t, sleep(ctx, time.Minute))
	assert.Less(t, time.Since(start), time.Second)
}
