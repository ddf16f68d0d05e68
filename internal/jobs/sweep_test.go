package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

type fakeExpiry struct {
	completedBefore time.Time
	listedOn        time.Time
	expiring        []model.BookingDetail
}

func (f *fakeExpiry) CompleteExpired(_ context.Context, day time.Time) (int64, error) {
	f.completedBefore = day
	return 4, nil
}

func (f *fakeExpiry) ListExpiringOn(_ context.Context, day time.Time) ([]model.BookingDetail, error) {
	f.listedOn = day
	return f.expiring, nil
}

type fakeReminder struct {
	sent []uint64
	fail map[uint64]bool
}

func (r *fakeReminder) SendExpiryReminder(d model.BookingDetail) error {
	if r.fail[d.ID] {
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, d.ID)
	return nil
}

func day(s string) time.Time {
	d, _ := time.Parse(model.DateLayout, s)
	return d
}

func TestSweepCompletesAndReminds(t *testing.T) {
	store := &fakeExpiry{expiring: []model.BookingDetail{
		{Booking: model.Booking{ID: 1}}, {Booking: model.Booking{ID: 2}}, {Booking: model.Booking{ID: 3}},
	}}
	rem := &fakeReminder{fail: map[uint64]bool{2: true}}
	s := NewSweeper(store, rem, 2, time.UTC, logging.Discard())

	res, err := s.Run(context.Background(), day("2024-03-10"))
	require.NoError(t, err)

	assert.Equal(t, day("2024-03-10"), store.completedBefore)
	assert.Equal(t, day("2024-03-12"), store.listedOn)
	assert.Equal(t, SweepResult{Completed: 4, Reminded: 2, Failed: 1}, res)
	assert.Equal(t, []uint64{1, 3}, rem.sent)
}

func TestSweepWithoutReminders(t *testing.T) {
	store := &fakeExpiry{}
	s := NewSweeper(store, nil, 0, nil, logging.Discard())

	res, err := s.Run(context.Background(), day("2024-03-10"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Completed)
	assert.True(t, store.listedOn.IsZero())
}

func TestHandleExpirySweepPayloadDate(t *testing.T) {
	store := &fakeExpiry{}
	s := NewSweeper(store, &fakeReminder{}, 1, time.UTC, logging.Discard())

	task, err := NewExpirySweepTask("2024-01-31")
	require.NoError(t, err)
	require.NoError(t, s.HandleExpirySweep(context.Background(), task))
	assert.Equal(t, day("2024-01-31"), store.completedBefore)

	bad, err := NewExpirySweepTask("31/01/2024")
	require.NoError(t, err)
	assert.Error(t, s.HandleExpirySweep(context.Background(), bad))
}

func TestHandleExpirySweepUsesSchedulerZone(t *testing.T) {
	store := &fakeExpiry{}
	loc := time.FixedZone("IST", 5*3600+1800)
	s := NewSweeper(store, nil, 0, loc, logging.Discard())
	// 20:00 UTC on Jan 31 is already Feb 1 in IST.
	s.now = func() time.Time { return time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC) }

	task, err := NewExpirySweepTask("")
	require.NoError(t, err)
	require.NoError(t, s.HandleExpirySweep(context.Background(), task))
	assert.Equal(t, day("2024-02-01"), store.completedBefore)
}
