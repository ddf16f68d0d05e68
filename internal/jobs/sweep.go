package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// ExpiryStore is the booking persistence the sweep needs.
type ExpiryStore interface {
	CompleteExpired(ctx context.Context, day time.Time) (int64, error)
	ListExpiringOn(ctx context.Context, day time.Time) ([]model.BookingDetail, error)
}

// Reminder sends the expiry reminder email.
type Reminder interface {
	SendExpiryReminder(d model.BookingDetail) error
}

// SweepResult summarises one run.
type SweepResult struct {
	Completed int64
	Reminded  int
	Failed    int
}

// Sweeper closes out expired bookings and reminds customers whose plan
// ends soon.
type Sweeper struct {
	bookings     ExpiryStore
	reminder     Reminder
	reminderDays int
	loc          *time.Location
	log          *logrus.Logger
	now          func() time.Time
}

func NewSweeper(bookings ExpiryStore, reminder Reminder, reminderDays int, loc *time.Location, log *logrus.Logger) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{bookings: bookings, reminder: reminder, reminderDays: reminderDays, loc: loc, log: log, now: time.Now}
}

// today returns the current calendar date in the sweeper's zone as a UTC
// midnight.
func (s *Sweeper) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run completes every active booking that expired before day and emails
// the customers whose booking expires reminderDays after day.  Reminder
// failures are counted, not returned.
func (s *Sweeper) Run(ctx context.Context, day time.Time) (SweepResult, error) {
	var res SweepResult
	n, err := s.bookings.CompleteExpired(ctx, day)
	if err != nil {
		return res, err
	}
	res.Completed = n

	if s.reminderDays > 0 && s.reminder != nil {
		due := day.AddDate(0, 0, s.reminderDays)
		expiring, err := s.bookings.ListExpiringOn(ctx, due)
		if err != nil {
			return res, err
		}
		for _, d := range expiring {
			if err := s.reminder.SendExpiryReminder(d); err != nil {
				res.Failed++
				s.log.WithError(err).WithField("booking_id", d.ID).Warn("expiry reminder failed")
				continue
			}
			res.Reminded++
		}
	}
	s.log.WithFields(logrus.Fields{
		"day":       day.Format(model.DateLayout),
		"completed": res.Completed,
		"reminded":  res.Reminded,
		"failed":    res.Failed,
	}).Info("expiry sweep finished")
	return res, nil
}

// HandleExpirySweep is the asynq handler of TypeExpirySweep.
func (s *Sweeper) HandleExpirySweep(ctx context.Context, t *asynq.Task) error {
	var p ExpirySweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	day := s.today()
	if p.Date != "" {
		d, err := time.Parse(model.DateLayout, p.Date)
		if err != nil {
			return fmt.Errorf("bad date %q: %w", p.Date, asynq.SkipRetry)
		}
		day = d
	}
	_, err := s.Run(ctx, day)
	return err
}
