package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/studyroom-seat-booking/internal/availability"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  Creation methods run the
// customer upsert, the availability check and the inserts inside a single
// transaction so that a reservation is all-or-nothing.  All timestamp
// fields are stored in UTC; start_date is a DATE column.
type BookingRepo struct {
	db        *sql.DB
	customers *CustomerRepo
	seats     *SeatRepo
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB, customers *CustomerRepo, seats *SeatRepo) *BookingRepo {
	return &BookingRepo{db: db, customers: customers, seats: seats}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CreateFourHour stores a 4-hour booking with no seat.  Staff allocate the
// seat later, so no availability check is made here.
func (r *BookingRepo) CreateFourHour(ctx context.Context, info model.CustomerInfo, draft model.BookingDraft) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	customerID, err := r.customers.UpsertByEmailTx(ctx, tx, info)
	if err != nil {
		return nil, err
	}
	b, err := r.insertTx(ctx, tx, customerID, nil, draft)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return b, nil
}

// ReserveFullTime books every seat in seatNumbers for the draft window.
//
// Each seat row is locked with SELECT ... FOR UPDATE before its active
// bookings of the same duration type are read, so two concurrent requests
// for the same seat are serialised and the second one sees the first one's
// insert.  Seats are locked in ascending order to avoid lock-order
// deadlocks between multi-seat requests.  The first missing seat yields
// *SeatNotFoundError and the first unavailable one *SeatUnavailableError;
// in both cases nothing is written.
func (r *BookingRepo) ReserveFullTime(ctx context.Context, info model.CustomerInfo, draft model.BookingDraft, seatNumbers []uint32) ([]model.Booking, error) {
	numbers := append([]uint32(nil), seatNumbers...)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	customerID, err := r.customers.UpsertByEmailTx(ctx, tx, info)
	if err != nil {
		return nil, err
	}
	requested := availability.NewWindow(draft.StartDate, draft.SubscriptionPeriod)
	out := make([]model.Booking, 0, len(numbers))
	for _, n := range numbers {
		seat, err := r.seats.LockByNumberTx(ctx, tx, n)
		if err != nil {
			return nil, err
		}
		if !seat.IsActive {
			return nil, &SeatUnavailableError{SeatNumber: n}
		}
		existing, err := activeWindows(ctx, tx, seat.ID, draft.DurationType)
		if err != nil {
			return nil, err
		}
		if !availability.IsAvailable(requested, existing) {
			return nil, &SeatUnavailableError{SeatNumber: n}
		}
		seatID := seat.ID
		b, err := r.insertTx(ctx, tx, customerID, &seatID, draft)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return out, nil
}

func (r *BookingRepo) insertTx(ctx context.Context, tx *sql.Tx, customerID uint64, seatID *uint64, d model.BookingDraft) (*model.Booking, error) {
	var seat sql.NullInt64
	if seatID != nil {
		seat = sql.NullInt64{Int64: int64(*seatID), Valid: true}
	}
	start := availability.Day(d.StartDate)
	const q = `INSERT INTO bookings
	             (customer_id, seat_id, start_date, start_time, duration_type, subscription_period, total_amount, status, payment_status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		customerID, seat, start.Format(model.DateLayout), d.StartTime,
		string(d.DurationType), string(d.SubscriptionPeriod), d.Amount,
		string(model.StatusActive), string(model.PaymentPending))
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &model.Booking{
		ID:                 uint64(id),
		CustomerID:         customerID,
		SeatID:             seatID,
		StartDate:          start,
		StartTime:          d.StartTime,
		DurationType:       d.DurationType,
		SubscriptionPeriod: d.SubscriptionPeriod,
		TotalAmount:        d.Amount,
		Status:             model.StatusActive,
		PaymentStatus:      model.PaymentPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// activeWindows loads the date windows of the active bookings of one
// duration type on a seat.
func activeWindows(ctx context.Context, q queryer, seatID uint64, dt model.DurationType) ([]availability.Window, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT start_date, subscription_period FROM bookings
		 WHERE seat_id = ? AND duration_type = ? AND status = ?`,
		seatID, string(dt), string(model.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("load active bookings: %w", err)
	}
	defer rows.Close()
	var out []availability.Window
	for rows.Next() {
		var start time.Time
		var period string
		if err := rows.Scan(&start, &period); err != nil {
			return nil, err
		}
		out = append(out, availability.NewWindow(start, model.SubscriptionPeriod(period)))
	}
	return out, rows.Err()
}

// ActiveWindowsBySeat returns, for every seat that has any, the windows of
// its active bookings of the given duration type.  It backs the public
// seat picker.
func (r *BookingRepo) ActiveWindowsBySeat(ctx context.Context, dt model.DurationType) (map[uint64][]availability.Window, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id, start_date, subscription_period FROM bookings
		 WHERE seat_id IS NOT NULL AND duration_type = ? AND status = ?`,
		string(dt), string(model.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("load active bookings: %w", err)
	}
	defer rows.Close()
	out := make(map[uint64][]availability.Window)
	for rows.Next() {
		var seatID uint64
		var start time.Time
		var period string
		if err := rows.Scan(&seatID, &start, &period); err != nil {
			return nil, err
		}
		out[seatID] = append(out[seatID], availability.NewWindow(start, model.SubscriptionPeriod(period)))
	}
	return out, rows.Err()
}

const detailSelect = `SELECT b.id, b.customer_id, b.seat_id, b.start_date, b.start_time,
                             b.duration_type, b.subscription_period, b.total_amount,
                             b.status, b.payment_status, b.created_at, b.updated_at,
                             c.name, c.email, c.phone, s.seat_number
                      FROM bookings b
                      JOIN customers c ON c.id = b.customer_id
                      LEFT JOIN seats s ON s.id = b.seat_id`

func scanDetail(s rowScanner) (*model.BookingDetail, error) {
	var (
		d          model.BookingDetail
		seatID     sql.NullInt64
		seatNumber sql.NullInt64
		duration   string
		period     string
		status     string
		payment    string
		amount     decimal.Decimal
	)
	if err := s.Scan(
		&d.ID, &d.CustomerID, &seatID, &d.StartDate, &d.StartTime,
		&duration, &period, &amount,
		&status, &payment, &d.CreatedAt, &d.UpdatedAt,
		&d.CustomerName, &d.CustomerEmail, &d.CustomerPhone, &seatNumber,
	); err != nil {
		return nil, err
	}
	if seatID.Valid {
		id := uint64(seatID.Int64)
		d.SeatID = &id
	}
	if seatNumber.Valid {
		n := uint32(seatNumber.Int64)
		d.SeatNumber = &n
	}
	d.DurationType = model.DurationType(duration)
	d.SubscriptionPeriod = model.SubscriptionPeriod(period)
	d.Status = model.BookingStatus(status)
	d.PaymentStatus = model.PaymentStatus(payment)
	d.TotalAmount = amount
	d.StartDate = availability.Day(d.StartDate)
	d.ExpiryDate = availability.Expiry(d.StartDate, d.SubscriptionPeriod).Format(model.DateLayout)
	return &d, nil
}

func (r *BookingRepo) listDetails(ctx context.Context, query string, args ...any) ([]model.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	out := make([]model.BookingDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// List returns bookings with customer and seat details, newest first.  A
// non-empty status restricts the result to that status.
func (r *BookingRepo) List(ctx context.Context, status model.BookingStatus) ([]model.BookingDetail, error) {
	if status != "" {
		return r.listDetails(ctx, detailSelect+` WHERE b.status = ? ORDER BY b.created_at DESC, b.id DESC`, string(status))
	}
	return r.listDetails(ctx, detailSelect+` ORDER BY b.created_at DESC, b.id DESC`)
}

// GetDetail returns one booking with customer and seat details or
// ErrNotFound.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := scanDetail(r.db.QueryRowContext(ctx, detailSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

// ListExpiringOn returns the active bookings whose expiry date is day.
// The expiry rule lives in Go, so the query matches on the start date each
// period implies.
func (r *BookingRepo) ListExpiringOn(ctx context.Context, day time.Time) ([]model.BookingDetail, error) {
	half, month := startsExpiringOn(day)
	return r.listDetails(ctx, detailSelect+`
		WHERE b.status = ?
		  AND ((b.subscription_period = ? AND b.start_date = ?) OR (b.subscription_period = ? AND b.start_date = ?))
		ORDER BY b.id`,
		string(model.StatusActive),
		string(model.HalfMonth), half.Format(model.DateLayout),
		string(model.OneMonth), month.Format(model.DateLayout))
}

// CompleteExpired marks active bookings whose expiry date is before day
// as completed and returns how many rows changed.
func (r *BookingRepo) CompleteExpired(ctx context.Context, day time.Time) (int64, error) {
	half, month := startsExpiringOn(day)
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?
		 WHERE status = ?
		   AND ((subscription_period = ? AND start_date < ?) OR (subscription_period = ? AND start_date < ?))`,
		string(model.StatusCompleted), string(model.StatusActive),
		string(model.HalfMonth), half.Format(model.DateLayout),
		string(model.OneMonth), month.Format(model.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("complete expired: %w", err)
	}
	return res.RowsAffected()
}

// startsExpiringOn returns the start dates whose half-month and one-month
// subscriptions expire on day.
func startsExpiringOn(day time.Time) (half, month time.Time) {
	d := availability.Day(day)
	return d.AddDate(0, 0, -availability.PeriodDays(model.HalfMonth)),
		d.AddDate(0, 0, -availability.PeriodDays(model.OneMonth))
}

// UpdateStatus sets the lifecycle status of a booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	return r.updateColumn(ctx, id, `UPDATE bookings SET status = ? WHERE id = ?`, string(status))
}

// UpdatePaymentStatus sets the payment status of a booking.
func (r *BookingRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	return r.updateColumn(ctx, id, `UPDATE bookings SET payment_status = ? WHERE id = ?`, string(status))
}

// AssignSeat writes seatID onto a booking.
func (r *BookingRepo) AssignSeat(ctx context.Context, id, seatID uint64) error {
	return r.updateColumn(ctx, id, `UPDATE bookings SET seat_id = ? WHERE id = ?`, seatID)
}

func (r *BookingRepo) updateColumn(ctx context.Context, id uint64, q string, value any) error {
	res, err := r.db.ExecContext(ctx, q, value, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows also means "value unchanged"; tell that apart from a
	// missing booking.
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
