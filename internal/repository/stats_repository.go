package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// StatsRepo computes the dashboard summary.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Summary runs one aggregate query per figure.  Revenue counts paid
// bookings only.
func (r *StatsRepo) Summary(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	counts := []struct {
		dst  *int64
		q    string
		args []any
	}{
		{&s.Customers, `SELECT COUNT(*) FROM customers`, nil},
		{&s.Seats, `SELECT COUNT(*) FROM seats`, nil},
		{&s.ActiveBookings, `SELECT COUNT(*) FROM bookings WHERE status = ?`, []any{string(model.StatusActive)}},
		{&s.PendingSeats, `SELECT COUNT(*) FROM bookings WHERE status = ? AND seat_id IS NULL`, []any{string(model.StatusActive)}},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.q, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	var revenue, expenses decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx,
		`SELECT SUM(total_amount) FROM bookings WHERE payment_status = ?`, string(model.PaymentPaid)).Scan(&revenue); err != nil {
		return nil, fmt.Errorf("stats revenue: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(amount) FROM expenses`).Scan(&expenses); err != nil {
		return nil, fmt.Errorf("stats expenses: %w", err)
	}
	s.Revenue = revenue.Decimal
	s.Expenses = expenses.Decimal
	return &s, nil
}
