package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names one of the tables the admin may wipe.
type Table string

const (
	TableBookings  Table = "bookings"
	TableCustomers Table = "customers"
	TableSeats     Table = "seats"
	TableExpenses  Table = "expenses"
)

// cleanupPlan describes how a table is wiped: which tables must be locked
// and, for parents of bookings, how to detect remaining references.
type cleanupPlan struct {
	locks    string
	refCheck string
}

var cleanupPlans = map[Table]cleanupPlan{
	TableBookings:  {locks: "bookings WRITE"},
	TableCustomers: {locks: "customers WRITE, bookings READ", refCheck: "SELECT COUNT(*) FROM bookings"},
	TableSeats:     {locks: "seats WRITE, bookings READ", refCheck: "SELECT COUNT(*) FROM bookings WHERE seat_id IS NOT NULL"},
	TableExpenses:  {locks: "expenses WRITE"},
}

// CleanupRepo implements the destructive bulk wipes of the admin
// dashboard.
type CleanupRepo struct {
	db *sql.DB
}

// NewCleanupRepo constructs a CleanupRepo.
func NewCleanupRepo(db *sql.DB) *CleanupRepo { return &CleanupRepo{db: db} }

// Clean deletes every row of t and resets its AUTO_INCREMENT counter.
//
// The work runs on one dedicated connection holding LOCK TABLES, so
// booking transactions touching the same tables wait until the wipe is
// over.  Customers and seats cannot be wiped while bookings reference
// them (ErrReferenced).  It returns the number of deleted rows.
func (r *CleanupRepo) Clean(ctx context.Context, t Table) (int64, error) {
	plan, ok := cleanupPlans[t]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", t)
	}
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "LOCK TABLES "+plan.locks); err != nil {
		return 0, fmt.Errorf("lock %s: %w", t, err)
	}
	defer func() {
		// UNLOCK must run even when ctx is already cancelled.
		_, _ = conn.ExecContext(context.Background(), "UNLOCK TABLES")
	}()

	if plan.refCheck != "" {
		var refs int64
		if err := conn.QueryRowContext(ctx, plan.refCheck).Scan(&refs); err != nil {
			return 0, fmt.Errorf("check references: %w", err)
		}
		if refs > 0 {
			return 0, ErrReferenced
		}
	}
	res, err := conn.ExecContext(ctx, "DELETE FROM "+string(t))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", t, translate(err))
	}
	n, _ := res.RowsAffected()
	if _, err := conn.ExecContext(ctx, "ALTER TABLE "+string(t)+" AUTO_INCREMENT = 1"); err != nil {
		return n, fmt.Errorf("reset counter %s: %w", t, err)
	}
	return n, nil
}
