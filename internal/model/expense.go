package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an admin bookkeeping entry.
type Expense struct {
	ID          uint64          `json:"id"`          // expenses.id
	Amount      decimal.Decimal `json:"amount"`      // expenses.amount
	Description string          `json:"description"` // expenses.description
	AdminName   string          `json:"admin_name"`  // expenses.admin_name
	CreatedAt   time.Time       `json:"created_at"`  // expenses.created_at
}

// Stats is the dashboard summary.
type Stats struct {
	Customers      int64           `json:"customers"`
	Seats          int64           `json:"seats"`
	ActiveBookings int64           `json:"active_bookings"`
	PendingSeats   int64           `json:"pending_seat_assignments"`
	Revenue        decimal.Decimal `json:"revenue"`
	Expenses       decimal.Decimal `json:"expenses"`
}
