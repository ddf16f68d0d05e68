package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// ExpenseRepo stores admin bookkeeping entries.
type ExpenseRepo struct {
	db *sql.DB
}

// NewExpenseRepo constructs an ExpenseRepo.
func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

const expenseColumns = `id, amount, description, admin_name, created_at`

func scanExpense(s rowScanner) (*model.Expense, error) {
	var e model.Expense
	if err := s.Scan(&e.ID, &e.Amount, &e.Description, &e.AdminName, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all expenses, newest first.
func (r *ExpenseRepo) List(ctx context.Context) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	out := make([]model.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// GetByID returns one expense or ErrNotFound.
func (r *ExpenseRepo) GetByID(ctx context.Context, id uint64) (*model.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Create inserts an expense and returns the stored row.
func (r *ExpenseRepo) Create(ctx context.Context, amount decimal.Decimal, description, adminName string) (*model.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, description, admin_name) VALUES (?, ?, ?)`,
		amount, description, adminName)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites amount and description.
func (r *ExpenseRepo) Update(ctx context.Context, id uint64, amount decimal.Decimal, description string) (*model.Expense, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, description = ? WHERE id = ?`,
		amount, description, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an expense.
func (r *ExpenseRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Total sums every expense amount.
func (r *ExpenseRepo) Total(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(amount) FROM expenses`).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
