package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// CustomerRepo provides CRUD operations for customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `id, name, email, phone, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s rowScanner) (*model.Customer, error) {
	var c model.Customer
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every customer, newest first.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	out := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetByID returns a customer or ErrNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// GetByEmail returns a customer by exact email or ErrNotFound.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = ?`, strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// Create inserts a customer.  A duplicate email yields ErrConflict.
func (r *CustomerRepo) Create(ctx context.Context, info model.CustomerInfo) (*model.Customer, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`,
		info.Name, info.Email, info.Phone)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites the contact fields of a customer.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, info model.CustomerInfo) (*model.Customer, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?`,
		info.Name, info.Email, info.Phone, id); err != nil {
		return nil, translate(err)
	}
	// MySQL reports zero affected rows when nothing changed, so existence
	// is decided by reading the row back.
	return r.GetByID(ctx, id)
}

// Delete removes a customer.  It fails with ErrReferenced while any booking
// points at the customer and ErrNotFound when the id is unknown.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE customer_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByEmailTx resolves a customer by exact email inside tx.  An existing
// customer gets the submitted name and phone; otherwise a new row is
// inserted.  It returns the customer ID.
func (r *CustomerRepo) UpsertByEmailTx(ctx context.Context, tx *sql.Tx, info model.CustomerInfo) (uint64, error) {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE email = ? FOR UPDATE`, info.Email).Scan(&id)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			`UPDATE customers SET name = ?, phone = ? WHERE id = ?`,
			info.Name, info.Phone, id); err != nil {
			return 0, fmt.Errorf("update customer: %w", err)
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`,
			info.Name, info.Email, info.Phone)
		if err != nil {
			return 0, fmt.Errorf("insert customer: %w", translate(err))
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		return uint64(newID), nil
	default:
		return 0, fmt.Errorf("lookup customer: %w", err)
	}
}
