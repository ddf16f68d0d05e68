package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"fmt"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// DefaultSeatCount is the size of the seeded seat pool.  Seats 1..11 sit
// in column 1 and 12..22 in column 2.
const DefaultSeatCount = 22

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, seat_number, column_number, is_active, created_at`

func scanSeat(s rowScanner) (*model.Seat, error) {
	var seat model.Seat
	if err := s.Scan(&seat.ID, &seat.SeatNumber, &seat.ColumnNumber, &seat.IsActive, &seat.CreatedAt); err != nil {
		return nil, err
	}
	return &seat, nil
}

// List retrieves all seats ordered by seat number.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+seatColumns+` FROM seats ORDER BY seat_number`)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()
	result := make([]model.Seat, 0, DefaultSeatCount)
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	s, err := scanSeat(r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// GetByNumber retrieves a seat by its painted number.  A missing seat
// yields *SeatNotFoundError.
func (r *SeatRepo) GetByNumber(ctx context.Context, number uint32) (*model.Seat, error) {
	s, err := scanSeat(r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE seat_number = ?`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &SeatNotFoundError{SeatNumber: number}
	}
	return s, err
}

// LockByNumberTx loads a seat with SELECT ... FOR UPDATE so that concurrent
// reservations of the same seat queue behind tx.
func (r *SeatRepo) LockByNumberTx(ctx context.Context, tx *sql.Tx, number uint32) (*model.Seat, error) {
	s, err := scanSeat(tx.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE seat_number = ? FOR UPDATE`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &SeatNotFoundError{SeatNumber: number}
	}
	return s, err
}

// Create inserts a single seat record.  A duplicate seat number yields
// ErrConflict.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO seats (seat_number, column_number, is_active) VALUES (?, ?, ?)`,
		s.SeatNumber, s.ColumnNumber, s.IsActive)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// Update changes seat_number, column_number and is_active.
func (r *SeatRepo) Update(ctx context.Context, s *model.Seat) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE seats SET seat_number = ?, column_number = ?, is_active = ? WHERE id = ?`,
		s.SeatNumber, s.ColumnNumber, s.IsActive, s.ID); err != nil {
		return translate(err)
	}
	updated, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *updated
	return nil
}

// Delete removes a seat.  Seats referenced by any booking cannot be
// deleted (ErrReferenced).
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE seat_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedDefault inserts the default seat pool.  Existing seat numbers are
// left untouched, so calling it on every start-up is safe.
func (r *SeatRepo) SeedDefault(ctx context.Context) error {
	query := `INSERT IGNORE INTO seats (seat_number, column_number, is_active) VALUES `
	args := make([]interface{}, 0, DefaultSeatCount*2)
	for n := 1; n <= DefaultSeatCount; n++ {
		if n > 1 {
			query += ","
		}
		query += "(?, ?, 1)"
		args = append(args, n, DefaultColumnFor(uint32(n)))
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// DefaultColumnFor returns the column of a seat in the default layout.
func DefaultColumnFor(number uint32) uint32 {
	if number <= DefaultSeatCount/2 {
		return 1
	}
	return 2
}
