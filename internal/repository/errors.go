// Package repository defines error types that are reused across multiple
// repositories.  These values allow the service layer to distinguish
// between different failure scenarios.  ErrReferenced signals that a row
// cannot be removed while bookings point at it, while ErrConflict signals
// a uniqueness violation (e.g. a second customer with the same email).
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by primary key or unique key
// yields no row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update would violate a unique
// key.
var ErrConflict = errors.New("conflict")

// ErrReferenced is returned when a delete is blocked because bookings
// still reference the row.
var ErrReferenced = errors.New("referenced by bookings")

// SeatNotFoundError is returned when a requested seat number does not exist.
type SeatNotFoundError struct {
	SeatNumber uint32
}

func (e *SeatNotFoundError) Error() string {
	return fmt.Sprintf("seat %d not found", e.SeatNumber)
}

// SeatUnavailableError is returned when a seat already has an active
// booking of the same duration type overlapping the requested window.
type SeatUnavailableError struct {
	SeatNumber uint32
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat %d is not available for the selected dates", e.SeatNumber)
}

// MySQL server error numbers we translate.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps driver errors to the sentinels above.  Unknown errors
// are returned unchanged.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrConflict
		case mysqlRowIsReferenced:
			return ErrReferenced
		case mysqlNoReferencedRow:
			return ErrNotFound
		}
	}
	return err
}
