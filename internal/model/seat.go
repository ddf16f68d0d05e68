package model

import "time"

// Seat describes a physical desk in the study room.  The pool is seeded at
// start-up with 22 seats split over two columns.  SeatNumber is unique.
//
// Fields:
//  ID           – primary key identifier.
//  SeatNumber   – number painted on the desk.
//  ColumnNumber – column of the room layout (1 or 2).
//  IsActive     – whether the seat can be offered to customers.
//  CreatedAt    – creation timestamp.
type Seat struct {
	ID           uint64    `json:"id"`            // seats.id
	SeatNumber   uint32    `json:"seat_number"`   // seats.seat_number
	ColumnNumber uint32    `json:"column_number"` // seats.column_number
	IsActive     bool      `json:"is_active"`     // seats.is_active
	CreatedAt    time.Time `json:"created_at"`    // seats.created_at
}

// SeatAvailability is a seat together with whether it can take a new
// booking for a requested window.
type SeatAvailability struct {
	Seat
	Available bool `json:"available"`
}
