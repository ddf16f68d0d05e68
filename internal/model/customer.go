package model

import "time"

// Customer is a person who has booked at least once or was added by the
// admin.  Email is unique.  A customer referenced by any booking cannot be
// deleted.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name as entered on the booking form.
//  Email     – unique contact address, matched exactly on repeat bookings.
//  Phone     – contact number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Customer struct {
	ID        uint64    `json:"id"`         // customers.id
	Name      string    `json:"name"`       // customers.name
	Email     string    `json:"email"`      // customers.email
	Phone     string    `json:"phone"`      // customers.phone
	CreatedAt time.Time `json:"created_at"` // customers.created_at
	UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}

// CustomerInfo is the contact block submitted with a booking or a payment
// order.  It carries no identity; the repository resolves it by email.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
