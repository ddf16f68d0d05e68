package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
)

type CustomerStore interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
	Create(ctx context.Context, info model.CustomerInfo) (*model.Customer, error)
	Update(ctx context.Context, id uint64, info model.CustomerInfo) (*model.Customer, error)
	Delete(ctx context.Context, id uint64) error
}

type SeatStore interface {
	List(ctx context.Context) ([]model.Seat, error)
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	Create(ctx context.Context, s *model.Seat) error
	Update(ctx context.Context, s *model.Seat) error
	Delete(ctx context.Context, id uint64) error
}

type BookingAdminStore interface {
	List(ctx context.Context, status model.BookingStatus) ([]model.BookingDetail, error)
	Delete(ctx context.Context, id uint64) error
}

type ExpenseStore interface {
	List(ctx context.Context) ([]model.Expense, error)
	Create(ctx context.Context, amount decimal.Decimal, description, adminName string) (*model.Expense, error)
	Update(ctx context.Context, id uint64, amount decimal.Decimal, description string) (*model.Expense, error)
	Delete(ctx context.Context, id uint64) error
}

type TableCleaner interface {
	Clean(ctx context.Context, t repository.Table) (int64, error)
}

type StatsSource interface {
	Summary(ctx context.Context) (*model.Stats, error)
}

// SeatInput is the admin form for a seat.  A zero ColumnNumber picks the
// default column for the seat number; a nil IsActive means active.
type SeatInput struct {
	SeatNumber   uint32 `json:"seat_number"`
	ColumnNumber uint32 `json:"column_number"`
	IsActive     *bool  `json:"is_active"`
}

// ExpenseInput is the admin form for an expense.
type ExpenseInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AdminStores groups the repositories behind AdminService.
type AdminStores struct {
	Customers CustomerStore
	Seats     SeatStore
	Bookings  BookingAdminStore
	Expenses  ExpenseStore
	Cleaner   TableCleaner
	Stats     StatsSource
}

// AdminService implements the dashboard: CRUD with referential guards,
// bulk cleanup and the summary figures.
type AdminService struct {
	st  AdminStores
	log *logrus.Logger
}

func NewAdminService(st AdminStores, log *logrus.Logger) *AdminService {
	return &AdminService{st: st, log: log}
}

func adminErr(err error, resource string, key any) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Resource: resource, Key: key}
	case errors.Is(err, repository.ErrReferenced):
		return &ConflictError{Reason: resource + " is referenced by existing bookings"}
	case errors.Is(err, repository.ErrConflict):
		return &ConflictError{Reason: resource + " already exists"}
	}
	return err
}

// Customers

func (s *AdminService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.st.Customers.List(ctx)
}

func (s *AdminService) GetCustomer(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := s.st.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, adminErr(err, "customer", id)
	}
	return c, nil
}

func (s *AdminService) CreateCustomer(ctx context.Context, in model.CustomerInfo) (*model.Customer, error) {
	in, err := ValidateCustomer(in)
	if err != nil {
		return nil, err
	}
	c, err := s.st.Customers.Create(ctx, in)
	if err != nil {
		return nil, adminErr(err, "customer", in.Email)
	}
	return c, nil
}

func (s *AdminService) UpdateCustomer(ctx context.Context, id uint64, in model.CustomerInfo) (*model.Customer, error) {
	in, err := ValidateCustomer(in)
	if err != nil {
		return nil, err
	}
	c, err := s.st.Customers.Update(ctx, id, in)
	if err != nil {
		return nil, adminErr(err, "customer", id)
	}
	return c, nil
}

// DeleteCustomer fails with a ConflictError while bookings reference the
// customer.
func (s *AdminService) DeleteCustomer(ctx context.Context, id uint64) error {
	return adminErr(s.st.Customers.Delete(ctx, id), "customer", id)
}

// Seats

func (s *AdminService) ListSeats(ctx context.Context) ([]model.Seat, error) {
	return s.st.Seats.List(ctx)
}

func seatFromInput(in SeatInput) (*model.Seat, error) {
	if in.SeatNumber == 0 {
		return nil, invalid("seat_number", "must be a positive number")
	}
	seat := &model.Seat{SeatNumber: in.SeatNumber, ColumnNumber: in.ColumnNumber, IsActive: true}
	if seat.ColumnNumber == 0 {
		seat.ColumnNumber = repository.DefaultColumnFor(in.SeatNumber)
	}
	if in.IsActive != nil {
		seat.IsActive = *in.IsActive
	}
	return seat, nil
}

func (s *AdminService) CreateSeat(ctx context.Context, in SeatInput) (*model.Seat, error) {
	seat, err := seatFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.st.Seats.Create(ctx, seat); err != nil {
		return nil, adminErr(err, "seat", in.SeatNumber)
	}
	return seat, nil
}

// UpdateSeat replaces the seat's number and column.  The active flag only
// changes when the input carries one.
func (s *AdminService) UpdateSeat(ctx context.Context, id uint64, in SeatInput) (*model.Seat, error) {
	seat, err := seatFromInput(in)
	if err != nil {
		return nil, err
	}
	if in.IsActive == nil {
		cur, err := s.st.Seats.GetByID(ctx, id)
		if err != nil {
			return nil, adminErr(err, "seat", id)
		}
		seat.IsActive = cur.IsActive
	}
	seat.ID = id
	if err := s.st.Seats.Update(ctx, seat); err != nil {
		return nil, adminErr(err, "seat", id)
	}
	return seat, nil
}

// DeleteSeat fails with a ConflictError while bookings reference the seat.
func (s *AdminService) DeleteSeat(ctx context.Context, id uint64) error {
	return adminErr(s.st.Seats.Delete(ctx, id), "seat", id)
}

// Bookings

// ListBookings returns bookings, optionally restricted to one status.
func (s *AdminService) ListBookings(ctx context.Context, rawStatus string) ([]model.BookingDetail, error) {
	var status model.BookingStatus
	if strings.TrimSpace(rawStatus) != "" {
		st, err := model.ParseBookingStatus(rawStatus)
		if err != nil {
			return nil, invalid("status", "must be active, cancelled or completed")
		}
		status = st
	}
	return s.st.Bookings.List(ctx, status)
}

func (s *AdminService) DeleteBooking(ctx context.Context, id uint64) error {
	return adminErr(s.st.Bookings.Delete(ctx, id), "booking", id)
}

// Expenses

func validateExpense(in ExpenseInput) (ExpenseInput, error) {
	verr := &ValidationError{}
	in.Description = strings.TrimSpace(in.Description)
	if !in.Amount.IsPositive() {
		verr.Add("amount", "must be greater than zero")
	}
	if in.Description == "" {
		verr.Add("description", "is required")
	}
	return in, verr.OrNil()
}

func (s *AdminService) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	return s.st.Expenses.List(ctx)
}

func (s *AdminService) CreateExpense(ctx context.Context, adminName string, in ExpenseInput) (*model.Expense, error) {
	in, err := validateExpense(in)
	if err != nil {
		return nil, err
	}
	return s.st.Expenses.Create(ctx, in.Amount.Round(2), in.Description, adminName)
}

func (s *AdminService) UpdateExpense(ctx context.Context, id uint64, in ExpenseInput) (*model.Expense, error) {
	in, err := validateExpense(in)
	if err != nil {
		return nil, err
	}
	e, err := s.st.Expenses.Update(ctx, id, in.Amount.Round(2), in.Description)
	if err != nil {
		return nil, adminErr(err, "expense", id)
	}
	return e, nil
}

func (s *AdminService) DeleteExpense(ctx context.Context, id uint64) error {
	return adminErr(s.st.Expenses.Delete(ctx, id), "expense", id)
}

// Cleanup

// Clean wipes one table and resets its counter.  Customers and seats
// cannot be wiped while bookings reference them.
func (s *AdminService) Clean(ctx context.Context, adminName string, table repository.Table) (int64, error) {
	n, err := s.st.Cleaner.Clean(ctx, table)
	if err != nil {
		return 0, adminErr(err, string(table), "all")
	}
	s.log.WithFields(logrus.Fields{"table": table, "deleted": n, "admin": adminName}).Warn("table cleaned")
	return n, nil
}

func (s *AdminService) CleanBookings(ctx context.Context, admin string) (int64, error) {
	return s.Clean(ctx, admin, repository.TableBookings)
}

func (s *AdminService) CleanCustomers(ctx context.Context, admin string) (int64, error) {
	return s.Clean(ctx, admin, repository.TableCustomers)
}

func (s *AdminService) CleanSeats(ctx context.Context, admin string) (int64, error) {
	return s.Clean(ctx, admin, repository.TableSeats)
}

func (s *AdminService) CleanExpenses(ctx context.Context, admin string) (int64, error) {
	return s.Clean(ctx, admin, repository.TableExpenses)
}

// Stats returns the dashboard summary.
func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.st.Stats.Summary(ctx)
}
