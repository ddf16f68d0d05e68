package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/iliyamo/studyroom-seat-booking/internal/availability"
	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
)

// memStore is an in-memory BookingStore and SeatLookup that applies the
// same availability rule as the MySQL repository.
type memStore struct {
	mu       sync.Mutex
	seats    []model.Seat
	bookings []model.Booking
	emails   map[uint64]string
}

func newMemStore(seatCount int) *memStore {
	s := &memStore{emails: map[uint64]string{}}
	for n := 1; n <= seatCount; n++ {
		s.seats = append(s.seats, model.Seat{ID: uint64(100 + n), SeatNumber: uint32(n), IsActive: true})
	}
	return s
}

func (m *memStore) seatByNumber(n uint32) (*model.Seat, error) {
	for i := range m.seats {
		if m.seats[i].SeatNumber == n {
			return &m.seats[i], nil
		}
	}
	return nil, &repository.SeatNotFoundError{SeatNumber: n}
}

func (m *memStore) newBooking(info model.CustomerInfo, seatID *uint64, d model.BookingDraft) model.Booking {
	b := model.Booking{
		ID:                 uint64(len(m.bookings) + 1),
		CustomerID:         1,
		SeatID:             seatID,
		StartDate:          d.StartDate,
		StartTime:          d.StartTime,
		DurationType:       d.DurationType,
		SubscriptionPeriod: d.SubscriptionPeriod,
		TotalAmount:        d.Amount,
		Status:             model.StatusActive,
		PaymentStatus:      model.PaymentPending,
	}
	m.bookings = append(m.bookings, b)
	m.emails[b.ID] = info.Email
	return b
}

func (m *memStore) CreateFourHour(_ context.Context, info model.CustomerInfo, d model.BookingDraft) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.newBooking(info, nil, d)
	return &b, nil
}

func (m *memStore) ReserveFullTime(_ context.Context, info model.CustomerInfo, d model.BookingDraft, numbers []uint32) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requested := availability.NewWindow(d.StartDate, d.SubscriptionPeriod)
	var ids []uint64
	for _, n := range slices.Sorted(slices.Values(numbers)) {
		seat, err := m.seatByNumber(n)
		if err != nil {
			return nil, err
		}
		if !seat.IsActive || !availability.IsAvailable(requested, m.windows(seat.ID, d.DurationType)) {
			return nil, &repository.SeatUnavailableError{SeatNumber: n}
		}
		ids = append(ids, seat.ID)
	}
	out := make([]model.Booking, 0, len(ids))
	for _, id := range ids {
		seatID := id
		out = append(out, m.newBooking(info, &seatID, d))
	}
	return out, nil
}

func (m *memStore) windows(seatID uint64, dt model.DurationType) []availability.Window {
	var out []availability.Window
	for _, b := range m.bookings {
		if b.SeatID != nil && *b.SeatID == seatID && b.DurationType == dt && b.Status == model.StatusActive {
			out = append(out, availability.NewWindow(b.StartDate, b.SubscriptionPeriod))
		}
	}
	return out
}

func (m *memStore) find(id uint64) (*model.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			return &m.bookings[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) GetDetail(_ context.Context, id uint64) (*model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.find(id)
	if err != nil {
		return nil, err
	}
	d := &model.BookingDetail{Booking: *b, CustomerEmail: m.emails[id]}
	if b.SeatID != nil {
		for _, s := range m.seats {
			if s.ID == *b.SeatID {
				n := s.SeatNumber
				d.SeatNumber = &n
			}
		}
	}
	return d, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint64, st model.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.find(id)
	if err != nil {
		return err
	}
	b.Status = st
	return nil
}

func (m *memStore) UpdatePaymentStatus(_ context.Context, id uint64, st model.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.find(id)
	if err != nil {
		return err
	}
	b.PaymentStatus = st
	return nil
}

func (m *memStore) AssignSeat(_ context.Context, id, seatID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.find(id)
	if err != nil {
		return err
	}
	b.SeatID = &seatID
	return nil
}

func (m *memStore) ActiveWindowsBySeat(_ context.Context, dt model.DurationType) (map[uint64][]availability.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[uint64][]availability.Window{}
	for _, s := range m.seats {
		if w := m.windows(s.ID, dt); len(w) > 0 {
			out[s.ID] = w
		}
	}
	return out, nil
}

func (m *memStore) List(context.Context) ([]model.Seat, error) { return m.seats, nil }

func (m *memStore) GetByNumber(_ context.Context, n uint32) (*model.Seat, error) {
	return m.seatByNumber(n)
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

var errBroker = errors.New("broker down")

// stalledPublisher never answers and returns only once ctx is done.
type stalledPublisher struct{ calls chan struct{} }

func (p *stalledPublisher) PublishBookingConfirmed(ctx context.Context, _ queue.BookingConfirmedEvent) error {
	p.calls <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}
