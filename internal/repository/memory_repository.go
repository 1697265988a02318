package repository

import (
	"context"
	"sync"

	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// MemoryBookingRepository keeps bookings in process memory.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	nextID   bookingDomain.BookingID
	bookings map[bookingDomain.BookingID]bookingDomain.Record
	order    []bookingDomain.BookingID
}

// NewMemoryBookingRepository creates an empty repository. Ids start at 1.
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		nextID:   1,
		bookings: make(map[bookingDomain.BookingID]bookingDomain.Record),
	}
}

// FindByID retrieves a booking by its identifier.
func (r *MemoryBookingRepository) FindByID(_ context.Context, id bookingDomain.BookingID) (*bookingDomain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.bookings[id]
	if !ok {
		return nil, bookingDomain.ErrNotFound
	}
	return &rec, nil
}

// List returns the ids matching filter in creation order.
func (r *MemoryBookingRepository) List(_ context.Context, filter bookingDomain.Filter) ([]bookingDomain.BookingID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]bookingDomain.BookingID, 0, len(r.order))
	for _, id := range r.order {
		if filter.Matches(r.bookings[id]) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Save persists a new booking.
func (r *MemoryBookingRepository) Save(_ context.Context, record bookingDomain.Record) (bookingDomain.BookingID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.bookings[id] = record
	r.order = append(r.order, id)
	return id, nil
}

// Update replaces an existing booking.
func (r *MemoryBookingRepository) Update(_ context.Context, id bookingDomain.BookingID, record bookingDomain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return bookingDomain.ErrNotFound
	}
	r.bookings[id] = record
	return nil
}
