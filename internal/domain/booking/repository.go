package booking

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a booking id does not exist.
var ErrNotFound = errors.New("booking not found")

// Filter narrows a booking listing. Empty fields do not filter.
type Filter struct {
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	CheckIn   string `form:"checkin"`
	CheckOut  string `form:"checkout"`
}

// Matches reports whether r passes the filter. Names match exactly; checkin
// and checkout select stays starting (ending) on or after the given date.
func (f Filter) Matches(r Record) bool {
	if f.FirstName != "" && r.FirstName != f.FirstName {
		return false
	}
	if f.LastName != "" && r.LastName != f.LastName {
		return false
	}
	// YYYY-MM-DD compares correctly as a string.
	if f.CheckIn != "" && r.BookingDates.CheckIn < f.CheckIn {
		return false
	}
	if f.CheckOut != "" && r.BookingDates.CheckOut < f.CheckOut {
		return false
	}
	return true
}

// BookingRepository defines the persistence contract of the booking twin.
type BookingRepository interface {
	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id BookingID) (*Record, error)

	// List returns the ids of the bookings matching the filter, oldest first.
	List(ctx context.Context, filter Filter) ([]BookingID, error)

	// Save persists a new booking and returns its assigned id.
	Save(ctx context.Context, record Record) (BookingID, error)

	// Update replaces an existing booking.
	Update(ctx context.Context, id BookingID, record Record) error
}
