package main_test

import (
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

func (s *BookerSuite) TestListBookings_MatchesSchema() {
	id, _ := s.create(s.generated(), bookingDomain.Structured)

	s.Contains(s.listIDs(bookingDomain.Filter{}), id)
}

func (s *BookerSuite) TestListBookings_FilterByName() {
	r := s.generated()
	id, _ := s.create(r, bookingDomain.Structured)

	s.Contains(s.listIDs(bookingDomain.Filter{FirstName: r.FirstName, LastName: r.LastName}), id)
	s.NotContains(s.listIDs(bookingDomain.Filter{FirstName: r.FirstName + "-nobody"}), id)
}

func (s *BookerSuite) TestListBookings_FilterByDates() {
	r := s.generated()
	id, _ := s.create(r, bookingDomain.Structured)

	// Stays on or after the given dates match, so the listing contains the
	// booking without being limited to it.
	s.Contains(s.listIDs(bookingDomain.Filter{
		CheckIn:  r.BookingDates.CheckIn,
		CheckOut: r.BookingDates.CheckOut,
	}), id)
}
