package main_test

import (
	"net/http"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/equivalence"
)

func (s *BookerSuite) TestGetBooking_Structured() {
	expected := s.generated()
	id, _ := s.create(expected, bookingDomain.Structured)

	res, err := s.client.GetBooking(s.ctx, id, client.HeadersFor(bookingDomain.Structured))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, res.StatusCode())
	s.NoError(equivalence.AssertSchemaValid(res.RawBody(), equivalence.BookingJSONSchema, bookingDomain.Structured))

	got, err := equivalence.NormalizeResult(res)
	s.Require().NoError(err)
	s.NoError(equivalence.AssertFieldEquivalence(expected, got))
}

func (s *BookerSuite) TestGetBooking_Markup() {
	expected := s.generated()
	id, _ := s.create(expected, bookingDomain.Markup)

	res, err := s.client.GetBooking(s.ctx, id, client.HeadersFor(bookingDomain.Markup))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, res.StatusCode())
	s.NoError(equivalence.AssertSchemaValid(res.RawBody(), equivalence.BookingMarkupSchema, bookingDomain.Markup))

	got, err := equivalence.NormalizeResult(res)
	s.Require().NoError(err)
	s.NoError(equivalence.AssertFieldEquivalence(expected, got))
}

func (s *BookerSuite) TestGetBooking_EqualsCreateResponse() {
	id, created := s.create(s.generated(), bookingDomain.Structured)

	for _, format := range []bookingDomain.Format{bookingDomain.Structured, bookingDomain.Markup} {
		res, err := s.client.GetBooking(s.ctx, id, client.HeadersFor(format))
		s.Require().NoError(err)

		got, err := equivalence.NormalizeResult(res)
		s.Require().NoError(err, format.String())
		s.NoError(equivalence.AssertEquivalent(created, got), format.String())
	}
}

func (s *BookerSuite) TestGetBooking_UnknownID() {
	res, err := s.client.GetBooking(s.ctx, 999999, client.HeadersFor(bookingDomain.Structured))
	s.Require().NoError(err)
	s.IsType(&client.NotFound{}, res)
	s.Equal(http.StatusNotFound, res.StatusCode())

	_, err = equivalence.NormalizeResult(res)
	var pre *bookingDomain.PreconditionError
	s.ErrorAs(err, &pre)
}

func (s *BookerSuite) TestGetBooking_MalformedID() {
	res, err := s.client.GetBookingRaw(s.ctx, "%s", client.HeadersFor(bookingDomain.Structured))
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, res.StatusCode())
}
