package main_test

import (
	"net/http"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/equivalence"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/fixture"
)

const (
	jimBrownJSON   = "testdata/booking.json"
	jimBrownXML    = "testdata/booking.xml"
	sallyWithNeeds = "testdata/booking_with_needs.json"
)

func (s *BookerSuite) TestCreateBooking_Structured() {
	var expected bookingDomain.Record
	s.Require().NoError(fixture.LoadJSONFile(sallyWithNeeds, &expected))

	body, err := fixture.RenderStructured(expected)
	s.Require().NoError(err)

	res, err := s.client.CreateBooking(s.ctx, body, client.HeadersFor(bookingDomain.Structured))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, res.StatusCode())
	s.NoError(equivalence.AssertSchemaValid(res.RawBody(), equivalence.CreatedJSONSchema, bookingDomain.Structured))

	id, stored, err := equivalence.NormalizeCreatedResult(res)
	s.Require().NoError(err)
	s.Positive(int64(id))
	s.NoError(equivalence.AssertFieldEquivalence(expected, stored))
}

func (s *BookerSuite) TestCreateBooking_Markup() {
	payload, err := s.gen.MarkupPayload()
	s.Require().NoError(err)
	s.Require().NoError(equivalence.AssertSchemaValid([]byte(payload), equivalence.BookingMarkupSchema, bookingDomain.Markup))

	expected, err := equivalence.Normalize([]byte(payload), bookingDomain.Markup)
	s.Require().NoError(err)

	id, stored := s.createRaw([]byte(payload), bookingDomain.Markup)
	s.Positive(int64(id))
	s.NoError(equivalence.AssertEquivalent(expected, stored))
}

func (s *BookerSuite) TestCreateBooking_MarkupFromFile() {
	payload, err := fixture.LoadMarkupFile(jimBrownXML)
	s.Require().NoError(err)
	s.Require().NoError(equivalence.AssertSchemaValid([]byte(payload), equivalence.BookingMarkupSchemaWithNeeds, bookingDomain.Markup))

	expected, err := equivalence.Normalize([]byte(payload), bookingDomain.Markup)
	s.Require().NoError(err)

	_, stored := s.createRaw([]byte(payload), bookingDomain.Markup)
	s.NoError(equivalence.AssertEquivalent(expected, stored))
	s.Equal("Breakfast", stored[bookingDomain.FieldAdditionalNeeds])
}

func (s *BookerSuite) TestCreateBooking_RequiredFieldsOnly() {
	expected := s.generated()

	_, stored := s.create(expected, bookingDomain.Structured)
	s.NoError(equivalence.AssertFieldEquivalence(expected, stored))
	s.NotContains(stored, bookingDomain.FieldAdditionalNeeds)
}

func (s *BookerSuite) TestCreateBooking_FormatMismatch() {
	markup, err := fixture.LoadMarkupFile(jimBrownXML)
	s.Require().NoError(err)
	var jim bookingDomain.Record
	s.Require().NoError(fixture.LoadJSONFile(jimBrownJSON, &jim))
	structured, err := fixture.RenderStructured(jim)
	s.Require().NoError(err)

	s.Run("markup body with structured headers", func() {
		res, err := s.client.CreateBooking(s.ctx, []byte(markup), client.HeadersFor(bookingDomain.Structured))
		s.Require().NoError(err)
		s.Equal(http.StatusBadRequest, res.StatusCode())
		s.IsType(&client.ValidationError{}, res)
	})

	s.Run("structured body with markup headers", func() {
		res, err := s.client.CreateBooking(s.ctx, structured, client.HeadersFor(bookingDomain.Markup))
		s.Require().NoError(err)
		s.Equal(http.StatusBadRequest, res.StatusCode())
		s.IsType(&client.ValidationError{}, res)
	})
}

func (s *BookerSuite) TestCreateBooking_MissingRequiredField() {
	var jim bookingDomain.Record
	s.Require().NoError(fixture.LoadJSONFile(jimBrownJSON, &jim))

	for _, field := range []string{
		bookingDomain.FieldFirstName,
		bookingDomain.FieldLastName,
		bookingDomain.FieldTotalPrice,
		bookingDomain.FieldBookingDates,
	} {
		s.Run(field, func() {
			res, err := s.client.CreateBooking(s.ctx, withoutField(s.T(), jim, field), client.HeadersFor(bookingDomain.Structured))
			s.Require().NoError(err)
			s.Equal(http.StatusInternalServerError, res.StatusCode())

			_, _, err = equivalence.NormalizeCreatedResult(res)
			var pre *bookingDomain.PreconditionError
			s.ErrorAs(err, &pre)
		})
	}
}
