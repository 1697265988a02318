package main_test

import (
	"net/http"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/equivalence"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/fixture"
)

func (s *BookerSuite) TestUpdateBooking() {
	schemas := map[bookingDomain.Format]equivalence.Schema{
		bookingDomain.Structured: equivalence.BookingJSONSchema,
		bookingDomain.Markup:     equivalence.BookingMarkupSchema,
	}

	for format, schema := range schemas {
		s.Run(format.String(), func() {
			id, _ := s.create(s.generated(), format)

			replacement := s.generated()
			body, err := fixture.Render(replacement, format)
			s.Require().NoError(err)

			res, err := s.client.UpdateBooking(s.ctx, id, body, client.HeadersFor(format).WithToken(s.token()))
			s.Require().NoError(err)
			s.Require().Equal(http.StatusOK, res.StatusCode(), string(res.RawBody()))
			s.NoError(equivalence.AssertSchemaValid(res.RawBody(), schema, format))

			updated, err := equivalence.NormalizeResult(res)
			s.Require().NoError(err)
			s.NoError(equivalence.AssertFieldEquivalence(replacement, updated))

			res, err = s.client.GetBooking(s.ctx, id, client.HeadersFor(bookingDomain.Structured))
			s.Require().NoError(err)
			read, err := equivalence.NormalizeResult(res)
			s.Require().NoError(err)
			s.NoError(equivalence.AssertFieldEquivalence(replacement, read))
		})
	}
}

func (s *BookerSuite) TestUpdateBooking_WithoutToken() {
	id, _ := s.create(s.generated(), bookingDomain.Structured)

	body, err := fixture.RenderStructured(s.generated())
	s.Require().NoError(err)

	res, err := s.client.UpdateBooking(s.ctx, id, body, client.HeadersFor(bookingDomain.Structured))
	s.Require().NoError(err)
	s.IsType(&client.Forbidden{}, res)
	s.Equal(http.StatusForbidden, res.StatusCode())
}
