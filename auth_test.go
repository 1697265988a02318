package main_test

import (
	"net/http"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

func (s *BookerSuite) TestAuth_ValidCredentials() {
	res, err := s.client.Authenticate(s.ctx, s.creds, client.Headers{ContentType: bookingDomain.MediaJSON})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.StatusCode())

	token, err := client.TokenFrom(res)
	s.Require().NoError(err)
	s.Greater(len(token), 1)
}

func (s *BookerSuite) TestAuth_BadCredentialsAnswer200WithReason() {
	creds := client.Credentials{Username: s.creds.Username + "1", Password: s.creds.Password}

	res, err := s.client.Authenticate(s.ctx, creds, client.Headers{ContentType: bookingDomain.MediaJSON})
	s.Require().NoError(err)

	failure, ok := res.(*client.AuthFailure)
	s.Require().True(ok, "got %s", client.Kind(res))
	s.Equal(http.StatusOK, failure.StatusCode())
	s.Equal("Bad credentials", failure.Reason)
}

func (s *BookerSuite) TestAuth_UnsupportedContentType() {
	res, err := s.client.Authenticate(s.ctx, s.creds, client.Headers{ContentType: bookingDomain.MediaTextXML})
	s.Require().NoError(err)

	s.IsType(&client.ValidationError{}, res)
	s.Equal(http.StatusBadRequest, res.StatusCode())
}
