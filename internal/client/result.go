package client

import (
	"encoding/json"
	"net/http"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// Result is the classified outcome of one exchange with the booking service.
// It is one of Success, AuthFailure, ValidationError, NotFound, Forbidden or
// Unexpected.
type Result interface {
	// StatusCode returns the HTTP status the service answered with.
	StatusCode() int
	// RawBody returns the undecoded response body.
	RawBody() []byte
	isResult()
}

// Success is a 2xx answer carrying a payload in Format.
type Success struct {
	Status int
	Header http.Header
	Body   []byte
	Format booking.Format
}

// AuthFailure is the service's rejection of credentials. The service answers
// it with status 200 and a reason field instead of an error status.
type AuthFailure struct {
	Status int
	Reason string
	Body   []byte
}

// ValidationError is a rejected payload: 400 for a malformed request or a
// header and body format mismatch, 500 for missing required fields.
type ValidationError struct {
	Status int
	Body   []byte
}

// NotFound is a 404 answer.
type NotFound struct {
	Body []byte
}

// Forbidden is a 401 or 403 answer to a request lacking a valid token.
type Forbidden struct {
	Status int
	Body   []byte
}

// Unexpected is any other status.
type Unexpected struct {
	Status int
	Body   []byte
}

func (r *Success) StatusCode() int         { return r.Status }
func (r *AuthFailure) StatusCode() int     { return r.Status }
func (r *ValidationError) StatusCode() int { return r.Status }
func (r *NotFound) StatusCode() int        { return http.StatusNotFound }
func (r *Forbidden) StatusCode() int       { return r.Status }
func (r *Unexpected) StatusCode() int      { return r.Status }

func (r *Success) RawBody() []byte         { return r.Body }
func (r *AuthFailure) RawBody() []byte     { return r.Body }
func (r *ValidationError) RawBody() []byte { return r.Body }
func (r *NotFound) RawBody() []byte        { return r.Body }
func (r *Forbidden) RawBody() []byte       { return r.Body }
func (r *Unexpected) RawBody() []byte      { return r.Body }

func (*Success) isResult()         {}
func (*AuthFailure) isResult()     {}
func (*ValidationError) isResult() {}
func (*NotFound) isResult()        {}
func (*Forbidden) isResult()       {}
func (*Unexpected) isResult()      {}

// Kind names the variant of r.
func Kind(r Result) string {
	switch r.(type) {
	case *Success:
		return "success"
	case *AuthFailure:
		return "auth_failure"
	case *ValidationError:
		return "validation_error"
	case *NotFound:
		return "not_found"
	case *Forbidden:
		return "forbidden"
	default:
		return "unexpected"
	}
}

// classify resolves a raw answer into a Result. requested is the format the
// caller asked for and is used when the response does not declare one.
func classify(endpoint string, status int, header http.Header, body []byte, requested booking.Format) Result {
	switch {
	case status >= 200 && status < 300:
		if endpoint == endpointAuth {
			if reason, ok := authReason(body); ok {
				return &AuthFailure{Status: status, Reason: reason, Body: body}
			}
		}
		format, ok := booking.FormatFromMediaType(header.Get("Content-Type"))
		if !ok {
			format = requested
		}
		return &Success{Status: status, Header: header, Body: body, Format: format}
	case status == http.StatusBadRequest || status == http.StatusInternalServerError:
		return &ValidationError{Status: status, Body: body}
	case status == http.StatusNotFound:
		return &NotFound{Body: body}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Forbidden{Status: status, Body: body}
	default:
		return &Unexpected{Status: status, Body: body}
	}
}

// authReason extracts the reason of a 2xx auth answer without a token.
func authReason(body []byte) (string, bool) {
	var payload struct {
		Token  *string `json:"token"`
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	if payload.Token == nil && payload.Reason != nil {
		return *payload.Reason, true
	}
	return "", false
}
