// Package client talks to the booking service over HTTP and classifies each
// answer into a Result variant.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

const (
	endpointAuth    = "/auth"
	endpointBooking = "/booking"
)

// Credentials are the body of POST /auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Headers selects the negotiation headers and auth cookie of one request.
// Empty fields are not sent.
type Headers struct {
	ContentType string
	Accept      string
	Token       string
}

// HeadersFor returns matching Content-Type and Accept headers for format.
func HeadersFor(format booking.Format) Headers {
	return Headers{ContentType: format.ContentType(), Accept: format.Accept()}
}

// WithToken returns a copy of h carrying the auth cookie.
func (h Headers) WithToken(token string) Headers {
	h.Token = token
	return h
}

// BookerClient is an HTTP client for the booking service.
type BookerClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// Option configures a BookerClient.
type Option func(*BookerClient)

// WithRateLimit caps the request rate sent to the service. A non-positive
// rate leaves the client unthrottled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *BookerClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// New creates a BookerClient rooted at baseURL. A nil httpClient gets a
// 15-second timeout.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger, opts ...Option) (*BookerClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &BookerClient{baseURL: u, http: httpClient, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Authenticate calls POST /auth with a structured body.
func (c *BookerClient) Authenticate(ctx context.Context, creds Credentials, h Headers) (Result, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: endpointAuth,
		path:     endpointAuth,
		body:     body,
		headers:  h,
	})
}

// Token authenticates and returns the issued token. Credential rejection is
// reported as an error.
func (c *BookerClient) Token(ctx context.Context, creds Credentials) (string, error) {
	res, err := c.Authenticate(ctx, creds, Headers{ContentType: booking.MediaJSON})
	if err != nil {
		return "", err
	}
	return TokenFrom(res)
}

// CreateBooking calls POST /booking with an arbitrary body and headers.
func (c *BookerClient) CreateBooking(ctx context.Context, body []byte, h Headers) (Result, error) {
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: endpointBooking,
		path:     endpointBooking,
		body:     body,
		headers:  h,
	})
}

// ListBookings calls GET /booking with the non-empty filter fields as query parameters.
func (c *BookerClient) ListBookings(ctx context.Context, filter booking.Filter) (Result, error) {
	q := url.Values{}
	for key, value := range map[string]string{
		booking.FieldFirstName: filter.FirstName,
		booking.FieldLastName:  filter.LastName,
		booking.FieldCheckIn:   filter.CheckIn,
		booking.FieldCheckOut:  filter.CheckOut,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: endpointBooking,
		path:     endpointBooking,
		query:    q,
		headers:  Headers{ContentType: booking.MediaJSON},
	})
}

// GetBooking calls GET /booking/{id}.
func (c *BookerClient) GetBooking(ctx context.Context, id booking.BookingID, h Headers) (Result, error) {
	return c.GetBookingRaw(ctx, strconv.FormatInt(int64(id), 10), h)
}

// GetBookingRaw calls GET /booking/{rawID} with rawID written to the request
// line verbatim, so malformed ids such as "%s" reach the service unescaped.
func (c *BookerClient) GetBookingRaw(ctx context.Context, rawID string, h Headers) (Result, error) {
	return c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: endpointBooking,
		path:     endpointBooking + "/" + rawID,
		opaque:   true,
		headers:  h,
	})
}

// UpdateBooking calls PUT /booking/{id}. h.Token is sent as the token cookie.
func (c *BookerClient) UpdateBooking(ctx context.Context, id booking.BookingID, body []byte, h Headers) (Result, error) {
	return c.do(ctx, request{
		method:   http.MethodPut,
		endpoint: endpointBooking,
		path:     endpointBooking + "/" + strconv.FormatInt(int64(id), 10),
		body:     body,
		headers:  h,
	})
}

type request struct {
	method   string
	endpoint string
	path     string
	opaque   bool
	query    url.Values
	body     []byte
	headers  Headers
}

func (c *BookerClient) do(ctx context.Context, r request) (Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
		}
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + r.path
	u.RawQuery = r.query.Encode()
	target := u.String()
	if r.opaque {
		// The verbatim path may not survive URL parsing; build from the base
		// URL and set the request line afterwards.
		target = c.baseURL.String()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", r.method, r.path, err)
	}
	if r.opaque {
		req.URL.Opaque = c.baseURL.EscapedPath() + r.path
	}
	if r.headers.ContentType != "" {
		req.Header.Set("Content-Type", r.headers.ContentType)
	}
	if r.headers.Accept != "" {
		req.Header.Set("Accept", r.headers.Accept)
	}
	if r.headers.Token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: r.headers.Token})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("booking service request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", r.method, r.path, err)
	}

	requested, ok := booking.FormatFromMediaType(r.headers.Accept)
	if !ok {
		requested = booking.Structured
	}
	result := classify(r.endpoint, resp.StatusCode, resp.Header, respBody, requested)

	c.logger.Debug("booking service exchange",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.String("result", Kind(result)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// ErrNoToken is returned by TokenFrom when the answer carries no token.
var ErrNoToken = errors.New("response carries no token")

// TokenFrom extracts the token of a successful authentication.
func TokenFrom(res Result) (string, error) {
	switch r := res.(type) {
	case *Success:
		var payload struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(r.Body, &payload); err != nil {
			return "", fmt.Errorf("decoding auth response: %w", err)
		}
		if payload.Token == "" {
			return "", ErrNoToken
		}
		return payload.Token, nil
	case *AuthFailure:
		return "", fmt.Errorf("authentication rejected: %s", r.Reason)
	default:
		return "", fmt.Errorf("authentication failed with status %d: %w", res.StatusCode(), ErrNoToken)
	}
}
