package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// Event types published for every stored booking.
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
)

// ErrIncompleteBooking is returned when a payload lacks a required field.
// The service answers it with status 500.
var ErrIncompleteBooking = errors.New("booking payload is incomplete")

// BookingPayload is a decoded request body. Pointer fields distinguish an
// absent field from a zero value.
type BookingPayload struct {
	FirstName       *string           `json:"firstname" xml:"firstname" binding:"required"`
	LastName        *string           `json:"lastname" xml:"lastname" binding:"required"`
	TotalPrice      *int64            `json:"totalprice" xml:"totalprice" binding:"required"`
	DepositPaid     *bool             `json:"depositpaid" xml:"depositpaid" binding:"required"`
	BookingDates    *StayDatesPayload `json:"bookingdates" xml:"bookingdates" binding:"required"`
	AdditionalNeeds *string           `json:"additionalneeds" xml:"additionalneeds"`
}

// StayDatesPayload is the decoded bookingdates object.
type StayDatesPayload struct {
	CheckIn  *string `json:"checkin" xml:"checkin" binding:"required"`
	CheckOut *string `json:"checkout" xml:"checkout" binding:"required"`
}

// Record converts the payload, reporting ErrIncompleteBooking when a
// required field is absent.
func (p BookingPayload) Record() (bookingDomain.Record, error) {
	if p.FirstName == nil || p.LastName == nil || p.TotalPrice == nil || p.DepositPaid == nil ||
		p.BookingDates == nil || p.BookingDates.CheckIn == nil || p.BookingDates.CheckOut == nil {
		return bookingDomain.Record{}, ErrIncompleteBooking
	}
	r := bookingDomain.Record{
		FirstName:   *p.FirstName,
		LastName:    *p.LastName,
		TotalPrice:  *p.TotalPrice,
		DepositPaid: *p.DepositPaid,
		BookingDates: bookingDomain.StayDates{
			CheckIn:  *p.BookingDates.CheckIn,
			CheckOut: *p.BookingDates.CheckOut,
		},
	}
	if p.AdditionalNeeds != nil {
		r.AdditionalNeeds = *p.AdditionalNeeds
	}
	return r, nil
}

// EventPublisher receives every stored booking.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, id bookingDomain.BookingID, record bookingDomain.Record) error
}

// NopPublisher drops events.
type NopPublisher struct{}

// PublishBookingEvent does nothing.
func (NopPublisher) PublishBookingEvent(context.Context, string, bookingDomain.BookingID, bookingDomain.Record) error {
	return nil
}

// BookingService is the application service of the booking twin.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService. A nil publisher drops events.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking stores a new booking.
func (s *BookingService) CreateBooking(ctx context.Context, payload BookingPayload) (*bookingDomain.Created, error) {
	record, err := payload.Record()
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Save(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishEvent(ctx, EventBookingCreated, id, record)

	return &bookingDomain.Created{BookingID: id, Booking: record}, nil
}

// ListBookings returns the ids of the bookings matching filter.
func (s *BookingService) ListBookings(ctx context.Context, filter bookingDomain.Filter) ([]bookingDomain.Summary, error) {
	ids, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	summaries := make([]bookingDomain.Summary, len(ids))
	for i, id := range ids {
		summaries[i] = bookingDomain.Summary{BookingID: id}
	}
	return summaries, nil
}

// GetBooking retrieves one booking.
func (s *BookingService) GetBooking(ctx context.Context, id bookingDomain.BookingID) (*bookingDomain.Record, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBooking replaces an existing booking.
func (s *BookingService) UpdateBooking(ctx context.Context, id bookingDomain.BookingID, payload BookingPayload) (*bookingDomain.Record, error) {
	record, err := payload.Record()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, record); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, EventBookingUpdated, id, record)

	return &record, nil
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, id bookingDomain.BookingID, record bookingDomain.Record) {
	if err := s.publisher.PublishBookingEvent(ctx, eventType, id, record); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("booking_id", strconv.FormatInt(int64(id), 10)),
			zap.Error(err),
		)
	}
}
