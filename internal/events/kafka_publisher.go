package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// BookingEvent is the message written for every stored booking.
type BookingEvent struct {
	Type       string                  `json:"type"`
	Source     string                  `json:"source"`
	BookingID  bookingDomain.BookingID `json:"bookingid"`
	Booking    bookingDomain.Record    `json:"booking"`
	OccurredAt time.Time               `json:"occurred_at"`
}

// ParseBookingEvent decodes a message value.
func ParseBookingEvent(value []byte) (BookingEvent, error) {
	var evt BookingEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return BookingEvent{}, fmt.Errorf("failed to parse booking event: %w", err)
	}
	return evt, nil
}

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// BookingEventPublisher writes booking events to a Kafka topic, keyed by booking id.
type BookingEventPublisher struct {
	writer messageWriter
	source string
	logger *zap.Logger
}

// NewBookingEventPublisher creates a publisher writing to topic on brokers.
func NewBookingEventPublisher(brokers []string, topic string, logger *zap.Logger) *BookingEventPublisher {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newBookingEventPublisher(writer, logger)
}

func newBookingEventPublisher(writer messageWriter, logger *zap.Logger) *BookingEventPublisher {
	return &BookingEventPublisher{writer: writer, source: "booking-twin", logger: logger}
}

// PublishBookingEvent writes one event. It blocks until the broker acknowledges.
func (p *BookingEventPublisher) PublishBookingEvent(ctx context.Context, eventType string, id bookingDomain.BookingID, record bookingDomain.Record) error {
	value, err := json.Marshal(BookingEvent{
		Type:       eventType,
		Source:     p.source,
		BookingID:  id,
		Booking:    record,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode booking event: %w", err)
	}

	key := strconv.FormatInt(int64(id), 10)
	if err := p.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("failed to write booking event: %w", err)
	}

	p.logger.Debug("published booking event",
		zap.String("event_type", eventType),
		zap.String("booking_id", key),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *BookingEventPublisher) Close() error {
	return p.writer.Close()
}
