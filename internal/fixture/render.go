package fixture

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// RenderStructured serializes r as a structured payload.
func RenderStructured(r booking.Record) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured booking: %w", err)
	}
	return b, nil
}

// RenderMarkup serializes r as a <booking> markup payload.
func RenderMarkup(r booking.Record) ([]byte, error) {
	b, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode markup booking: %w", err)
	}
	return b, nil
}

// Render serializes r in the requested representation.
func Render(r booking.Record, format booking.Format) ([]byte, error) {
	if format == booking.Markup {
		return RenderMarkup(r)
	}
	return RenderStructured(r)
}
