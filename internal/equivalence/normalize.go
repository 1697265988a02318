// Package equivalence normalizes booking payloads of either representation
// into a canonical mapping and compares them field by field.
package equivalence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

const (
	markupRootBooking = "booking"
	markupRootCreated = "created-booking"
	fieldBookingID    = "bookingid"
	fieldBooking      = "booking"
)

// Normalize decodes a bare booking payload and coerces it to canonical form.
func Normalize(body []byte, format booking.Format) (booking.Canonical, error) {
	doc, err := decode(body, format, markupRootBooking)
	if err != nil {
		return nil, err
	}
	return Canonicalize(doc)
}

// NormalizeCreated decodes the answer to a creation, which wraps the stored
// booking together with its assigned id.
func NormalizeCreated(body []byte, format booking.Format) (booking.BookingID, booking.Canonical, error) {
	doc, err := decode(body, format, markupRootCreated)
	if err != nil {
		return 0, nil, err
	}
	id, err := bookingID(doc[fieldBookingID])
	if err != nil {
		return 0, nil, err
	}
	inner, ok := collapse(doc[fieldBooking]).(map[string]any)
	if !ok {
		return 0, nil, booking.NewSchemaMismatchError(fieldBooking, "missing or not an object")
	}
	c, err := Canonicalize(inner)
	if err != nil {
		return 0, nil, err
	}
	return id, c, nil
}

// NormalizeResult normalizes the booking carried by a successful result.
// Any other variant is a precondition failure, never decoded as a booking.
func NormalizeResult(res client.Result) (booking.Canonical, error) {
	ok, err := successOf(res)
	if err != nil {
		return nil, err
	}
	return Normalize(ok.Body, ok.Format)
}

// NormalizeCreatedResult is NormalizeCreated for a classified result.
func NormalizeCreatedResult(res client.Result) (booking.BookingID, booking.Canonical, error) {
	ok, err := successOf(res)
	if err != nil {
		return 0, nil, err
	}
	return NormalizeCreated(ok.Body, ok.Format)
}

// BookingIDs decodes a structured booking listing.
func BookingIDs(res client.Result) ([]booking.BookingID, error) {
	ok, err := successOf(res)
	if err != nil {
		return nil, err
	}
	var items []booking.Summary
	if err := json.Unmarshal(ok.Body, &items); err != nil {
		return nil, booking.NewParseError(booking.Structured, err)
	}
	ids := make([]booking.BookingID, len(items))
	for i, item := range items {
		ids[i] = item.BookingID
	}
	return ids, nil
}

func successOf(res client.Result) (*client.Success, error) {
	if res == nil {
		return nil, booking.NewPreconditionError("missing", 0)
	}
	ok, isSuccess := res.(*client.Success)
	if !isSuccess {
		return nil, booking.NewPreconditionError(client.Kind(res), res.StatusCode())
	}
	return ok, nil
}

// decode turns body into a generic document. Markup must have the given root
// element, whose content is returned.
func decode(body []byte, format booking.Format, root string) (map[string]any, error) {
	switch format {
	case booking.Structured:
		var doc map[string]any
		if err := decodeJSON(body, &doc); err != nil {
			return nil, booking.NewParseError(format, err)
		}
		if doc == nil {
			return nil, booking.NewSchemaMismatchError("", "payload is not an object")
		}
		return doc, nil
	case booking.Markup:
		m, err := readMarkupDocument(body)
		if err != nil {
			return nil, booking.NewParseError(format, err)
		}
		content, ok := m[root]
		if !ok {
			return nil, booking.NewSchemaMismatchError(root, fmt.Sprintf("root element is not <%s>", root))
		}
		doc, ok := collapse(content).(map[string]any)
		if !ok {
			return nil, booking.NewSchemaMismatchError(root, "root element has no child elements")
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown booking format %v", format)
	}
}

// Canonicalize coerces a decoded document to canonical form using the
// booking field table. Fields outside the table are dropped. Applying it to
// an already canonical mapping returns an equal mapping.
func Canonicalize(doc map[string]any) (booking.Canonical, error) {
	out, err := canonicalizeFields(doc, booking.Fields, "")
	if err != nil {
		return nil, err
	}
	return booking.Canonical(out), nil
}

func canonicalizeFields(doc map[string]any, fields []booking.FieldSpec, prefix string) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		path := prefix + f.Name
		raw, present := doc[f.Name]
		if !present || raw == nil {
			if f.Required {
				return nil, booking.NewSchemaMismatchError(path, "required field is absent")
			}
			continue
		}
		v, err := coerce(collapse(raw), f, path)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

func coerce(v any, f booking.FieldSpec, path string) (any, error) {
	switch f.Kind {
	case booking.KindString:
		s, ok := text(v)
		if !ok {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("expected string, got %T", v))
		}
		return s, nil
	case booking.KindDate:
		s, ok := text(v)
		if !ok {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("expected date string, got %T", v))
		}
		if _, err := time.Parse(booking.DateLayout, s); err != nil {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("not a %s date: %q", booking.DateLayout, s))
		}
		return s, nil
	case booking.KindInteger:
		return integer(v, path)
	case booking.KindBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		s, ok := text(v)
		if !ok {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("expected boolean, got %T", v))
		}
		parsed, ok := parseBoolText(strings.TrimSpace(s))
		if !ok {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("not a boolean: %q", s))
		}
		return parsed, nil
	case booking.KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, booking.NewSchemaMismatchError(path, fmt.Sprintf("expected object, got %T", v))
		}
		return canonicalizeFields(m, f.Children, path+".")
	default:
		return nil, fmt.Errorf("field %s has unknown kind %d", path, f.Kind)
	}
}

func integer(v any, path string) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > float64(booking.MaxTotalPrice) {
			return 0, booking.NewSchemaMismatchError(path, fmt.Sprintf("not an integer: %v", n))
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, booking.NewSchemaMismatchError(path, fmt.Sprintf("not an integer: %s", n))
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, booking.NewSchemaMismatchError(path, fmt.Sprintf("not an integer: %q", n))
		}
		return i, nil
	default:
		if s, ok := text(v); ok {
			return integer(s, path)
		}
		return 0, booking.NewSchemaMismatchError(path, fmt.Sprintf("expected integer, got %T", v))
	}
}

func bookingID(v any) (booking.BookingID, error) {
	if v == nil {
		return 0, booking.NewSchemaMismatchError(fieldBookingID, "required field is absent")
	}
	id, err := integer(collapse(v), fieldBookingID)
	if err != nil {
		return 0, err
	}
	return booking.BookingID(id), nil
}

// decodeJSON decodes exactly one JSON value from payload, keeping numbers as
// json.Number. Anything but whitespace after the value is an error.
func decodeJSON(payload []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	switch _, err := dec.Token(); {
	case err == io.EOF:
		return nil
	case err != nil:
		return fmt.Errorf("after the JSON value: %w", err)
	default:
		return errors.New("unexpected content after the JSON value")
	}
}

// parseBoolText accepts the lexical forms the service writes, "true" and "false".
func parseBoolText(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// collapse reduces repeated sibling elements to the first one. The booking
// schema is flat, so markup never carries meaningful arrays.
func collapse(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return collapse(list[0])
	}
	return v
}

// text returns the character data of a leaf. Markup leaves decode as a map
// holding the text under "#text".
func text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case map[string]any:
		t, ok := s[textKey].(string)
		return t, ok
	default:
		return "", false
	}
}
