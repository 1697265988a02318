package booking

import (
	"fmt"
	"mime"
	"strings"
)

// Format is one of the two wire representations of a booking.
type Format int

const (
	// Structured is the JSON object encoding.
	Structured Format = iota
	// Markup is the XML element encoding.
	Markup
)

// Media types used by the booking service.
const (
	MediaJSON    = "application/json"
	MediaXML     = "application/xml"
	MediaTextXML = "text/xml"
)

// String returns the representation name.
func (f Format) String() string {
	switch f {
	case Structured:
		return "structured"
	case Markup:
		return "markup"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ContentType returns the request Content-Type the service expects for f.
func (f Format) ContentType() string {
	if f == Markup {
		return MediaTextXML
	}
	return MediaJSON
}

// Accept returns the Accept header value that asks the service for f.
func (f Format) Accept() string {
	if f == Markup {
		return MediaXML
	}
	return MediaJSON
}

// FormatFromMediaType resolves a Content-Type or Accept header value.
func FormatFromMediaType(header string) (Format, bool) {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		mt = strings.TrimSpace(strings.ToLower(header))
	}
	switch {
	case mt == MediaJSON || strings.HasSuffix(mt, "+json"):
		return Structured, true
	case mt == MediaXML || mt == MediaTextXML || strings.HasSuffix(mt, "+xml"):
		return Markup, true
	default:
		return Structured, false
	}
}
