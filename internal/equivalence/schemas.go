package equivalence

// bookingJSONSchemaSource describes a single booking as returned by
// GET /booking/{id} and PUT /booking/{id}.
const bookingJSONSchemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Booking",
  "type": "object",
  "properties": {
    "firstname": {"type": "string"},
    "lastname": {"type": "string"},
    "totalprice": {"type": "number"},
    "depositpaid": {"type": "boolean"},
    "bookingdates": {
      "type": "object",
      "properties": {
        "checkin": {"type": "string"},
        "checkout": {"type": "string"}
      },
      "required": ["checkin", "checkout"]
    },
    "additionalneeds": {"type": "string"}
  },
  "required": ["firstname", "lastname", "totalprice", "depositpaid", "bookingdates"]
}`

// bookingListJSONSchemaSource describes GET /booking.
const bookingListJSONSchemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "BookingList",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "bookingid": {"type": "number"}
    },
    "required": ["bookingid"]
  }
}`

// createdJSONSchemaSource describes the answer to POST /booking.
const createdJSONSchemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CreatedBooking",
  "type": "object",
  "properties": {
    "bookingid": {"type": "integer"},
    "booking": {"type": "object"}
  },
  "required": ["bookingid", "booking"]
}`

var (
	// BookingJSONSchema validates a structured booking.
	BookingJSONSchema = MustCompileJSONSchema("booking", bookingJSONSchemaSource)
	// BookingListJSONSchema validates a structured booking listing.
	BookingListJSONSchema = MustCompileJSONSchema("booking-list", bookingListJSONSchemaSource)
	// CreatedJSONSchema validates a structured creation answer.
	CreatedJSONSchema = MustCompileJSONSchema("created-booking", createdJSONSchemaSource)
)

// bookingElements is the element sequence of a markup booking.
var bookingElements = []Element{
	{Name: "firstname", Type: LeafString},
	{Name: "lastname", Type: LeafString},
	{Name: "totalprice", Type: LeafInteger},
	{Name: "depositpaid", Type: LeafBoolean},
	{Name: "bookingdates", Children: []Element{
		{Name: "checkin", Type: LeafDate},
		{Name: "checkout", Type: LeafDate},
	}},
}

// BookingMarkupSchema validates a markup booking. It is strict: additional
// needs are not part of the sequence.
var BookingMarkupSchema = &MarkupSchema{Root: Element{Name: "booking", Children: bookingElements}}

// BookingMarkupSchemaWithNeeds also admits a trailing additionalneeds element.
var BookingMarkupSchemaWithNeeds = &MarkupSchema{Root: Element{
	Name:     "booking",
	Children: append(append([]Element{}, bookingElements...), Element{Name: "additionalneeds", Type: LeafString, Optional: true}),
}}
