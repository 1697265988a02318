package booking

// Canonical field names, as they appear in both representations.
const (
	FieldFirstName       = "firstname"
	FieldLastName        = "lastname"
	FieldTotalPrice      = "totalprice"
	FieldDepositPaid     = "depositpaid"
	FieldBookingDates    = "bookingdates"
	FieldCheckIn         = "checkin"
	FieldCheckOut        = "checkout"
	FieldAdditionalNeeds = "additionalneeds"
)

// FieldKind is the semantic type a canonical field is coerced to.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInteger
	KindBoolean
	KindDate
	KindObject
)

// FieldSpec describes one field of the canonical booking.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	Children []FieldSpec
}

// Fields is the canonical booking field table, in wire element order.
var Fields = []FieldSpec{
	{Name: FieldFirstName, Kind: KindString, Required: true},
	{Name: FieldLastName, Kind: KindString, Required: true},
	{Name: FieldTotalPrice, Kind: KindInteger, Required: true},
	{Name: FieldDepositPaid, Kind: KindBoolean, Required: true},
	{Name: FieldBookingDates, Kind: KindObject, Required: true, Children: []FieldSpec{
		{Name: FieldCheckIn, Kind: KindDate, Required: true},
		{Name: FieldCheckOut, Kind: KindDate, Required: true},
	}},
	{Name: FieldAdditionalNeeds, Kind: KindString},
}

// Canonical is a uniform mapping of field name to value. String and date
// fields hold string, totalprice holds int64, depositpaid holds bool and
// bookingdates holds map[string]any with checkin and checkout.
type Canonical map[string]any

// Record converts a canonical mapping back into a Record. The mapping is
// expected to be well typed; mistyped values are reported as schema mismatches.
func (c Canonical) Record() (Record, error) {
	var r Record
	var ok bool

	if r.FirstName, ok = c[FieldFirstName].(string); !ok {
		return Record{}, NewSchemaMismatchError(FieldFirstName, "missing or not a string")
	}
	if r.LastName, ok = c[FieldLastName].(string); !ok {
		return Record{}, NewSchemaMismatchError(FieldLastName, "missing or not a string")
	}
	if r.TotalPrice, ok = c[FieldTotalPrice].(int64); !ok {
		return Record{}, NewSchemaMismatchError(FieldTotalPrice, "missing or not an integer")
	}
	if r.DepositPaid, ok = c[FieldDepositPaid].(bool); !ok {
		return Record{}, NewSchemaMismatchError(FieldDepositPaid, "missing or not a boolean")
	}
	dates, ok := c[FieldBookingDates].(map[string]any)
	if !ok {
		return Record{}, NewSchemaMismatchError(FieldBookingDates, "missing or not an object")
	}
	if r.BookingDates.CheckIn, ok = dates[FieldCheckIn].(string); !ok {
		return Record{}, NewSchemaMismatchError(FieldBookingDates+"."+FieldCheckIn, "missing or not a string")
	}
	if r.BookingDates.CheckOut, ok = dates[FieldCheckOut].(string); !ok {
		return Record{}, NewSchemaMismatchError(FieldBookingDates+"."+FieldCheckOut, "missing or not a string")
	}
	if needs, present := c[FieldAdditionalNeeds]; present {
		if r.AdditionalNeeds, ok = needs.(string); !ok {
			return Record{}, NewSchemaMismatchError(FieldAdditionalNeeds, "not a string")
		}
	}
	return r, nil
}

// WithoutOptional returns a copy of c with optional fields removed.
func (c Canonical) WithoutOptional() Canonical {
	out := make(Canonical, len(c))
	for _, f := range Fields {
		if v, ok := c[f.Name]; ok && f.Required {
			out[f.Name] = v
		}
	}
	return out
}
