package equivalence

import (
	"errors"
	"fmt"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// AssertFieldEquivalence compares every canonical field of expected with
// actual. Dates are compared as formatted strings and totalprice by numeric
// value. additionalneeds is only compared when expected carries it. Every
// mismatch is reported as an *booking.AssertionFailure, joined together.
func AssertFieldEquivalence(expected booking.Record, actual booking.Canonical) error {
	if actual == nil {
		return booking.NewAssertionFailure("booking", expected, nil)
	}
	return compareFields(expected.Canonical(), actual, booking.Fields, "")
}

// AssertEquivalent compares two canonical bookings, typically the same
// booking read back in the two representations.
func AssertEquivalent(expected, actual booking.Canonical) error {
	record, err := expected.Record()
	if err != nil {
		return fmt.Errorf("expected booking is not canonical: %w", err)
	}
	return AssertFieldEquivalence(record, actual)
}

func compareFields(expected, actual map[string]any, fields []booking.FieldSpec, prefix string) error {
	var errs []error
	for _, f := range fields {
		path := prefix + f.Name
		want, wanted := expected[f.Name]
		got, present := actual[f.Name]
		if !wanted {
			continue
		}
		if !present {
			errs = append(errs, booking.NewAssertionFailure(path, want, nil))
			continue
		}
		switch f.Kind {
		case booking.KindObject:
			wantMap, _ := want.(map[string]any)
			gotMap, ok := got.(map[string]any)
			if !ok {
				errs = append(errs, booking.NewAssertionFailure(path, want, got))
				continue
			}
			if err := compareFields(wantMap, gotMap, f.Children, path+"."); err != nil {
				errs = append(errs, err)
			}
		case booking.KindInteger:
			w, werr := integer(want, path)
			g, gerr := integer(got, path)
			if werr != nil || gerr != nil || w != g {
				errs = append(errs, booking.NewAssertionFailure(path, want, got))
			}
		default:
			if want != got {
				errs = append(errs, booking.NewAssertionFailure(path, want, got))
			}
		}
	}
	return errors.Join(errs...)
}
