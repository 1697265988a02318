package booking

import (
	"encoding/xml"
	"fmt"
	"time"
)

// DateLayout is the wire layout of stay dates. There is no timezone component.
const DateLayout = "2006-01-02"

// StayLength is the distance between check-in and check-out of a generated fixture.
const StayLength = 7 * 24 * time.Hour

// BookingID is the identifier assigned by the booking service on creation.
type BookingID int64

// StayDates holds the check-in and check-out dates as YYYY-MM-DD strings.
type StayDates struct {
	CheckIn  string `json:"checkin" xml:"checkin" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkout" xml:"checkout" validate:"required,datetime=2006-01-02"`
}

// NewStayDates builds the stay window starting on the calendar day of checkIn.
func NewStayDates(checkIn time.Time, length time.Duration) StayDates {
	day := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	return StayDates{
		CheckIn:  day.Format(DateLayout),
		CheckOut: day.AddDate(0, 0, int(length/(24*time.Hour))).Format(DateLayout),
	}
}

// Validate checks that both dates parse and check-in is strictly before check-out.
func (d StayDates) Validate() error {
	in, err := time.Parse(DateLayout, d.CheckIn)
	if err != nil {
		return NewSchemaMismatchError("bookingdates.checkin", fmt.Sprintf("not a %s date: %q", DateLayout, d.CheckIn))
	}
	out, err := time.Parse(DateLayout, d.CheckOut)
	if err != nil {
		return NewSchemaMismatchError("bookingdates.checkout", fmt.Sprintf("not a %s date: %q", DateLayout, d.CheckOut))
	}
	if !in.Before(out) {
		return NewSchemaMismatchError("bookingdates", fmt.Sprintf("checkin %s is not before checkout %s", d.CheckIn, d.CheckOut))
	}
	return nil
}

// Record is a booking independent of its wire representation.
type Record struct {
	XMLName         xml.Name  `json:"-" xml:"booking"`
	FirstName       string    `json:"firstname" xml:"firstname" validate:"required"`
	LastName        string    `json:"lastname" xml:"lastname" validate:"required"`
	TotalPrice      int64     `json:"totalprice" xml:"totalprice" validate:"gte=0"`
	DepositPaid     bool      `json:"depositpaid" xml:"depositpaid"`
	BookingDates    StayDates `json:"bookingdates" xml:"bookingdates" validate:"required"`
	AdditionalNeeds string    `json:"additionalneeds,omitempty" xml:"additionalneeds,omitempty"`
}

// Canonical returns the record as a canonical field mapping.
func (r Record) Canonical() Canonical {
	c := Canonical{
		FieldFirstName:   r.FirstName,
		FieldLastName:    r.LastName,
		FieldTotalPrice:  r.TotalPrice,
		FieldDepositPaid: r.DepositPaid,
		FieldBookingDates: map[string]any{
			FieldCheckIn:  r.BookingDates.CheckIn,
			FieldCheckOut: r.BookingDates.CheckOut,
		},
	}
	if r.AdditionalNeeds != "" {
		c[FieldAdditionalNeeds] = r.AdditionalNeeds
	}
	return c
}

// Created is the service's answer to a successful creation.
type Created struct {
	XMLName   xml.Name  `json:"-" xml:"created-booking"`
	BookingID BookingID `json:"bookingid" xml:"bookingid"`
	Booking   Record    `json:"booking" xml:"booking"`
}

// Summary is one element of the booking listing.
type Summary struct {
	BookingID BookingID `json:"bookingid"`
}
