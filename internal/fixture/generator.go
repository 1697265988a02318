// Package fixture produces randomized, valid booking payloads in both wire
// representations.
package fixture

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math/rand/v2"
	"text/template"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// markupTemplate fixes the element order of a generated markup payload.
var markupTemplate = template.Must(template.New("booking").Funcs(template.FuncMap{
	"x": escape,
}).Parse(`<booking>
    <firstname>{{x .FirstName}}</firstname>
    <lastname>{{x .LastName}}</lastname>
    <totalprice>{{.TotalPrice}}</totalprice>
    <depositpaid>{{.DepositPaid}}</depositpaid>
    <bookingdates>
      <checkin>{{x .BookingDates.CheckIn}}</checkin>
      <checkout>{{x .BookingDates.CheckOut}}</checkout>
    </bookingdates>
</booking>`))

// Generator creates booking fixtures.
type Generator struct {
	faker   *gofakeit.Faker
	now     func() time.Time
	pricing booking.PricingStrategy
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generated names and prices reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.faker = gofakeit.New(seed) }
}

// WithFaker injects the randomness source.
func WithFaker(f *gofakeit.Faker) Option {
	return func(g *Generator) { g.faker = f }
}

// WithClock injects the clock used for stay dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithPricing replaces the default doubled price rule.
func WithPricing(p booking.PricingStrategy) Option {
	return func(g *Generator) { g.pricing = p }
}

// NewGenerator creates a Generator seeded randomly and reading the wall clock
// unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		faker:   gofakeit.New(rand.Uint64()),
		now:     time.Now,
		pricing: booking.NewDoubledPricingStrategy(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StayDates returns today's check-in and the check-out one week later.
func (g *Generator) StayDates() booking.StayDates {
	return booking.NewStayDates(g.now(), booking.StayLength)
}

// StructuredPayload generates a booking for the structured representation.
// Deposit is always paid and additional needs are left out.
func (g *Generator) StructuredPayload() (booking.Record, error) {
	first, last, price, err := g.draw()
	if err != nil {
		return booking.Record{}, err
	}
	r := booking.Record{
		FirstName:    first,
		LastName:     last,
		TotalPrice:   price,
		DepositPaid:  true,
		BookingDates: g.StayDates(),
	}
	if err := r.Validate(); err != nil {
		return booking.Record{}, fmt.Errorf("generated booking is invalid: %w", err)
	}
	return r, nil
}

// MarkupPayload generates a booking rendered directly as markup, in the
// element order firstname, lastname, totalprice, depositpaid, bookingdates.
func (g *Generator) MarkupPayload() (string, error) {
	first, last, price, err := g.draw()
	if err != nil {
		return "", err
	}
	r := booking.Record{
		FirstName:    first,
		LastName:     last,
		TotalPrice:   price,
		DepositPaid:  true,
		BookingDates: g.StayDates(),
	}
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("generated booking is invalid: %w", err)
	}
	var buf bytes.Buffer
	if err := markupTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render markup payload: %w", err)
	}
	return buf.String(), nil
}

// draw takes the random parts of a booking in a fixed order, so two
// generators sharing a seed produce the same values on either path.
func (g *Generator) draw() (string, string, int64, error) {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	price, err := g.pricing.Calculate(int64(g.faker.Number(0, int(booking.MaxPriceDraw))))
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to price fixture: %w", err)
	}
	return first, last, price, nil
}

func escape(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
