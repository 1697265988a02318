package booking

import (
	"fmt"
	"math"
)

// PricingStrategy turns a raw random draw into a fixture total price.
type PricingStrategy interface {
	// Calculate returns the total price for the given non-negative draw.
	Calculate(draw int64) (int64, error)
}

// DoubledPricingStrategy reproduces the price rule of earlier fixtures.
type DoubledPricingStrategy struct{}

// NewDoubledPricingStrategy creates a new DoubledPricingStrategy.
func NewDoubledPricingStrategy() *DoubledPricingStrategy {
	return &DoubledPricingStrategy{}
}

// Calculate doubles the draw.
//
// Pricing formula:
//   - draw must be non-negative
//   - total = draw * 2, so every generated price is even
//   - the result must still fit in an int64 and in a float64 mantissa, since
//     the structured representation carries numbers as JSON numbers
func (s *DoubledPricingStrategy) Calculate(draw int64) (int64, error) {
	if draw < 0 {
		return 0, fmt.Errorf("price draw cannot be negative: %d", draw)
	}
	if draw > MaxTotalPrice/2 {
		return 0, fmt.Errorf("price draw %d overflows the representable range", draw)
	}
	return draw * 2, nil
}

// MaxTotalPrice is the largest price both representations carry losslessly.
const MaxTotalPrice = int64(1<<53 - 1)

// MaxPriceDraw bounds the random draw handed to a PricingStrategy.
const MaxPriceDraw = int64(math.MaxInt32)
