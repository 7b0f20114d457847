package pricing

// Strategy adjusts a base price for the time of the showing.  The
// strategy axis is independent of the category factories: a caller
// picks a strategy externally (weekend showings, morning showings) and
// applies it to a base price before or instead of the category
// multipliers.  It is not composed into the standard booking flow.
type Strategy interface {
	CalculatePrice(basePrice float64) float64
}

// RegularPricing leaves the base price unchanged.
type RegularPricing struct{}

// CalculatePrice returns the base price as-is.
func (RegularPricing) CalculatePrice(basePrice float64) float64 { return basePrice }

// WeekendPricing raises the base price by 20% for weekend showings.
type WeekendPricing struct{}

// CalculatePrice returns the base price plus 20%.
func (WeekendPricing) CalculatePrice(basePrice float64) float64 { return basePrice * 1.2 }

// MorningPricing lowers the base price by 20% for morning showings.
type MorningPricing struct{}

// CalculatePrice returns the base price minus 20%.
func (MorningPricing) CalculatePrice(basePrice float64) float64 { return basePrice * 0.8 }

// Context holds the currently selected pricing strategy and delegates
// price calculation to it.  Swapping the strategy at runtime changes
// how subsequent prices are computed without touching the callers.
type Context struct {
	strategy Strategy
}

// NewContext creates a pricing context with the given initial strategy.
func NewContext(strategy Strategy) *Context {
	return &Context{strategy: strategy}
}

// SetStrategy replaces the active strategy.
func (c *Context) SetStrategy(strategy Strategy) { c.strategy = strategy }

// CalculatePrice applies the active strategy to the base price.
func (c *Context) CalculatePrice(basePrice float64) float64 {
	return c.strategy.CalculatePrice(basePrice)
}
