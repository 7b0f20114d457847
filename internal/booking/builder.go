package booking

import (
	"errors"
	"time"

	"github.com/wsbcinema/cinema-reservation/internal/model"
)

// ScreeningBuilder assembles a screening step by step.  Build fails
// fast when a required field is missing instead of defaulting it, so a
// half-configured screening can never enter the catalog.  The builder
// resets itself after a successful Build and can be reused.
type ScreeningBuilder struct {
	movie     *model.Movie
	hall      *model.CinemaHall
	startsAt  time.Time
	basePrice float64
}

// NewScreeningBuilder returns an empty builder.
func NewScreeningBuilder() *ScreeningBuilder {
	return &ScreeningBuilder{}
}

// Movie sets the film shown at the screening.
func (b *ScreeningBuilder) Movie(m *model.Movie) *ScreeningBuilder {
	b.movie = m
	return b
}

// Hall sets the hall hosting the screening.
func (b *ScreeningBuilder) Hall(h *model.CinemaHall) *ScreeningBuilder {
	b.hall = h
	return b
}

// StartsAt sets the date and time of the screening.
func (b *ScreeningBuilder) StartsAt(t time.Time) *ScreeningBuilder {
	b.startsAt = t
	return b
}

// BasePrice sets the base ticket price the pricing factories multiply.
func (b *ScreeningBuilder) BasePrice(p float64) *ScreeningBuilder {
	b.basePrice = p
	return b
}

// Build validates the collected fields and materializes the screening
// with its seat grid.  Missing movie, hall, start time or a
// non-positive base price is a validation error.
func (b *ScreeningBuilder) Build() (*model.Screening, error) {
	switch {
	case b.movie == nil:
		return nil, errors.New("screening builder: movie is required")
	case b.hall == nil:
		return nil, errors.New("screening builder: hall is required")
	case b.startsAt.IsZero():
		return nil, errors.New("screening builder: start time is required")
	case b.basePrice <= 0:
		return nil, errors.New("screening builder: base price must be positive")
	}
	sc := model.NewScreening(b.movie, b.hall, b.startsAt, b.basePrice)
	*b = ScreeningBuilder{}
	return sc, nil
}
