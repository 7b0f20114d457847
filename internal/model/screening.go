package model

import (
	"fmt"
	"time"
)

// Screening is a scheduled showing of a movie in a hall at a specific
// time.  It references its Movie and CinemaHall without owning them,
// and exclusively owns the seat grid it materializes at construction.
// The grid never grows or shrinks afterwards: it holds exactly
// rows*seatsPerRow seats, one per (row, number) pair, in row-major
// order.
//
// Fields:
//  Movie     – the film being shown (shared reference).
//  Hall      – the hall hosting the showing (shared reference).
//  StartsAt  – date and time the showing begins.
//  BasePrice – base ticket price the pricing factories multiply.
type Screening struct {
	Movie     *Movie
	Hall      *CinemaHall
	StartsAt  time.Time
	BasePrice float64

	seats []*Seat
}

// NewScreening creates a screening and materializes its seat grid from
// the hall dimensions, rows 1..R outer, seats 1..C inner.
func NewScreening(movie *Movie, hall *CinemaHall, startsAt time.Time, basePrice float64) *Screening {
	s := &Screening{Movie: movie, Hall: hall, StartsAt: startsAt, BasePrice: basePrice}
	s.seats = make([]*Seat, 0, hall.TotalSeats())
	for row := 1; row <= hall.Rows; row++ {
		for num := 1; num <= hall.SeatsPerRow; num++ {
			s.seats = append(s.seats, NewSeat(row, num))
		}
	}
	return s
}

// Seats returns the full seat grid in row-major order.  Callers must
// not modify the slice; seat state changes go through the seats'
// transition methods.
func (s *Screening) Seats() []*Seat { return s.seats }

// AvailableSeats returns the seats that can still be booked.
func (s *Screening) AvailableSeats() []*Seat {
	out := make([]*Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		if seat.IsAvailable() {
			out = append(out, seat)
		}
	}
	return out
}

// FindSeat returns the seat at (row, number), or nil when the pair is
// out of range.  The row-major grid makes the position computable
// without scanning.
func (s *Screening) FindSeat(row, number int) *Seat {
	if row < 1 || row > s.Hall.Rows || number < 1 || number > s.Hall.SeatsPerRow {
		return nil
	}
	return s.seats[(row-1)*s.Hall.SeatsPerRow+(number-1)]
}

// Owns reports whether the given seat belongs to this screening's
// grid.  Seat values from other screenings share (row, number) pairs,
// so identity is compared, not position.
func (s *Screening) Owns(seat *Seat) bool {
	if seat == nil {
		return false
	}
	return s.FindSeat(seat.Row, seat.Number) == seat
}

// String renders the screening for display, combining movie, hall and
// formatted start time, e.g.
// "Oppenheimer (180 min, 16+) in Sala 1 at 02.06.2026 10:00".
func (s *Screening) String() string {
	return fmt.Sprintf("%s in %s at %s", s.Movie, s.Hall.Name, s.StartsAt.Format("02.01.2006 15:04"))
}
