package model

import "fmt"

// CinemaHall describes the physical layout of a screening hall.  The
// hall name is the unique key used for lookups, including the
// hall-to-ticket-category table in the pricing package.  Halls are
// immutable after creation.
//
// Fields:
//  Name        – unique hall name (e.g. "Sala 1").
//  Rows        – number of seating rows.
//  SeatsPerRow – number of seats in every row.
type CinemaHall struct {
	Name        string
	Rows        int
	SeatsPerRow int
}

// NewCinemaHall constructs an immutable CinemaHall value.
func NewCinemaHall(name string, rows, seatsPerRow int) *CinemaHall {
	return &CinemaHall{Name: name, Rows: rows, SeatsPerRow: seatsPerRow}
}

// TotalSeats returns the seat capacity of the hall, rows times seats
// per row.
func (h *CinemaHall) TotalSeats() int {
	return h.Rows * h.SeatsPerRow
}

// String renders the hall as "Sala 1 (8x10)".
func (h *CinemaHall) String() string {
	return fmt.Sprintf("%s (%dx%d)", h.Name, h.Rows, h.SeatsPerRow)
}
