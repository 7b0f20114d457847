package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reservation is a customer's committed booking of one or more seats
// for one screening.  The identifier is generated at creation and is
// stable across persistence round-trips.  A reservation references its
// screening and seats without owning them; the screening keeps owning
// the seats.
//
// Fields:
//  ID           – unique identifier (UUID string).
//  CustomerName – name the booking was made under (non-empty).
//  Screening    – the showing the seats belong to (shared reference).
//  Seats        – the reserved seats (shared references).
//  Tickets      – the tickets priced at creation time.
//  TotalPrice   – sum of the ticket prices at creation time.  Persisted
//                 independently of the tickets, so it survives reloads
//                 even though per-ticket prices do not.
//  CreatedAt    – creation timestamp.
type Reservation struct {
	ID           string
	CustomerName string
	Screening    *Screening
	Seats        []*Seat
	Tickets      []PricedTicket
	TotalPrice   float64
	CreatedAt    time.Time
}

// NewReservation constructs a reservation with a fresh identifier and
// a total computed as the sum of the ticket prices.
func NewReservation(customerName string, screening *Screening, seats []*Seat, tickets []PricedTicket) *Reservation {
	total := 0.0
	for _, t := range tickets {
		total += t.Price()
	}
	return &Reservation{
		ID:           uuid.NewString(),
		CustomerName: customerName,
		Screening:    screening,
		Seats:        seats,
		Tickets:      tickets,
		TotalPrice:   total,
		CreatedAt:    time.Now(),
	}
}

// String renders the reservation for display, e.g.
// "Jan Kowalski | Oppenheimer (180 min, 16+) in Sala 1 at 02.06.2026 10:00 | seats: R1M1, R1M2 | total: 40.00".
func (r *Reservation) String() string {
	labels := make([]string, 0, len(r.Seats))
	for _, s := range r.Seats {
		labels = append(labels, s.Label())
	}
	return fmt.Sprintf("%s | %s | seats: %s | total: %.2f",
		r.CustomerName, r.Screening, strings.Join(labels, ", "), r.TotalPrice)
}
