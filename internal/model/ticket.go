package model

import "fmt"

// TicketCategory labels the pricing category a ticket was created
// under.  The set is closed; which categories are offered for a given
// screening depends on its hall (see the pricing package).
type TicketCategory string

const (
	TicketRegular    TicketCategory = "Regular"
	TicketDiscounted TicketCategory = "Discounted"
	TicketVIP        TicketCategory = "VIP"
)

// PricedTicket is the read surface shared by plain tickets and their
// add-on wrappers.  Add-ons delegate Screening and Seat to the ticket
// they wrap and override only Price and Description, so a caller never
// needs to know how many layers it is holding.
type PricedTicket interface {
	Price() float64
	Screening() *Screening
	Seat() *Seat
	Description() string
}

// Ticket is a priced claim on one seat for one screening.  Tickets are
// transient value objects built by a factory at quote or reservation
// time; they are never persisted individually — only the reservation's
// aggregate total and seat list survive a save/load cycle.
type Ticket struct {
	screening *Screening
	seat      *Seat
	category  TicketCategory
	price     float64
}

// NewTicket builds a ticket bound to the given screening and seat with
// an already-computed price.  Price computation lives in the pricing
// factories; reconstructed tickets loaded from storage pass an evenly
// split share of the persisted total and an empty category.
func NewTicket(screening *Screening, seat *Seat, category TicketCategory, price float64) *Ticket {
	return &Ticket{screening: screening, seat: seat, category: category, price: price}
}

// Price returns the computed ticket price.
func (t *Ticket) Price() float64 { return t.price }

// Screening returns the showing the ticket is for.
func (t *Ticket) Screening() *Screening { return t.screening }

// Seat returns the seat the ticket covers.
func (t *Ticket) Seat() *Seat { return t.seat }

// Category returns the pricing category label, empty for tickets
// reconstructed from persisted reservations.
func (t *Ticket) Category() TicketCategory { return t.category }

// Description renders the ticket for display, e.g.
// "Ticket for Oppenheimer at 10:00, seat R1M5, 20.00".
func (t *Ticket) Description() string {
	return fmt.Sprintf("Ticket for %s at %s, seat %s, %.2f",
		t.screening.Movie.Title, t.screening.StartsAt.Format("15:04"), t.seat.Label(), t.price)
}
