// Package pricing computes ticket prices for the reservation engine.
// Category factories apply a fixed multiplier to a screening's base
// price, add-on wrappers stack flat surcharges on top of an existing
// ticket, and time-of-day strategies offer an independent multiplier
// axis.  All multipliers and surcharges are fixed constants, so price
// computation never fails for valid inputs.
package pricing

import "github.com/wsbcinema/cinema-reservation/internal/model"

// TicketFactory builds a ticket for one seat of one screening, priced
// according to the factory's category.
type TicketFactory interface {
	CreateTicket(screening *model.Screening, seat *model.Seat) *model.Ticket
	Category() model.TicketCategory
}

// Fixed category multipliers applied to a screening's base price.
const (
	regularMultiplier    = 1.0
	discountedMultiplier = 0.7
	vipMultiplier        = 1.5
)

// RegularTicketFactory prices tickets at the screening's base price.
type RegularTicketFactory struct{}

// CreateTicket builds a regular ticket at the full base price.
func (RegularTicketFactory) CreateTicket(screening *model.Screening, seat *model.Seat) *model.Ticket {
	return model.NewTicket(screening, seat, model.TicketRegular, screening.BasePrice*regularMultiplier)
}

// Category returns the Regular category label.
func (RegularTicketFactory) Category() model.TicketCategory { return model.TicketRegular }

// DiscountedTicketFactory prices tickets at 70% of the base price.
type DiscountedTicketFactory struct{}

// CreateTicket builds a discounted ticket with 30% off the base price.
func (DiscountedTicketFactory) CreateTicket(screening *model.Screening, seat *model.Seat) *model.Ticket {
	return model.NewTicket(screening, seat, model.TicketDiscounted, screening.BasePrice*discountedMultiplier)
}

// Category returns the Discounted category label.
func (DiscountedTicketFactory) Category() model.TicketCategory { return model.TicketDiscounted }

// VIPTicketFactory prices tickets at 150% of the base price.
type VIPTicketFactory struct{}

// CreateTicket builds a VIP ticket with a 50% surcharge on the base price.
func (VIPTicketFactory) CreateTicket(screening *model.Screening, seat *model.Seat) *model.Ticket {
	return model.NewTicket(screening, seat, model.TicketVIP, screening.BasePrice*vipMultiplier)
}

// Category returns the VIP category label.
func (VIPTicketFactory) Category() model.TicketCategory { return model.TicketVIP }

// OptionsForHall returns the ticket categories offered in the named
// hall, keyed by category label.  The mapping is a plain lookup table,
// not a computed rule: the two standard halls sell regular and
// discounted tickets, the VIP hall sells only VIP tickets, and unknown
// halls offer nothing.  Callers must query this per screening instead
// of assuming every category is always available.
func OptionsForHall(hallName string) map[model.TicketCategory]TicketFactory {
	options := make(map[model.TicketCategory]TicketFactory)
	switch hallName {
	case "Sala 1", "Sala 2":
		options[model.TicketRegular] = RegularTicketFactory{}
		options[model.TicketDiscounted] = DiscountedTicketFactory{}
	case "Sala VIP":
		options[model.TicketVIP] = VIPTicketFactory{}
	}
	return options
}
