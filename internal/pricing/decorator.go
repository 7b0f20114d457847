package pricing

import (
	"fmt"

	"github.com/wsbcinema/cinema-reservation/internal/model"
)

// Flat surcharges for the optional add-ons.
const (
	threeDSurcharge     = 5.0
	snackComboSurcharge = 15.0
)

// AddOn wraps an existing ticket with a flat surcharge and a display
// tag.  Screening and seat reads are delegated to the wrapped ticket;
// only the reported price and description change.  Add-ons compose:
// wrapping a 3D ticket with a snack combo yields both surcharges, with
// the tags appended in the order applied.
type AddOn struct {
	wrapped   model.PricedTicket
	surcharge float64
	tag       string
}

// WithThreeD wraps the ticket with the 3D showing surcharge.
func WithThreeD(ticket model.PricedTicket) model.PricedTicket {
	return &AddOn{wrapped: ticket, surcharge: threeDSurcharge, tag: "[3D]"}
}

// WithSnackCombo wraps the ticket with the snack combo surcharge.
func WithSnackCombo(ticket model.PricedTicket) model.PricedTicket {
	return &AddOn{wrapped: ticket, surcharge: snackComboSurcharge, tag: "[+ Snack Combo]"}
}

// Price returns the wrapped ticket's price plus this add-on's flat
// surcharge.
func (a *AddOn) Price() float64 { return a.wrapped.Price() + a.surcharge }

// Screening delegates to the wrapped ticket.
func (a *AddOn) Screening() *model.Screening { return a.wrapped.Screening() }

// Seat delegates to the wrapped ticket.
func (a *AddOn) Seat() *model.Seat { return a.wrapped.Seat() }

// Description appends the add-on's tag to the wrapped ticket's text,
// e.g. "Ticket for Oppenheimer at 10:00, seat R1M5, 20.00 [3D]".
func (a *AddOn) Description() string {
	return fmt.Sprintf("%s %s", a.wrapped.Description(), a.tag)
}
