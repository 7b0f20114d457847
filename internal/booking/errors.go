// Package booking exposes the reservation engine behind a small
// facade: browse screenings, query seats and ticket options, quote a
// price and commit a reservation.  The HTTP handlers and any other
// caller go through this package instead of mutating the store or the
// seats directly.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCustomerName is returned when a reservation is requested without
// a customer name.
var ErrCustomerName = errors.New("customer name is required")

// ErrNoSeats is returned when a quote or reservation is requested with
// an empty seat list.
var ErrNoSeats = errors.New("no seats selected")

// ErrForeignSeat is returned when a requested seat does not belong to
// the screening being booked.
var ErrForeignSeat = errors.New("seat does not belong to screening")

// ErrCategoryNotOffered is returned when the chosen ticket category is
// not in the hall's option table for the screening.
var ErrCategoryNotOffered = errors.New("ticket category not offered for this hall")

// UnavailableSeatsError reports a commit rejected because some of the
// requested seats were no longer free.  The whole transaction fails;
// no seat state is touched.  Handlers unwrap it with errors.As to list
// the conflicting seats in the response.
type UnavailableSeatsError struct {
	Seats []string // labels of the seats that were not free
}

// Error renders the conflicting seat labels, e.g.
// "seats unavailable: R1M1, R1M2".
func (e *UnavailableSeatsError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}
