package booking

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wsbcinema/cinema-reservation/internal/model"
	"github.com/wsbcinema/cinema-reservation/internal/pricing"
	"github.com/wsbcinema/cinema-reservation/internal/queue"
	"github.com/wsbcinema/cinema-reservation/internal/store"
)

// EventPublisher pushes a confirmation event to the message broker
// after a successful commit.  Publishing is best-effort: failures are
// logged and never fail the reservation.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
}

// Facade bundles the store and the optional event publisher behind the
// operations the UI layer consumes.  A mutex serializes commits so the
// precondition check, the seat transitions and the persistence write of
// one reservation are atomic with respect to other commits.
type Facade struct {
	store     *store.Store
	publisher EventPublisher // nil disables event publication

	mu sync.Mutex
}

// New constructs a Facade over the given store.  The store must be
// non-nil; the publisher may be nil to disable event publication.
func New(s *store.Store, publisher EventPublisher) *Facade {
	if s == nil {
		panic("nil store passed to booking.New")
	}
	return &Facade{store: s, publisher: publisher}
}

// ScreeningsForDate returns the screenings scheduled on the given
// calendar day.
func (f *Facade) ScreeningsForDate(date time.Time) []*model.Screening {
	return f.store.ScreeningsForDate(date)
}

// FindScreening resolves a screening by its (movie title, hall name,
// start time) triple, or nil when none matches.
func (f *Facade) FindScreening(movieTitle, hallName string, startsAt time.Time) *model.Screening {
	return f.store.FindScreening(movieTitle, hallName, startsAt)
}

// AvailableSeats returns the seats of the screening that can still be
// booked.
func (f *Facade) AvailableSeats(sc *model.Screening) []*model.Seat {
	return sc.AvailableSeats()
}

// TicketOptions returns the ticket categories offered for the
// screening, keyed by category label.  The set depends on the
// screening's hall and must be queried per screening.
func (f *Facade) TicketOptions(sc *model.Screening) map[model.TicketCategory]pricing.TicketFactory {
	return pricing.OptionsForHall(sc.Hall.Name)
}

// FactoryFor resolves a category label against the screening's option
// table.  Asking for a category the hall does not offer is an error,
// not a fallback to another category.
func (f *Facade) FactoryFor(sc *model.Screening, category model.TicketCategory) (pricing.TicketFactory, error) {
	factory, ok := pricing.OptionsForHall(sc.Hall.Name)[category]
	if !ok {
		return nil, ErrCategoryNotOffered
	}
	return factory, nil
}

// CalculatePrice quotes the given seats at the factory's category
// price and returns the total along with the priced tickets.  Pricing
// uses fixed multipliers, so it cannot fail for valid inputs; the
// returned tickets can be decorated with add-ons and passed straight
// to MakeReservation.
func (f *Facade) CalculatePrice(sc *model.Screening, seats []*model.Seat, factory pricing.TicketFactory) (float64, []model.PricedTicket) {
	total := 0.0
	tickets := make([]model.PricedTicket, 0, len(seats))
	for _, seat := range seats {
		t := factory.CreateTicket(sc, seat)
		tickets = append(tickets, t)
		total += t.Price()
	}
	return total, tickets
}

// MakeReservation commits a reservation: it validates the request,
// checks that every requested seat is still free, transitions them all
// to reserved, records the reservation in the store and persists the
// collection.  The commit is all-or-nothing — when any requested seat
// is not free the whole transaction fails with UnavailableSeatsError
// and no seat is touched.
//
// Persistence failure does not roll the commit back: the returned
// reservation is live in memory and the error tells the caller that
// disk is behind, so it can warn the user or retry the save.
func (f *Facade) MakeReservation(ctx context.Context, customerName string, sc *model.Screening, seats []*model.Seat, tickets []model.PricedTicket) (*model.Reservation, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrCustomerName
	}
	if len(seats) == 0 {
		return nil, ErrNoSeats
	}
	for _, seat := range seats {
		if !sc.Owns(seat) {
			return nil, ErrForeignSeat
		}
	}

	f.mu.Lock()
	// Precondition pass before any mutation: either every seat is
	// free or nothing moves.
	var unavailable []string
	for _, seat := range seats {
		if !seat.IsAvailable() {
			unavailable = append(unavailable, seat.Label())
		}
	}
	if len(unavailable) > 0 {
		f.mu.Unlock()
		return nil, &UnavailableSeatsError{Seats: unavailable}
	}
	for _, seat := range seats {
		seat.Reserve()
	}
	reservation := model.NewReservation(customerName, sc, seats, tickets)

	// The persistence write stays inside the critical section:
	// releasing the mutex first would let an overlapping commit save
	// its snapshot before this one, and the stale snapshot landing
	// last would erase the later reservation from disk.
	err := f.store.AddReservation(reservation)
	f.mu.Unlock()
	if err != nil {
		log.Printf("booking: reservation %s committed but not persisted: %v", reservation.ID, err)
	}

	f.publishConfirmed(ctx, reservation)
	return reservation, err
}

// AllReservations returns every reservation made so far.
func (f *Facade) AllReservations() []*model.Reservation {
	return f.store.Reservations()
}

// publishConfirmed sends the confirmation event when a publisher is
// configured.  Errors are logged and swallowed.
func (f *Facade) publishConfirmed(ctx context.Context, r *model.Reservation) {
	if f.publisher == nil {
		return
	}
	labels := make([]string, 0, len(r.Seats))
	for _, seat := range r.Seats {
		labels = append(labels, seat.Label())
	}
	event := queue.ReservationConfirmedEvent{
		ReservationID: r.ID,
		CustomerName:  r.CustomerName,
		MovieTitle:    r.Screening.Movie.Title,
		HallName:      r.Screening.Hall.Name,
		StartsAt:      r.Screening.StartsAt.Format(time.RFC3339),
		SeatLabels:    labels,
		TotalPrice:    r.TotalPrice,
		ConfirmedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if err := f.publisher.PublishReservationConfirmed(ctx, event); err != nil {
		log.Printf("booking: publish confirmation for %s failed: %v", r.ID, err)
	}
}
