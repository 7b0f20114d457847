package model

import "fmt"

// SeatState is the lifecycle tag of a seat within one screening.  The
// closed set of states and the allowed transitions between them form a
// strict state machine: transitions either succeed and move the seat to
// a new state or fail and leave it untouched.  There are no timers and
// no automatic expiry of reservations.
type SeatState int

const (
	// SeatFree means the seat can be reserved or sold.
	SeatFree SeatState = iota
	// SeatReserved means the seat is held by a reservation.  It can
	// still be sold (reservation redeemed at the box office) or
	// cancelled back to free.
	SeatReserved
	// SeatSold is terminal; no transition leaves it.
	SeatSold
)

// String returns the lower-case state name used in API responses and
// log output.
func (s SeatState) String() string {
	switch s {
	case SeatFree:
		return "free"
	case SeatReserved:
		return "reserved"
	case SeatSold:
		return "sold"
	}
	return "unknown"
}

// SeatObserver receives a notification after every successful seat
// transition.  The seat passes itself so the observer can re-read its
// new state.  Observers are typically UI widgets or event bridges; the
// seat holds them without owning them and knows nothing about what
// they do.
//
// Observers are identified by interface equality in Attach and Detach,
// so implementations must be comparable — register a pointer, not a
// value of an uncomparable type (a func or a struct holding a slice
// would panic on comparison).
type SeatObserver interface {
	Update(seat *Seat)
}

// Seat is a single seat of one screening's grid.  Identity is the
// (row, number) pair within that screening; the owning Screening
// guarantees uniqueness.  State is mutable only through Reserve,
// Cancel, Sell and ForceReserve.
//
// Fields:
//  Row    – 1-based row index.
//  Number – 1-based seat index within the row.
type Seat struct {
	Row    int
	Number int

	state     SeatState
	observers []SeatObserver
}

// NewSeat creates a seat in the free state.
func NewSeat(row, number int) *Seat {
	return &Seat{Row: row, Number: number, state: SeatFree}
}

// State returns the seat's current state tag.
func (s *Seat) State() SeatState { return s.state }

// IsAvailable reports whether the seat can still be booked, which is
// the case only while it is free.
func (s *Seat) IsAvailable() bool { return s.state == SeatFree }

// Reserve moves a free seat to reserved.  It returns false without
// side effects when the seat is already reserved or sold.
func (s *Seat) Reserve() bool {
	if s.state != SeatFree {
		return false
	}
	s.setState(SeatReserved)
	return true
}

// Cancel releases a reserved seat back to free.  Cancelling a free or
// sold seat fails.
func (s *Seat) Cancel() bool {
	if s.state != SeatReserved {
		return false
	}
	s.setState(SeatFree)
	return true
}

// Sell moves a free or reserved seat to sold.  Selling an already sold
// seat fails.
func (s *Seat) Sell() bool {
	if s.state == SeatSold {
		return false
	}
	s.setState(SeatSold)
	return true
}

// ForceReserve sets the seat to reserved regardless of its current
// state.  It exists for restoring persisted reservations after a cold
// start, where every seat begins free and the normal transition rules
// would get in the way.  Observers are notified only when the state
// actually changes.
func (s *Seat) ForceReserve() {
	if s.state == SeatReserved {
		return
	}
	s.setState(SeatReserved)
}

// ForceFree sets the seat back to free regardless of its current
// state.  The bootstrap uses it to wipe the grid before reloading
// persisted reservations.  Observers are notified only when the state
// actually changes.
func (s *Seat) ForceFree() {
	if s.state == SeatFree {
		return
	}
	s.setState(SeatFree)
}

// setState records the new state and notifies every attached observer
// exactly once.  Failed transitions never reach this point, so
// observers only ever see successful mutations.
func (s *Seat) setState(state SeatState) {
	s.state = state
	for _, o := range s.observers {
		o.Update(s)
	}
}

// Attach registers an observer for state-change notifications.
// Attaching the same observer twice is a no-op.
func (s *Seat) Attach(observer SeatObserver) {
	for _, o := range s.observers {
		if o == observer {
			return
		}
	}
	s.observers = append(s.observers, observer)
}

// Detach removes a previously attached observer.  Detaching an
// observer that was never attached is a no-op.
func (s *Seat) Detach(observer SeatObserver) {
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Label renders the seat as "R1M5" for row 1, seat 5.  The format is
// used in display strings, load warnings and published events.
func (s *Seat) Label() string {
	return fmt.Sprintf("R%dM%d", s.Row, s.Number)
}

// String is an alias for Label.
func (s *Seat) String() string { return s.Label() }
