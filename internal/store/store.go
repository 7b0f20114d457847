// Package store keeps the process-wide catalog of movies, halls,
// screenings and reservations, and persists the reservation collection
// through a ReservationStore.  The store is an explicitly constructed
// instance handed to its collaborators by reference; there is no
// hidden global.  One logical store exists per process by convention,
// enforced by main wiring rather than by a singleton.
package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wsbcinema/cinema-reservation/internal/model"
)

// Store owns the in-memory catalog for the process lifetime.  Movies,
// halls and screenings are populated once at startup by the bootstrap
// step; reservations are loaded from persisted storage after bootstrap
// and saved back on every commit and at shutdown.
type Store struct {
	mu           sync.RWMutex
	movies       []*model.Movie
	halls        []*model.CinemaHall
	screenings   []*model.Screening
	reservations []*model.Reservation

	persistence ReservationStore
}

// New constructs an empty store persisting reservations through the
// given ReservationStore.  The persistence dependency must be non-nil.
func New(persistence ReservationStore) *Store {
	if persistence == nil {
		panic("nil ReservationStore passed to store.New")
	}
	return &Store{persistence: persistence}
}

// AddMovie adds a movie to the catalog.
func (s *Store) AddMovie(m *model.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = append(s.movies, m)
}

// AddHall adds a cinema hall to the catalog.
func (s *Store) AddHall(h *model.CinemaHall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.halls = append(s.halls, h)
}

// AddScreening adds a screening to the catalog.
func (s *Store) AddScreening(sc *model.Screening) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screenings = append(s.screenings, sc)
}

// Movies returns every movie in the catalog.
func (s *Store) Movies() []*model.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Movie(nil), s.movies...)
}

// Halls returns every hall in the catalog.
func (s *Store) Halls() []*model.CinemaHall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.CinemaHall(nil), s.halls...)
}

// Screenings returns every screening in the catalog.
func (s *Store) Screenings() []*model.Screening {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Screening(nil), s.screenings...)
}

// Reservations returns every reservation made so far.
func (s *Store) Reservations() []*model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Reservation(nil), s.reservations...)
}

// HallByName returns the hall with the given name, or nil when no hall
// matches.
func (s *Store) HallByName(name string) *model.CinemaHall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.halls {
		if h.Name == name {
			return h
		}
	}
	return nil
}

// ScreeningsForDate returns the screenings whose start time falls on
// the given calendar day, ignoring the time of day.
func (s *Store) ScreeningsForDate(date time.Time) []*model.Screening {
	s.mu.RLock()
	defer s.mu.RUnlock()
	y, m, d := date.Date()
	out := make([]*model.Screening, 0)
	for _, sc := range s.screenings {
		sy, sm, sd := sc.StartsAt.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, sc)
		}
	}
	return out
}

// FindScreening returns the screening matching the exact (movie title,
// hall name, start time) triple, or nil when none matches.  This is
// the lookup used to re-bind persisted reservations to live screenings
// after a reload.
func (s *Store) FindScreening(movieTitle, hallName string, startsAt time.Time) *model.Screening {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.screenings {
		if sc.Movie.Title == movieTitle && sc.Hall.Name == hallName && sc.StartsAt.Equal(startsAt) {
			return sc
		}
	}
	return nil
}

// AddReservation appends the reservation and persists the entire
// collection as a side effect.  The save happens under the store lock
// so overlapping calls cannot write their snapshots out of order.
// When persistence fails, the reservation still exists in memory and
// the error is returned so the caller can warn the user or retry the
// save; memory and disk are then inconsistent until the next
// successful save.
func (s *Store) AddReservation(r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = append(s.reservations, r)
	if err := s.persistence.Save(s.recordsLocked()); err != nil {
		return fmt.Errorf("persist reservations: %w", err)
	}
	return nil
}

// SaveReservations rewrites the persisted reservation collection, used
// at shutdown to flush the final state.  Like AddReservation it writes
// under the store lock to keep saves ordered.
func (s *Store) SaveReservations() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence.Save(s.recordsLocked())
}

// recordsLocked converts the in-memory reservations to their persisted
// form.  Callers must hold the lock.
func (s *Store) recordsLocked() []ReservationRecord {
	records := make([]ReservationRecord, 0, len(s.reservations))
	for _, r := range s.reservations {
		seats := make([]SeatRecord, 0, len(r.Seats))
		for _, seat := range r.Seats {
			seats = append(seats, SeatRecord{Row: seat.Row, Number: seat.Number})
		}
		records = append(records, ReservationRecord{
			ID:           r.ID,
			CustomerName: r.CustomerName,
			MovieTitle:   r.Screening.Movie.Title,
			HallName:     r.Screening.Hall.Name,
			DateTime:     r.Screening.StartsAt.Format(time.RFC3339),
			Seats:        seats,
			TotalPrice:   r.TotalPrice,
			Timestamp:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return records
}

// LoadReservations replaces the in-memory reservation collection with
// the persisted one, resolving each record against the live catalog.
// Records whose screening cannot be resolved are skipped with a
// warning, as are individual seats that no longer exist; a record with
// zero resolved seats is dropped entirely.  Malformed storage is
// treated as nothing loaded; read failures are returned so the caller
// can tell a corrupt file from an unreadable one.  Every resolved seat
// is forced into the reserved state so a cold start (where all seats
// begin free) ends up consistent with the reloaded bookings.  It
// returns the number of reservations restored.
func (s *Store) LoadReservations() (int, error) {
	records, err := s.persistence.Load()
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			log.Printf("store: reservation data malformed, continuing with none: %v", err)
			return 0, nil
		}
		return 0, err
	}
	loaded := make([]*model.Reservation, 0, len(records))
	for _, rec := range records {
		if r := s.restoreReservation(rec); r != nil {
			loaded = append(loaded, r)
		}
	}
	s.mu.Lock()
	s.reservations = loaded
	s.mu.Unlock()
	return len(loaded), nil
}

// restoreReservation rebuilds one reservation from its persisted form,
// or returns nil when the record cannot be resolved against the
// catalog.
func (s *Store) restoreReservation(rec ReservationRecord) *model.Reservation {
	startsAt, err := time.Parse(time.RFC3339, rec.DateTime)
	if err != nil {
		log.Printf("store: reservation %s has invalid date_time %q, skipping", rec.ID, rec.DateTime)
		return nil
	}
	screening := s.FindScreening(rec.MovieTitle, rec.HallName, startsAt)
	if screening == nil {
		log.Printf("store: no screening %q / %q / %s for reservation %s, skipping",
			rec.MovieTitle, rec.HallName, rec.DateTime, rec.ID)
		return nil
	}
	seats := make([]*model.Seat, 0, len(rec.Seats))
	for _, sr := range rec.Seats {
		seat := screening.FindSeat(sr.Row, sr.Number)
		if seat == nil {
			log.Printf("store: seat R%dM%d not found for reservation %s, skipping seat", sr.Row, sr.Number, rec.ID)
			continue
		}
		seats = append(seats, seat)
	}
	if len(seats) == 0 {
		log.Printf("store: no valid seats for reservation %s, skipping", rec.ID)
		return nil
	}

	// Per-ticket prices are not persisted; rebuild tickets with an
	// even split of the total.  Category detail is lost.
	perTicket := rec.TotalPrice / float64(len(seats))
	tickets := make([]model.PricedTicket, 0, len(seats))
	for _, seat := range seats {
		tickets = append(tickets, model.NewTicket(screening, seat, "", perTicket))
	}

	createdAt, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		createdAt = time.Now()
	}
	r := &model.Reservation{
		ID:           rec.ID,
		CustomerName: rec.CustomerName,
		Screening:    screening,
		Seats:        seats,
		Tickets:      tickets,
		TotalPrice:   rec.TotalPrice,
		CreatedAt:    createdAt,
	}
	for _, seat := range seats {
		seat.ForceReserve()
	}
	return r
}

// ResetAllSeats forces every seat of every screening back to the free
// state.  The bootstrap runs this before reloading reservations so the
// restored bookings are the only thing marking seats as taken.
func (s *Store) ResetAllSeats() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.screenings {
		for _, seat := range sc.Seats() {
			seat.ForceFree()
		}
	}
}
