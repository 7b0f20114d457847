package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wsbcinema/cinema-reservation/internal/model"
	"github.com/wsbcinema/cinema-reservation/internal/queue"
	"github.com/wsbcinema/cinema-reservation/internal/store"
)

// memPersistence keeps saved records in memory and can be told to fail.
type memPersistence struct {
	records []store.ReservationRecord
	saves   int
	fail    bool
}

func (m *memPersistence) Save(records []store.ReservationRecord) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.records = records
	m.saves++
	return nil
}

func (m *memPersistence) Load() ([]store.ReservationRecord, error) {
	return m.records, nil
}

// gatedPersistence records every snapshot in call order and blocks the
// first Save until released, so a test can hold one commit open in the
// middle of its write.
type gatedPersistence struct {
	mu      sync.Mutex
	saves   [][]store.ReservationRecord
	gate    chan struct{}
	entered chan struct{}
	first   sync.Once
}

func newGatedPersistence() *gatedPersistence {
	return &gatedPersistence{gate: make(chan struct{}), entered: make(chan struct{})}
}

func (g *gatedPersistence) Save(records []store.ReservationRecord) error {
	blocked := false
	g.first.Do(func() { blocked = true })
	if blocked {
		close(g.entered)
		<-g.gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, append([]store.ReservationRecord(nil), records...))
	return nil
}

func (g *gatedPersistence) Load() ([]store.ReservationRecord, error) {
	return nil, nil
}

// capturingPublisher records published events.
type capturingPublisher struct {
	events []queue.ReservationConfirmedEvent
	fail   bool
}

func (p *capturingPublisher) PublishReservationConfirmed(_ context.Context, event queue.ReservationConfirmedEvent) error {
	if p.fail {
		return errors.New("broker unreachable")
	}
	p.events = append(p.events, event)
	return nil
}

var testStartsAt = time.Date(2026, 6, 2, 10, 0, 0, 0, time.Local)

func newTestFacade(t *testing.T, persistence store.ReservationStore, publisher EventPublisher) (*Facade, *model.Screening) {
	t.Helper()
	st := store.New(persistence)
	movie := model.NewMovie("Oppenheimer", 180, 16)
	hall := model.NewCinemaHall("Sala 1", 8, 10)
	st.AddMovie(movie)
	st.AddHall(hall)
	sc := model.NewScreening(movie, hall, testStartsAt, 20)
	st.AddScreening(sc)
	return New(st, publisher), sc
}

func TestScreeningBuilder(t *testing.T) {
	t.Parallel()

	movie := model.NewMovie("CODA", 111, 12)
	hall := model.NewCinemaHall("Sala 2", 10, 12)

	t.Run("builds a complete screening", func(t *testing.T) {
		sc, err := NewScreeningBuilder().
			Movie(movie).
			Hall(hall).
			StartsAt(testStartsAt).
			BasePrice(25).
			Build()
		assert.NoError(t, err)
		assert.Same(t, movie, sc.Movie)
		assert.Same(t, hall, sc.Hall)
		assert.Equal(t, 25.0, sc.BasePrice)
		assert.Len(t, sc.Seats(), hall.TotalSeats())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewScreeningBuilder().Hall(hall).StartsAt(testStartsAt).BasePrice(25).Build()
		assert.ErrorContains(t, err, "movie")

		_, err = NewScreeningBuilder().Movie(movie).StartsAt(testStartsAt).BasePrice(25).Build()
		assert.ErrorContains(t, err, "hall")

		_, err = NewScreeningBuilder().Movie(movie).Hall(hall).BasePrice(25).Build()
		assert.ErrorContains(t, err, "start time")

		_, err = NewScreeningBuilder().Movie(movie).Hall(hall).StartsAt(testStartsAt).Build()
		assert.ErrorContains(t, err, "base price")
	})

	t.Run("resets after a successful build", func(t *testing.T) {
		b := NewScreeningBuilder().Movie(movie).Hall(hall).StartsAt(testStartsAt).BasePrice(25)
		_, err := b.Build()
		assert.NoError(t, err)

		_, err = b.Build()
		assert.Error(t, err)
	})
}

func TestFactoryFor(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)

	factory, err := f.FactoryFor(sc, model.TicketRegular)
	assert.NoError(t, err)
	assert.Equal(t, model.TicketRegular, factory.Category())

	// Sala 1 does not sell VIP tickets.
	_, err = f.FactoryFor(sc, model.TicketVIP)
	assert.ErrorIs(t, err, ErrCategoryNotOffered)
}

func TestCalculatePrice(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)
	factory, err := f.FactoryFor(sc, model.TicketDiscounted)
	assert.NoError(t, err)

	seats := []*model.Seat{sc.FindSeat(1, 1), sc.FindSeat(1, 2)}
	total, tickets := f.CalculatePrice(sc, seats, factory)
	assert.InDelta(t, 28.0, total, 1e-9)
	assert.Len(t, tickets, 2)
	// Quoting must not reserve anything.
	assert.True(t, sc.FindSeat(1, 1).IsAvailable())
	assert.True(t, sc.FindSeat(1, 2).IsAvailable())
}

func TestMakeReservation(t *testing.T) {
	t.Parallel()

	persistence := &memPersistence{}
	publisher := &capturingPublisher{}
	f, sc := newTestFacade(t, persistence, publisher)

	seats := []*model.Seat{sc.FindSeat(1, 1), sc.FindSeat(1, 2)}
	factory, _ := f.FactoryFor(sc, model.TicketRegular)
	_, tickets := f.CalculatePrice(sc, seats, factory)

	r, err := f.MakeReservation(context.Background(), "Jan Kowalski", sc, seats, tickets)
	assert.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Jan Kowalski", r.CustomerName)
	assert.InDelta(t, 40.0, r.TotalPrice, 1e-9)

	for _, seat := range seats {
		assert.Equal(t, model.SeatReserved, seat.State())
	}
	assert.Len(t, f.AllReservations(), 1)
	assert.Equal(t, 1, persistence.saves)

	// The commit published a confirmation event.
	if assert.Len(t, publisher.events, 1) {
		event := publisher.events[0]
		assert.Equal(t, r.ID, event.ReservationID)
		assert.Equal(t, []string{"R1M1", "R1M2"}, event.SeatLabels)
		assert.InDelta(t, 40.0, event.TotalPrice, 1e-9)
	}
}

func TestMakeReservationValidation(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)
	other := model.NewScreening(sc.Movie, sc.Hall, testStartsAt.Add(3*time.Hour), 20)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)

	seats := []*model.Seat{sc.FindSeat(1, 1)}
	_, tickets := f.CalculatePrice(sc, seats, factory)

	_, err := f.MakeReservation(context.Background(), "  ", sc, seats, tickets)
	assert.ErrorIs(t, err, ErrCustomerName)

	_, err = f.MakeReservation(context.Background(), "Jan Kowalski", sc, nil, nil)
	assert.ErrorIs(t, err, ErrNoSeats)

	foreign := []*model.Seat{other.FindSeat(1, 1)}
	_, err = f.MakeReservation(context.Background(), "Jan Kowalski", sc, foreign, tickets)
	assert.ErrorIs(t, err, ErrForeignSeat)

	// Nothing committed, nothing mutated.
	assert.Empty(t, f.AllReservations())
	assert.True(t, sc.FindSeat(1, 1).IsAvailable())
}

func TestMakeReservationAllOrNothing(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)

	// Take one of the two requested seats up front.
	sc.FindSeat(2, 2).Reserve()

	seats := []*model.Seat{sc.FindSeat(2, 1), sc.FindSeat(2, 2)}
	_, tickets := f.CalculatePrice(sc, seats, factory)

	_, err := f.MakeReservation(context.Background(), "Jan Kowalski", sc, seats, tickets)
	var unavailable *UnavailableSeatsError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"R2M2"}, unavailable.Seats)

	// The free seat of the pair stays free.
	assert.True(t, sc.FindSeat(2, 1).IsAvailable())
	assert.Empty(t, f.AllReservations())
}

func TestMakeReservationDoubleBooking(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)
	seats := []*model.Seat{sc.FindSeat(3, 3)}
	_, tickets := f.CalculatePrice(sc, seats, factory)

	_, err := f.MakeReservation(context.Background(), "Jan Kowalski", sc, seats, tickets)
	assert.NoError(t, err)

	_, err = f.MakeReservation(context.Background(), "Anna Nowak", sc, seats, tickets)
	var unavailable *UnavailableSeatsError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"R3M3"}, unavailable.Seats)
	assert.Len(t, f.AllReservations(), 1)
}

func TestOverlappingCommitsPersistInOrder(t *testing.T) {
	t.Parallel()

	persistence := newGatedPersistence()
	f, sc := newTestFacade(t, persistence, nil)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)

	commit := func(customer string, seat *model.Seat) error {
		_, tickets := f.CalculatePrice(sc, []*model.Seat{seat}, factory)
		_, err := f.MakeReservation(context.Background(), customer, sc, []*model.Seat{seat}, tickets)
		return err
	}

	done := make(chan error, 2)
	go func() { done <- commit("Jan Kowalski", sc.FindSeat(1, 1)) }()

	// Hold the first commit open in the middle of its save, start a
	// second commit against it, then release.  The second commit must
	// wait for the first, so the two-reservation snapshot lands last
	// instead of being overwritten by the stale one-reservation one.
	<-persistence.entered
	go func() { done <- commit("Anna Nowak", sc.FindSeat(1, 2)) }()
	time.Sleep(50 * time.Millisecond)
	close(persistence.gate)

	assert.NoError(t, <-done)
	assert.NoError(t, <-done)

	persistence.mu.Lock()
	defer persistence.mu.Unlock()
	if assert.Len(t, persistence.saves, 2) {
		assert.Len(t, persistence.saves[0], 1)
		final := persistence.saves[1]
		if assert.Len(t, final, 2) {
			customers := []string{final[0].CustomerName, final[1].CustomerName}
			assert.ElementsMatch(t, []string{"Jan Kowalski", "Anna Nowak"}, customers)
		}
	}
}

func TestMakeReservationSurvivesPersistenceFailure(t *testing.T) {
	t.Parallel()

	persistence := &memPersistence{fail: true}
	f, sc := newTestFacade(t, persistence, nil)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)
	seats := []*model.Seat{sc.FindSeat(1, 1)}
	_, tickets := f.CalculatePrice(sc, seats, factory)

	r, err := f.MakeReservation(context.Background(), "Jan Kowalski", sc, seats, tickets)
	assert.Error(t, err)
	// The reservation is live in memory despite the failed save.
	assert.NotNil(t, r)
	assert.Len(t, f.AllReservations(), 1)
	assert.Equal(t, model.SeatReserved, sc.FindSeat(1, 1).State())
}

func TestMakeReservationToleratesPublisherFailure(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{fail: true}
	f, sc := newTestFacade(t, &memPersistence{}, publisher)
	factory, _ := f.FactoryFor(sc, model.TicketRegular)
	seats := []*model.Seat{sc.FindSeat(1, 1)}
	_, tickets := f.CalculatePrice(sc, seats, factory)

	r, err := f.MakeReservation(context.Background(), "Jan Kowalski", sc, seats, tickets)
	assert.NoError(t, err)
	assert.NotNil(t, r)
}

func TestTicketOptionsDependOnHall(t *testing.T) {
	t.Parallel()

	f, sc := newTestFacade(t, &memPersistence{}, nil)
	options := f.TicketOptions(sc)
	assert.Len(t, options, 2)
	assert.Contains(t, options, model.TicketRegular)
	assert.Contains(t, options, model.TicketDiscounted)

	vipHall := model.NewCinemaHall("Sala VIP", 6, 8)
	vipScreening := model.NewScreening(sc.Movie, vipHall, testStartsAt, 30)
	vipOptions := f.TicketOptions(vipScreening)
	assert.Len(t, vipOptions, 1)
	assert.Contains(t, vipOptions, model.TicketVIP)
}
