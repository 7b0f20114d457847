package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingObserver counts notifications and remembers the last state
// it saw.
type recordingObserver struct {
	calls int
	last  SeatState
}

func (o *recordingObserver) Update(seat *Seat) {
	o.calls++
	o.last = seat.State()
}

func TestSeatTransitions(t *testing.T) {
	t.Parallel()

	t.Run("reserve only from free", func(t *testing.T) {
		seat := NewSeat(1, 1)
		assert.True(t, seat.Reserve())
		assert.Equal(t, SeatReserved, seat.State())
		assert.False(t, seat.Reserve())
		assert.Equal(t, SeatReserved, seat.State())
	})

	t.Run("cancel only from reserved", func(t *testing.T) {
		seat := NewSeat(1, 1)
		assert.False(t, seat.Cancel())
		assert.Equal(t, SeatFree, seat.State())

		seat.Reserve()
		assert.True(t, seat.Cancel())
		assert.Equal(t, SeatFree, seat.State())

		seat.Sell()
		assert.False(t, seat.Cancel())
		assert.Equal(t, SeatSold, seat.State())
	})

	t.Run("sold is terminal", func(t *testing.T) {
		free := NewSeat(1, 1)
		assert.True(t, free.Sell())

		reserved := NewSeat(1, 2)
		reserved.Reserve()
		assert.True(t, reserved.Sell())

		assert.False(t, free.Sell())
		assert.False(t, free.Reserve())
		assert.False(t, free.Cancel())
		assert.Equal(t, SeatSold, free.State())
	})

	t.Run("availability tracks free only", func(t *testing.T) {
		seat := NewSeat(1, 1)
		assert.True(t, seat.IsAvailable())
		seat.Reserve()
		assert.False(t, seat.IsAvailable())
		seat.Cancel()
		assert.True(t, seat.IsAvailable())
		seat.Sell()
		assert.False(t, seat.IsAvailable())
	})
}

func TestSeatObserverNotifications(t *testing.T) {
	t.Parallel()

	seat := NewSeat(2, 3)
	obs := &recordingObserver{}
	seat.Attach(obs)

	seat.Reserve()
	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, SeatReserved, obs.last)

	// Failed transition must not notify.
	seat.Reserve()
	assert.Equal(t, 1, obs.calls)

	seat.Sell()
	assert.Equal(t, 2, obs.calls)
	assert.Equal(t, SeatSold, obs.last)

	seat.Cancel()
	assert.Equal(t, 2, obs.calls)
}

func TestSeatObserverAttachDetach(t *testing.T) {
	t.Parallel()

	seat := NewSeat(1, 1)
	obs := &recordingObserver{}

	// Double attach registers the observer once.
	seat.Attach(obs)
	seat.Attach(obs)
	seat.Reserve()
	assert.Equal(t, 1, obs.calls)

	seat.Detach(obs)
	seat.Cancel()
	assert.Equal(t, 1, obs.calls)

	// Detaching an unknown observer is a no-op.
	seat.Detach(&recordingObserver{})
	seat.Reserve()
	assert.Equal(t, 1, obs.calls)
}

func TestSeatForceTransitionsNotifyOnlyOnChange(t *testing.T) {
	t.Parallel()

	seat := NewSeat(1, 1)
	obs := &recordingObserver{}
	seat.Attach(obs)

	seat.ForceReserve()
	assert.Equal(t, SeatReserved, seat.State())
	assert.Equal(t, 1, obs.calls)

	seat.ForceReserve() // already reserved, no notification
	assert.Equal(t, 1, obs.calls)

	seat.Sell()
	seat.ForceFree() // even sold seats go back to free
	assert.Equal(t, SeatFree, seat.State())
	assert.Equal(t, 3, obs.calls)

	seat.ForceFree()
	assert.Equal(t, 3, obs.calls)
}

func TestSeatLabel(t *testing.T) {
	t.Parallel()

	seat := NewSeat(4, 7)
	assert.Equal(t, "R4M7", seat.Label())
	assert.Equal(t, "R4M7", seat.String())
}

func TestSeatStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "free", SeatFree.String())
	assert.Equal(t, "reserved", SeatReserved.String())
	assert.Equal(t, "sold", SeatSold.String())
}
