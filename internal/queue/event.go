// Package queue defines the message payloads exchanged over the
// broker plus the background consumer that turns them into an audit
// log.
package queue

// ReservationConfirmedEvent is published after a reservation commit
// succeeds.  It carries enough to log, notify or feed analytics
// without consulting the store: the screening is described by its
// lookup triple (movie title, hall name, start time) and the seats by
// their display labels.
type ReservationConfirmedEvent struct {
	ReservationID string   `json:"reservation_id"`
	CustomerName  string   `json:"customer_name"`
	MovieTitle    string   `json:"movie_title"`
	HallName      string   `json:"hall_name"`
	StartsAt      string   `json:"starts_at"`
	SeatLabels    []string `json:"seats"`
	TotalPrice    float64  `json:"total_price"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
