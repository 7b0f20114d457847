package store

import (
	"time"

	"github.com/wsbcinema/cinema-reservation/internal/model"
)

// SeedCatalog populates the store with the demo catalog: six movies,
// three halls and seven days of three daily screenings starting today.
// It is the external bootstrap step the store expects before
// reservations are reloaded.  Seeding an already-populated store
// appends duplicates, so main calls this exactly once.
func SeedCatalog(s *Store) {
	movies := []*model.Movie{
		model.NewMovie("Oppenheimer", 180, 16),
		model.NewMovie("Everything Everywhere All at Once", 139, 16),
		model.NewMovie("CODA", 111, 12),
		model.NewMovie("Nomadland", 107, 15),
		model.NewMovie("Parasite", 132, 16),
		model.NewMovie("Anora", 115, 16),
	}
	for _, m := range movies {
		s.AddMovie(m)
	}

	halls := []*model.CinemaHall{
		model.NewCinemaHall("Sala 1", 8, 10),
		model.NewCinemaHall("Sala 2", 10, 12),
		model.NewCinemaHall("Sala VIP", 6, 8),
	}
	for _, h := range halls {
		s.AddHall(h)
	}

	// Three showings a day for a week: a morning slot in Sala 1, an
	// afternoon slot in Sala 2 and an evening slot in the VIP hall.
	today := time.Now()
	year, month, day := today.Date()
	for offset := 0; offset < 7; offset++ {
		d := time.Date(year, month, day+offset, 0, 0, 0, 0, today.Location())
		s.AddScreening(model.NewScreening(movies[0], halls[0], d.Add(10*time.Hour), 20))
		s.AddScreening(model.NewScreening(movies[1], halls[1], d.Add(15*time.Hour+30*time.Minute), 25))
		s.AddScreening(model.NewScreening(movies[2], halls[2], d.Add(20*time.Hour), 30))
	}
}
