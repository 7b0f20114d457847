package model

import "fmt"

// Movie represents a film shown by the cinema.  Movies are immutable
// after creation and are shared between screenings rather than owned
// by them.
//
// Fields:
//  Title           – title of the film.
//  DurationMinutes – running time in minutes (positive).
//  MinimumAge      – minimum age rating (non-negative).
type Movie struct {
	Title           string
	DurationMinutes int
	MinimumAge      int
}

// NewMovie constructs an immutable Movie value.
func NewMovie(title string, durationMinutes, minimumAge int) *Movie {
	return &Movie{Title: title, DurationMinutes: durationMinutes, MinimumAge: minimumAge}
}

// String renders the movie as "Title (180 min, 16+)".
func (m *Movie) String() string {
	return fmt.Sprintf("%s (%d min, %d+)", m.Title, m.DurationMinutes, m.MinimumAge)
}
