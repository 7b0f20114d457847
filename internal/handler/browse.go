// Package handler exposes the reservation engine over HTTP.  The
// handlers are a thin translation layer: they parse parameters,
// delegate to the booking facade and shape JSON responses.  All
// rendering, input-validation presentation and dialog flow belongs to
// the UI client consuming this API.
package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wsbcinema/cinema-reservation/internal/booking"
	"github.com/wsbcinema/cinema-reservation/internal/model"
)

// BrowseHandler serves the read-only browse endpoints: screenings by
// date, seat availability and ticket options.
type BrowseHandler struct {
	Facade *booking.Facade
}

// NewBrowseHandler constructs a BrowseHandler.  The facade must be
// non-nil.
func NewBrowseHandler(f *booking.Facade) *BrowseHandler {
	if f == nil {
		panic("nil facade passed to NewBrowseHandler")
	}
	return &BrowseHandler{Facade: f}
}

// screeningJSON is the wire form of a screening.  Screenings have no
// numeric identifier; the (movie_title, hall_name, date_time) triple
// is the lookup key clients pass back to the seat, quote and
// reservation endpoints.
type screeningJSON struct {
	MovieTitle string  `json:"movie_title"`
	HallName   string  `json:"hall_name"`
	DateTime   string  `json:"date_time"`
	BasePrice  float64 `json:"base_price"`
	Display    string  `json:"display"`
}

// seatJSON is the wire form of one seat of a screening grid.
type seatJSON struct {
	Row       int    `json:"row"`
	Number    int    `json:"number"`
	State     string `json:"state"`
	Available bool   `json:"available"`
}

// resolveScreening parses the screening lookup triple from query
// parameters and resolves it against the catalog.  It writes the
// error response itself and returns nil when resolution fails.
func resolveScreening(c echo.Context, f *booking.Facade) *model.Screening {
	movieTitle := c.QueryParam("movie_title")
	hallName := c.QueryParam("hall_name")
	dateTime := c.QueryParam("date_time")
	if movieTitle == "" || hallName == "" || dateTime == "" {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_title, hall_name and date_time are required"})
		return nil
	}
	startsAt, err := time.Parse(time.RFC3339, dateTime)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "date_time must be RFC 3339"})
		return nil
	}
	sc := f.FindScreening(movieTitle, hallName, startsAt)
	if sc == nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		return nil
	}
	return sc
}

// GetScreenings handles GET /v1/screenings?date=YYYY-MM-DD.  It
// returns the screenings scheduled on the given day; a missing date
// defaults to today.
func (h *BrowseHandler) GetScreenings(c echo.Context) error {
	date := time.Now()
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}
	screenings := h.Facade.ScreeningsForDate(date)
	items := make([]screeningJSON, 0, len(screenings))
	for _, sc := range screenings {
		items = append(items, screeningJSON{
			MovieTitle: sc.Movie.Title,
			HallName:   sc.Hall.Name,
			DateTime:   sc.StartsAt.Format(time.RFC3339),
			BasePrice:  sc.BasePrice,
			Display:    sc.String(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetSeats handles GET /v1/screenings/seats.  It returns the full
// seat grid of the screening identified by the lookup triple, each
// seat with its current state.  Clients filter on "available" to show
// bookable seats.
func (h *BrowseHandler) GetSeats(c echo.Context) error {
	sc := resolveScreening(c, h.Facade)
	if sc == nil {
		return nil
	}
	seats := sc.Seats()
	items := make([]seatJSON, 0, len(seats))
	for _, seat := range seats {
		items = append(items, seatJSON{
			Row:       seat.Row,
			Number:    seat.Number,
			State:     seat.State().String(),
			Available: seat.IsAvailable(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTicketOptions handles GET /v1/screenings/ticket-options.  It
// returns the ticket categories offered for the screening's hall.
// Clients must consult this per screening instead of assuming all
// categories exist everywhere.
func (h *BrowseHandler) GetTicketOptions(c echo.Context) error {
	sc := resolveScreening(c, h.Facade)
	if sc == nil {
		return nil
	}
	options := h.Facade.TicketOptions(sc)
	items := make([]string, 0, len(options))
	for category := range options {
		items = append(items, string(category))
	}
	sort.Strings(items) // map order is random; keep responses stable
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
