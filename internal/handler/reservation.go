package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wsbcinema/cinema-reservation/internal/booking"
	"github.com/wsbcinema/cinema-reservation/internal/model"
	"github.com/wsbcinema/cinema-reservation/internal/pricing"
)

// ReservationHandler serves price quotes, reservation commits and the
// reservation listing.
type ReservationHandler struct {
	Facade *booking.Facade
}

// NewReservationHandler constructs a ReservationHandler.  The facade
// must be non-nil.
func NewReservationHandler(f *booking.Facade) *ReservationHandler {
	if f == nil {
		panic("nil facade passed to NewReservationHandler")
	}
	return &ReservationHandler{Facade: f}
}

// seatRef identifies one seat of the screening grid in request bodies.
type seatRef struct {
	Row    int `json:"row"`
	Number int `json:"number"`
}

// quoteRequest selects seats and a pricing for a screening.  AddOns
// accepts "3d" and "snack_combo" and applies them to every ticket in
// the order given.
type quoteRequest struct {
	MovieTitle string    `json:"movie_title"`
	HallName   string    `json:"hall_name"`
	DateTime   string    `json:"date_time"`
	Seats      []seatRef `json:"seats"`
	Category   string    `json:"category"`
	AddOns     []string  `json:"add_ons"`
}

// reservationRequest is a quoteRequest plus the customer making the
// booking.
type reservationRequest struct {
	quoteRequest
	CustomerName string `json:"customer_name"`
}

// ticketJSON is the wire form of a priced ticket.
type ticketJSON struct {
	Seat        string  `json:"seat"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// reservationJSON is the wire form of a committed reservation.
type reservationJSON struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customer_name"`
	MovieTitle   string       `json:"movie_title"`
	HallName     string       `json:"hall_name"`
	DateTime     string       `json:"date_time"`
	Seats        []seatRef    `json:"seats"`
	Tickets      []ticketJSON `json:"tickets"`
	TotalPrice   float64      `json:"total_price"`
	Timestamp    string       `json:"timestamp"`
	Display      string       `json:"display"`
}

// resolveQuote validates a quote request against the catalog and
// returns the screening, the resolved seats and the priced tickets.
// It writes the error response itself and reports ok=false on failure.
func (h *ReservationHandler) resolveQuote(c echo.Context, req quoteRequest) (sc *model.Screening, seats []*model.Seat, tickets []model.PricedTicket, total float64, ok bool) {
	startsAt, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "date_time must be RFC 3339"})
		return nil, nil, nil, 0, false
	}
	sc = h.Facade.FindScreening(req.MovieTitle, req.HallName, startsAt)
	if sc == nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		return nil, nil, nil, 0, false
	}
	if len(req.Seats) == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
		return nil, nil, nil, 0, false
	}
	seats = make([]*model.Seat, 0, len(req.Seats))
	for _, ref := range req.Seats {
		seat := sc.FindSeat(ref.Row, ref.Number)
		if seat == nil {
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat", "row": ref.Row, "number": ref.Number})
			return nil, nil, nil, 0, false
		}
		seats = append(seats, seat)
	}
	factory, err := h.Facade.FactoryFor(sc, model.TicketCategory(req.Category))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket category not offered for this hall"})
		return nil, nil, nil, 0, false
	}
	total, tickets = h.Facade.CalculatePrice(sc, seats, factory)
	for i, t := range tickets {
		for _, addOn := range req.AddOns {
			switch addOn {
			case "3d":
				t = pricing.WithThreeD(t)
			case "snack_combo":
				t = pricing.WithSnackCombo(t)
			default:
				_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown add-on", "add_on": addOn})
				return nil, nil, nil, 0, false
			}
		}
		tickets[i] = t
	}
	if len(req.AddOns) > 0 {
		total = 0
		for _, t := range tickets {
			total += t.Price()
		}
	}
	return sc, seats, tickets, total, true
}

// Quote handles POST /v1/quote.  It prices the selected seats without
// reserving anything, so clients can show the total before commit.
func (h *ReservationHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	_, _, tickets, total, ok := h.resolveQuote(c, req)
	if !ok {
		return nil
	}
	items := make([]ticketJSON, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ticketJSON{Seat: t.Seat().Label(), Price: t.Price(), Description: t.Description()})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "tickets": items})
}

// Create handles POST /v1/reservations.  It prices the selected seats
// and commits the reservation atomically: when any requested seat is
// no longer free the whole request fails with 409 and the conflicting
// seats, and no seat state changes.  A commit whose persistence write
// fails still returns the reservation (it is live in memory) together
// with a warning, because memory and disk are inconsistent until the
// next successful save.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	sc, seats, tickets, _, ok := h.resolveQuote(c, req.quoteRequest)
	if !ok {
		return nil
	}
	reservation, err := h.Facade.MakeReservation(c.Request().Context(), req.CustomerName, sc, seats, tickets)
	if err != nil {
		var unavailable *booking.UnavailableSeatsError
		switch {
		case errors.As(err, &unavailable):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       "some seats are unavailable",
				"unavailable": unavailable.Seats,
			})
		case errors.Is(err, booking.ErrCustomerName),
			errors.Is(err, booking.ErrNoSeats),
			errors.Is(err, booking.ErrForeignSeat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case reservation != nil:
			// committed in memory, persistence failed
			return c.JSON(http.StatusCreated, echo.Map{
				"item":    toReservationJSON(reservation),
				"warning": "reservation accepted but not persisted; retry the save or expect it to vanish on restart",
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toReservationJSON(reservation)})
}

// List handles GET /v1/reservations.  It returns every reservation
// made so far, newest last.
func (h *ReservationHandler) List(c echo.Context) error {
	reservations := h.Facade.AllReservations()
	items := make([]reservationJSON, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, toReservationJSON(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// toReservationJSON shapes a reservation for the wire.
func toReservationJSON(r *model.Reservation) reservationJSON {
	seats := make([]seatRef, 0, len(r.Seats))
	for _, seat := range r.Seats {
		seats = append(seats, seatRef{Row: seat.Row, Number: seat.Number})
	}
	tickets := make([]ticketJSON, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		tickets = append(tickets, ticketJSON{Seat: t.Seat().Label(), Price: t.Price(), Description: t.Description()})
	}
	return reservationJSON{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		MovieTitle:   r.Screening.Movie.Title,
		HallName:     r.Screening.Hall.Name,
		DateTime:     r.Screening.StartsAt.Format(time.RFC3339),
		Seats:        seats,
		Tickets:      tickets,
		TotalPrice:   r.TotalPrice,
		Timestamp:    r.CreatedAt.Format(time.RFC3339),
		Display:      r.String(),
	}
}
