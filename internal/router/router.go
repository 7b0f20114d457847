package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/wsbcinema/cinema-reservation/internal/handler"
)

// Register wires every public endpoint under /v1 plus the health
// probe.  Middlewares (cache on reads, rate limit on writes) are
// attached per group so each concern covers only the routes it should.
func Register(e *echo.Echo, b *handler.BrowseHandler, r *handler.ReservationHandler, cache echo.MiddlewareFunc, ratelimit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// ---- Browse (read-only, cacheable) ----
	browse := e.Group("/v1", cache)
	browse.GET("/screenings", b.GetScreenings)
	browse.GET("/screenings/seats", b.GetSeats)
	browse.GET("/screenings/ticket-options", b.GetTicketOptions)

	// ---- Booking (mutating, rate limited) ----
	book := e.Group("/v1", ratelimit)
	book.POST("/quote", r.Quote)
	book.POST("/reservations", r.Create)
	book.GET("/reservations", r.List)
}
