package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/wsbcinema/cinema-reservation/internal/booking"
	"github.com/wsbcinema/cinema-reservation/internal/config"
	"github.com/wsbcinema/cinema-reservation/internal/handler"
	"github.com/wsbcinema/cinema-reservation/internal/middleware"
	"github.com/wsbcinema/cinema-reservation/internal/queue"
	"github.com/wsbcinema/cinema-reservation/internal/router"
	queue_publisher "github.com/wsbcinema/cinema-reservation/internal/service"
	"github.com/wsbcinema/cinema-reservation/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins

	cfg := config.Load()

	// Catalog and reservations live in memory; the JSON file is the
	// only durable state.
	st := store.New(store.NewFileStore(cfg.ReservationsFile))
	store.SeedCatalog(st)
	st.ResetAllSeats()
	if n, err := st.LoadReservations(); err != nil {
		log.Printf("load reservations: %v", err)
	} else if n > 0 {
		log.Printf("restored %d reservation(s) from %s", n, cfg.ReservationsFile)
	}

	var publisher booking.EventPublisher
	if cfg.EventsEnabled {
		publisher = queue_publisher.New()
	}
	facade := booking.New(st, publisher)

	if cfg.ConsumerEnabled {
		go queue.StartConsumer()
	}

	rdb := config.NewRedisClient()
	cacheMW := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.Register(e,
		handler.NewBrowseHandler(facade),
		handler.NewReservationHandler(facade),
		cacheMW, rateMW,
	)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Block until interrupted, then drain in-flight requests and make
	// a last save so a clean stop never loses reservations.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := st.SaveReservations(); err != nil {
		log.Printf("final save: %v", err)
	}
	log.Println("server stopped")
}
