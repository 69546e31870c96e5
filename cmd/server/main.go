package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-seat-reservation/internal/booking"
	"github.com/iliyamo/lab-seat-reservation/internal/config"
	"github.com/iliyamo/lab-seat-reservation/internal/database"
	"github.com/iliyamo/lab-seat-reservation/internal/handler"
	"github.com/iliyamo/lab-seat-reservation/internal/middleware"
	"github.com/iliyamo/lab-seat-reservation/internal/queue"
	"github.com/iliyamo/lab-seat-reservation/internal/repository"
	"github.com/iliyamo/lab-seat-reservation/internal/router"
)

func main() {
	// .env is optional; a containerized deployment injects real env vars.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limit disabled")
	}

	members := repository.NewMemberRepo(db)
	tokens := repository.NewTokenRepo(db)
	labs := repository.NewLabRepo(db)
	lectures := repository.NewLectureRepo(db)
	reservations := repository.NewReservationRepo(db)

	engine := booking.NewEngine(
		repository.NewBookingStore(db),
		nil, // system clock
		booking.ParseCutoff(cfg.CutoffTime),
		cfg.PriorityRooms,
	)

	authH := handler.NewAuthHandler(cfg, members, tokens)
	resH := handler.NewReservationHandler(engine, reservations)
	labH := handler.NewLabHandler(engine, labs, reservations)
	lecH := handler.NewLectureHandler(db, lectures, labs)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAPI(e, cfg.JWTSecret, resH, labH, lecH, cacheMW)

	// Drain the pending-approval queue in the background; the server
	// does not depend on the broker being up.
	go func() {
		if err := queue.StartPendingConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
