package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
	"github.com/kimLalilo/boxe-reventin-planning/internal/config"
	"github.com/kimLalilo/boxe-reventin-planning/internal/database"
	"github.com/kimLalilo/boxe-reventin-planning/internal/handler"
	"github.com/kimLalilo/boxe-reventin-planning/internal/middleware"
	"github.com/kimLalilo/boxe-reventin-planning/internal/queue"
	"github.com/kimLalilo/boxe-reventin-planning/internal/repository"
	"github.com/kimLalilo/boxe-reventin-planning/internal/router"
)

// apiValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type apiValidator struct{ v *validator.Validate }

func (a *apiValidator) Validate(i interface{}) error { return a.v.Struct(i) }

func main() {
	// A missing .env is fine in production, where the environment comes
	// from the process manager.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	members := repository.NewMemberRepo(db)
	slots := repository.NewSlotRepo(db)
	reservations := repository.NewReservationRepo(db)
	tokens := repository.NewTokenRepo(db)

	policy := booking.NewPolicy(cfg.BookingCutoff, cfg.Location())
	allocator := booking.NewAllocator(reservations, policy)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &apiValidator{v: validator.New()}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, members, tokens)
	planning := handler.NewPlanningHandler(members, slots, reservations, policy)
	bookings := handler.NewBookingHandler(members, slots, reservations, allocator)
	roster := handler.NewRosterHandler(slots, reservations, policy)
	adminMembers := handler.NewAdminMemberHandler(cfg, members)
	adminSlots := handler.NewAdminSlotHandler(slots)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterMember(e, planning, bookings, cfg.JWTSecret, config.LoadCacheConfig(), rdb)
	router.RegisterCoach(e, roster, cfg.JWTSecret)
	router.RegisterAdmin(e, adminMembers, adminSlots, cfg.JWTSecret)

	// The attendance log consumer reconnects on its own; run it for the
	// lifetime of the process.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.ClubTimezone)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
