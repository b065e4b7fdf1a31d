package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/repository"
	"github.com/iliyamo/cinema-box-office/internal/router"
	"github.com/iliyamo/cinema-box-office/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	halls := repository.NewHallRepo()
	films := repository.NewFilmRepo()
	bookings := repository.NewBookingRepo()
	promotions := repository.NewPromotionRepo()
	viewers := repository.NewViewerRepo()
	loyalty := repository.NewLoyaltyProgram()
	stats := repository.NewStatsRepo()
	staff := repository.NewStaffRepo(cfg.BcryptCost)
	tokens := repository.NewTokenRepo()
	audit := repository.NewAuditRepo()

	if cfg.SnapshotPath != "" {
		if _, err := os.Stat(cfg.SnapshotPath); err == nil {
			snap, err := store.Load(cfg.SnapshotPath)
			if err != nil {
				log.Fatalf("snapshot restore failed: %v", err)
			}
			snap.Apply(halls, films, bookings)
			log.Printf("restored catalog snapshot %q saved at %s", snap.Meta.Name, snap.Meta.SavedAt)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	auth := handler.NewAuthHandler(cfg, staff, tokens, audit)
	admin := &handler.StaffHandler{
		Cfg:        cfg,
		Halls:      halls,
		Films:      films,
		Bookings:   bookings,
		Promotions: promotions,
		Viewers:    viewers,
		Stats:      stats,
		Staff:      staff,
		Audit:      audit,
	}
	browse := handler.NewBrowseHandler(halls, films, bookings, promotions)
	viewer := handler.NewViewerHandler(viewers, loyalty)
	booking := handler.NewBookingHandler(cfg, halls, films, bookings, promotions, viewers, loyalty, stats)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, browse, viewer, booking, cacheMW, limitMW)
	router.RegisterStaff(e, admin, cfg.JWTSecret, limitMW)

	// Sales log consumer; reconnects on its own and never takes the
	// server down.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("%s box office listening on %s (env=%s)", cfg.CinemaName, addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
