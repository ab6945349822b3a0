package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/config"
	"github.com/iliyamo/ticket-registry/internal/database"
	"github.com/iliyamo/ticket-registry/internal/handler"
	"github.com/iliyamo/ticket-registry/internal/ledger"
	"github.com/iliyamo/ticket-registry/internal/queue"
	"github.com/iliyamo/ticket-registry/internal/repository"
	"github.com/iliyamo/ticket-registry/internal/router"
	"github.com/iliyamo/ticket-registry/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	journal := repository.NewJournalRepo(db)

	// The registry owner is fixed at genesis by config, not by whoever
	// registers first.  Boot replays the journal through the same transition
	// functions that serve live calls.
	owner := utils.DerivePrincipal(cfg.RegistryOwnerEmail)
	led, err := ledger.Open(context.Background(), owner, journal)
	if err != nil {
		log.Fatalf("ledger replay: %v", err)
	}
	log.Printf("ledger ready: owner=%s height=%d", owner, led.Height())

	// Redis is optional: without it the rate limiter and response cache
	// become pass-throughs.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, accounts, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(led), rdb)
	router.RegisterRegistry(e,
		handler.NewOrganizerHandler(led),
		handler.NewTicketHandler(led),
		handler.NewAdminHandler(led),
		cfg.JWTSecret, rdb)

	// Lifecycle consumer mirrors committed ticket calls into logs/ledger.log.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
