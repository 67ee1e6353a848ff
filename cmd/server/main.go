package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/config"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/expansion"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/handler"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/middleware"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/queue"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/repository"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/router"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	registry := expansion.NewRegistry()
	expCfg := registry.GetConfig(cfg.Expansion, cfg.Emulator)
	log.Printf("deployment target: %s / %s (client %s, max level %d)",
		cfg.Expansion, cfg.Emulator, expCfg.Version, expCfg.MaxLevel)

	accountTable, err := expCfg.ResolveTableName(expansion.RoleAccount)
	if err != nil {
		log.Fatalf("resolve account table: %v", err)
	}
	charactersTable, err := expCfg.ResolveTableName(expansion.RoleCharacters)
	if err != nil {
		log.Fatalf("resolve characters table: %v", err)
	}

	stores := database.NewManager()
	defer stores.DisconnectAll()

	// The launcher store is ours and mandatory. The emulator stores may
	// be temporarily down; the repositories then answer with
	// store-unavailable until a reconnect, so a realm restart does not
	// take the launcher backend with it.
	if err := stores.Connect(database.StoreLauncher, cfg.LauncherDB); err != nil {
		log.Fatalf("launcher store: %v", err)
	}
	if err := stores.Connect(database.StoreAuth, cfg.AuthDB); err != nil {
		log.Printf("warning: %v (logins disabled until reconnect)", err)
	}
	if err := stores.Connect(database.StoreCharacters, cfg.CharactersDB); err != nil {
		log.Printf("warning: %v (character features disabled until reconnect)", err)
	}

	accounts := repository.NewAccountRepo(stores, accountTable)
	characters := repository.NewCharacterRepo(stores, charactersTable)
	launcher := repository.NewLauncherRepo(stores)
	sessions := repository.NewSessionRepo(stores)
	stats := repository.NewStatsRepo(stores, charactersTable)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := launcher.CreateSchema(ctx); err != nil {
		cancel()
		log.Fatalf("launcher schema: %v", err)
	}
	cancel()

	coord := service.NewCoordinator(accounts, launcher, characters, cfg.UnstuckFallback)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("warning: redis unavailable; rate limiting and stats caching disabled")
	}

	// Login audit trail consumer; reconnects on its own.
	go func() {
		if err := queue.StartLoginConsumer(cfg.AMQPURL); err != nil {
			log.Printf("login consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, accounts, sessions, coord),
		Characters: handler.NewCharacterHandler(coord),
		Profile:    handler.NewProfileHandler(coord),
		Expansions: handler.NewExpansionHandler(cfg, registry),
		Stats:      handler.NewStatsHandler(stats, rdb),
		LoginLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		JWTSecret:  cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
