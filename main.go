package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag"

	"game_mate/config"
	"game_mate/db"
	_ "game_mate/docs" // swagger docs
	"game_mate/handlers"
	"game_mate/llm"
	"game_mate/logger"
	"game_mate/scheduler"
	"game_mate/services"
	"game_mate/steam"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	if err := db.InitMySQLWithConfig(cfg); err != nil {
		logger.Error("init mysql failed", "error", err)
		os.Exit(1)
	}
	logger.Info("mysql connected",
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"conn_max_lifetime", cfg.DB.ConnMaxLifetime)

	steamClient, err := steam.New(cfg)
	if err != nil {
		logger.Error("init steam client failed", "error", err)
		os.Exit(1)
	}
	textClient := llm.New(cfg)

	store := services.NewStore()
	gate := services.NewAgeGate(cfg)
	signals := services.NewSignalAggregator(store, steamClient)
	similar := services.NewSimilarUserFinder(store, signals, cfg)
	searcher := services.NewSearcher(steamClient, gate, rand.NewSource(time.Now().UnixNano()))
	recommend := services.NewRecommendService(
		store, steamClient, steamClient, textClient,
		signals, similar, searcher, gate, cfg,
		rand.NewSource(time.Now().UnixNano()),
	)
	listing := services.NewListingService(store, steamClient, steamClient, signals, cfg)
	syncService := services.NewSyncService(store, steamClient, similar, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, &handlers.Handler{
		Recommend: recommend,
		Listing:   listing,
		Sync:      syncService,
	})

	scheduler.Start(cfg, syncService)

	logger.Info("server starting", "address", cfg.Server.Addr)
	logger.Info("swagger available", "url", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port))
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
