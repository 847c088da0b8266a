package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bigdaditor/weather-board-backend/internal/config"
	"github.com/bigdaditor/weather-board-backend/internal/database"
	"github.com/bigdaditor/weather-board-backend/internal/handlers"
	"github.com/bigdaditor/weather-board-backend/internal/kma"
	"github.com/bigdaditor/weather-board-backend/internal/logger"
	"github.com/bigdaditor/weather-board-backend/internal/statistics"
)

func main() {
	log := logger.New()
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := database.NewRepository(db)
	stats := statistics.NewService(repo, repo, repo, log)
	kmaClient := kma.NewClient(cfg.KMAEndpoint, cfg.KMAServiceKey, cfg.KMAStationID)

	h := handlers.New(repo, stats, kmaClient, log)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// API - Sales
	r.Post("/api/sales", h.CreateSale)
	r.Get("/api/sales", h.ListSales)
	r.Get("/api/sales/month", h.GetSalesByMonth)
	r.Get("/api/sales/{id}", h.GetSale)
	r.Patch("/api/sales/{id}", h.UpdateSale)
	r.Delete("/api/sales/{id}", h.DeleteSale)

	// API - Weather
	r.Post("/api/weather/sync", h.SyncWeather)
	r.Get("/api/weather", h.GetWeather)

	// API - Statistics
	r.Get("/api/statistics", h.GetStatistics)
	r.Get("/api/statistics/summary/{period_type}", h.GetStatisticsSummary)
	r.Get("/api/statistics/weather/monthly", h.GetWeatherMonthlyTrend)
	r.Get("/api/statistics/daily", h.GetDailySales)
	r.Post("/api/statistics/recompute", h.RecomputeStatistics)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
