package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stocktrack/internal/api"
	"stocktrack/internal/config"
	"stocktrack/internal/database"
	"stocktrack/internal/migrations"
	"stocktrack/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN, log)
	defer db.Close()

	migrations.Run(db, log)

	handler := api.New(db, cfg.Secret, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info("StockTrack server starting", zap.String("port", cfg.HTTPPort))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
