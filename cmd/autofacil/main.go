package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"autofacil/internal/config"
	"autofacil/internal/jobs"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/scheduler"
	"autofacil/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env for local overrides; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AutoFacil...", "log_level", cfg.Log.Level, "data_dir", cfg.Data.Dir)

	stores := jsonstore.NewStores(cfg.Data.Dir)

	// The auth manager bootstraps the default admin on first construction.
	auth := service.NewAuthManager(stores, cfg.Auth)
	logger.Info("Session manager ready", "remaining_attempts", auth.RemainingAttempts())

	rentalService := service.NewRentalService(stores)

	jobRunner := jobs.NewJobRunner(stores, rentalService, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	logger.Info("AutoFacil running; screens attach through the service layer")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	sched.Stop()
}
