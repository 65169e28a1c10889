package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"autofacil/internal/config"
	"autofacil/internal/jobs"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "all", "Job to run: 'report-overdue', 'backup-stores' or 'all'")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting maintenance runner...", "job", *runOnce)

	stores := jsonstore.NewStores(cfg.Data.Dir)
	rentalService := service.NewRentalService(stores)
	jobRunner := jobs.NewJobRunner(stores, rentalService, cfg)

	switch *runOnce {
	case "report-overdue":
		jobRunner.ReportOverdueRentals()
	case "backup-stores":
		jobRunner.BackupStores()
	case "all":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job", "job", *runOnce)
		os.Exit(1)
	}

	logger.Info("Maintenance runner finished")
}
