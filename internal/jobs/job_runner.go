package jobs

import (
	"autofacil/internal/config"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/service"
)

// JobRunner coordinates the scheduled maintenance jobs.
type JobRunner struct {
	stores  *jsonstore.Stores
	rentals *service.RentalService
	config  *config.Config
}

// NewJobRunner creates a job runner with all dependencies.
func NewJobRunner(stores *jsonstore.Stores, rentals *service.RentalService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		stores:  stores,
		rentals: rentals,
		config:  cfg,
	}
}

// Config returns the application configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every nightly job once (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReportOverdueRentals()
	jr.BackupStores()
}
