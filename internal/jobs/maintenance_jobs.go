package jobs

import "autofacil/internal/logger"

// ReportOverdueRentals logs every active rental past its expected end date.
// Overdue-ness is a derived view here: the job reports, it never transitions
// rental status.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		overdue := jr.rentals.Overdue()
		for _, r := range overdue {
			logger.Warn("Rental overdue",
				"rental_id", r.ID,
				"client_id", r.ClientID,
				"vehicle_id", r.VehicleID,
				"expected_end", r.ExpectedEndDate.String(),
				"daily_rate", r.DailyRate.String(),
			)
		}
		logger.Info("Overdue sweep finished", "count", len(overdue))
	})
}

// BackupStores takes a best-effort backup copy of every entity store.
func (jr *JobRunner) BackupStores() {
	jr.runWithRecovery("BackupStores", func() {
		jr.stores.BackupAll()
	})
}
