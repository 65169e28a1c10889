package domain

import "github.com/shopspring/decimal"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusFinished  RentalStatus = "FINISHED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	// OVERDUE exists in the persisted vocabulary but is never assigned by the
	// lifecycle engine; overdue-ness is a derived view (see IsOverdue).
	RentalStatusOverdue RentalStatus = "OVERDUE"
)

// lateFeeDailyRate is the penalty fraction of the daily rate charged per late day.
var lateFeeDailyRate = decimal.RequireFromString("0.10")

type Rental struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	VehicleID  string `json:"vehicle_id"`
	EmployeeID string `json:"employee_id"`
	StartDate  Date   `json:"start_date"`
	// ExpectedEndDate is the agreed return date; ActualEndDate is set on finalize.
	ExpectedEndDate Date     `json:"expected_end_date"`
	ActualEndDate   *Date    `json:"actual_end_date,omitempty"`
	CreatedOn       DateTime `json:"created_on"`
	StartOdometer   int      `json:"start_odometer"`
	EndOdometer     int      `json:"end_odometer"`
	// Rate snapshot — captured from the vehicle at rental creation time.
	// All amount calculations use this snapshot, not the live vehicle rate.
	DailyRate   decimal.Decimal `json:"daily_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LateFee     decimal.Decimal `json:"late_fee"`
	Status      RentalStatus    `json:"status"`
	Notes       string          `json:"notes,omitempty"`
}

// endDate is the actual end date when set, the expected end date otherwise.
func (r *Rental) endDate() Date {
	if r.ActualEndDate != nil {
		return *r.ActualEndDate
	}
	return r.ExpectedEndDate
}

// Days returns the billed duration, inclusive of both the start and end day.
func (r *Rental) Days() int {
	return r.endDate().DaysSince(r.StartDate) + 1
}

// LateDays returns how many days past the expected end the vehicle was
// returned. Zero when returned on time or not yet returned.
func (r *Rental) LateDays() int {
	if r.ActualEndDate == nil || !r.ActualEndDate.After(r.ExpectedEndDate.Time) {
		return 0
	}
	return r.ActualEndDate.DaysSince(r.ExpectedEndDate)
}

// Recalculate recomputes the derived amounts. Total is daily rate times the
// inclusive day count against the actual-or-expected end date; the late fee is
// 10% of the daily rate per late day.
func (r *Rental) Recalculate() {
	if r.StartDate.IsZero() || r.endDate().IsZero() {
		return
	}
	r.TotalAmount = r.DailyRate.Mul(decimal.NewFromInt(int64(r.Days())))
	if late := r.LateDays(); late > 0 {
		r.LateFee = r.DailyRate.Mul(decimal.NewFromInt(int64(late))).Mul(lateFeeDailyRate)
	} else {
		r.LateFee = decimal.Zero
	}
}

// IsOverdue reports whether an active rental is past its expected end date.
// Purely informational; it never transitions the status.
func (r *Rental) IsOverdue() bool {
	return r.Status == RentalStatusActive && Today().After(r.ExpectedEndDate.Time)
}

// IsTerminal reports whether the rental reached a final state.
func (r *Rental) IsTerminal() bool {
	return r.Status == RentalStatusFinished || r.Status == RentalStatusCancelled
}
