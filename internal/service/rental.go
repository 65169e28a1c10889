package service

import (
	"fmt"

	"autofacil/internal/domain"
	"autofacil/internal/idgen"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
)

// RentalService is the rental lifecycle engine. State machine over
// Rental.Status: ACTIVE → FINISHED, ACTIVE → CANCELLED; both terminal.
// The engine keeps vehicle availability consistent with rentals: a vehicle
// is RENTED exactly while one active rental references it.
type RentalService struct {
	rentals   *jsonstore.Store[domain.Rental]
	vehicles  *jsonstore.Store[domain.Vehicle]
	clients   *jsonstore.Store[domain.Client]
	employees *jsonstore.Store[domain.Employee]
}

func NewRentalService(stores *jsonstore.Stores) *RentalService {
	return &RentalService{
		rentals:   stores.Rentals,
		vehicles:  stores.Vehicles,
		clients:   stores.Clients,
		employees: stores.Employees,
	}
}

// CreateRentalInput carries the fields required to open a rental.
type CreateRentalInput struct {
	ClientID        string
	VehicleID       string
	StartDate       domain.Date
	ExpectedEndDate domain.Date
	StartOdometer   int
	Notes           string
}

// Create opens a rental for the acting principal. The client must exist and
// be active, the vehicle must be AVAILABLE, and a responsible employee must
// be resolvable: the actor itself when an employee, otherwise an active
// admin is preferred, then any active employee. The vehicle's current daily
// rate is snapshotted onto the rental and the vehicle flips to RENTED.
func (s *RentalService) Create(actor *domain.Principal, in CreateRentalInput) (*domain.Rental, error) {
	if in.StartDate.IsZero() || in.ExpectedEndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and expected end dates are required", ErrValidation)
	}
	if in.ExpectedEndDate.Before(in.StartDate.Time) {
		return nil, fmt.Errorf("%w: expected end date precedes start date", ErrValidation)
	}

	client, err := s.findActiveClient(in.ClientID)
	if err != nil {
		return nil, err
	}

	vehicles := s.vehicles.Load()
	vehicle := findVehicle(vehicles, in.VehicleID)
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, in.VehicleID)
	}
	if !vehicle.IsAvailable() {
		return nil, fmt.Errorf("%w: vehicle %s is %s", ErrValidation, vehicle.Plate, vehicle.Status)
	}

	employeeID, err := s.resolveEmployee(actor)
	if err != nil {
		return nil, err
	}

	rental := domain.Rental{
		ID:              idgen.NewRentalID(),
		ClientID:        client.ID,
		VehicleID:       vehicle.ID,
		EmployeeID:      employeeID,
		StartDate:       in.StartDate,
		ExpectedEndDate: in.ExpectedEndDate,
		CreatedOn:       domain.Now(),
		StartOdometer:   in.StartOdometer,
		DailyRate:       vehicle.DailyRate,
		Status:          domain.RentalStatusActive,
		Notes:           in.Notes,
	}
	rental.Recalculate()

	rentals := append(s.rentals.Load(), rental)
	if !s.rentals.Save(rentals) {
		return nil, ErrStorage
	}

	vehicle.Status = domain.VehicleStatusRented
	if !s.vehicles.Save(vehicles) {
		return nil, ErrStorage
	}

	logger.Info("Rental created", "rental_id", rental.ID, "client_id", client.ID,
		"vehicle_id", vehicle.ID, "total", rental.TotalAmount)
	return &rental, nil
}

// EditRentalInput carries the mutable fields of an active rental.
type EditRentalInput struct {
	StartDate       domain.Date
	ExpectedEndDate domain.Date
	StartOdometer   int
	Notes           string
}

// Edit updates an active rental's dates, start odometer and notes, and
// recomputes the total. Editing a non-active rental is a state error.
func (s *RentalService) Edit(rentalID string, in EditRentalInput) (*domain.Rental, error) {
	if in.StartDate.IsZero() || in.ExpectedEndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and expected end dates are required", ErrValidation)
	}
	if in.ExpectedEndDate.Before(in.StartDate.Time) {
		return nil, fmt.Errorf("%w: expected end date precedes start date", ErrValidation)
	}

	rentals := s.rentals.Load()
	rental := findRental(rentals, rentalID)
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental %s is %s", ErrNotPermitted, rentalID, rental.Status)
	}

	rental.StartDate = in.StartDate
	rental.ExpectedEndDate = in.ExpectedEndDate
	rental.StartOdometer = in.StartOdometer
	rental.Notes = in.Notes
	rental.Recalculate()

	if !s.rentals.Save(rentals) {
		return nil, ErrStorage
	}
	logger.Info("Rental edited", "rental_id", rental.ID, "total", rental.TotalAmount)
	return rental, nil
}

// Finalize closes an active rental: records the actual end date and final
// odometer, recomputes the total against the actual end date, charges the
// late fee when the return is past the expected end, and releases the
// vehicle back to AVAILABLE unless its status was overridden meanwhile.
func (s *RentalService) Finalize(rentalID string, actualEnd domain.Date, endOdometer int) (*domain.Rental, error) {
	if actualEnd.IsZero() {
		return nil, fmt.Errorf("%w: actual end date is required", ErrValidation)
	}

	rentals := s.rentals.Load()
	rental := findRental(rentals, rentalID)
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental %s is %s", ErrNotPermitted, rentalID, rental.Status)
	}
	if actualEnd.Before(rental.StartDate.Time) {
		return nil, fmt.Errorf("%w: actual end date precedes start date", ErrValidation)
	}
	if endOdometer < rental.StartOdometer {
		return nil, fmt.Errorf("%w: end odometer below start odometer", ErrValidation)
	}

	rental.ActualEndDate = &actualEnd
	rental.EndOdometer = endOdometer
	rental.Status = domain.RentalStatusFinished
	rental.Recalculate()

	if !s.rentals.Save(rentals) {
		return nil, ErrStorage
	}
	if err := s.releaseVehicle(rental.VehicleID, endOdometer); err != nil {
		return nil, err
	}

	logger.Info("Rental finalized", "rental_id", rental.ID,
		"total", rental.TotalAmount, "late_fee", rental.LateFee)
	return rental, nil
}

// Cancel voids an active rental without charging any fee and releases the
// vehicle.
func (s *RentalService) Cancel(rentalID string) (*domain.Rental, error) {
	rentals := s.rentals.Load()
	rental := findRental(rentals, rentalID)
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental %s is %s", ErrNotPermitted, rentalID, rental.Status)
	}

	rental.Status = domain.RentalStatusCancelled

	if !s.rentals.Save(rentals) {
		return nil, ErrStorage
	}
	if err := s.releaseVehicle(rental.VehicleID, -1); err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "rental_id", rental.ID)
	return rental, nil
}

// FindByID returns the rental with the given identifier.
func (s *RentalService) FindByID(id string) (*domain.Rental, error) {
	rentals := s.rentals.Load()
	if r := findRental(rentals, id); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("%w: rental %s", ErrNotFound, id)
}

// List returns every rental in insertion order.
func (s *RentalService) List() []domain.Rental {
	return s.rentals.Load()
}

// ListByClient returns the rentals referencing the given client, for the
// client-facing "my rentals" view.
func (s *RentalService) ListByClient(clientID string) []domain.Rental {
	var out []domain.Rental
	for _, r := range s.rentals.Load() {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out
}

// Overdue returns the active rentals past their expected end date. Purely
// informational; no status transition happens.
func (s *RentalService) Overdue() []domain.Rental {
	var out []domain.Rental
	for _, r := range s.rentals.Load() {
		if r.IsOverdue() {
			out = append(out, r)
		}
	}
	return out
}

// resolveEmployee picks the responsible employee for a new rental: the actor
// itself when an employee, otherwise an active admin, else any active
// employee.
func (s *RentalService) resolveEmployee(actor *domain.Principal) (string, error) {
	if actor != nil && actor.Employee != nil {
		return actor.Employee.ID, nil
	}

	employees := s.employees.Load()
	for i := range employees {
		if employees[i].Active && employees[i].IsAdmin() {
			return employees[i].ID, nil
		}
	}
	for i := range employees {
		if employees[i].Active {
			return employees[i].ID, nil
		}
	}
	return "", ErrNoEmployee
}

// releaseVehicle sets the rented vehicle back to AVAILABLE and, when a final
// odometer reading is given (>= 0), rolls it onto the vehicle. A status
// other than RENTED was overridden externally (e.g. maintenance) and is left
// alone.
func (s *RentalService) releaseVehicle(vehicleID string, endOdometer int) error {
	vehicles := s.vehicles.Load()
	vehicle := findVehicle(vehicles, vehicleID)
	if vehicle == nil {
		logger.Warn("Rental references missing vehicle", "vehicle_id", vehicleID)
		return nil
	}

	if vehicle.Status == domain.VehicleStatusRented {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	if endOdometer > vehicle.Odometer {
		vehicle.Odometer = endOdometer
	}
	if !s.vehicles.Save(vehicles) {
		return ErrStorage
	}
	return nil
}

func (s *RentalService) findActiveClient(clientID string) (*domain.Client, error) {
	clients := s.clients.Load()
	for i := range clients {
		if clients[i].ID == clientID {
			if !clients[i].Active {
				return nil, fmt.Errorf("%w: client %s is inactive", ErrValidation, clientID)
			}
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", ErrNotFound, clientID)
}

func findRental(rentals []domain.Rental, id string) *domain.Rental {
	for i := range rentals {
		if rentals[i].ID == id {
			return &rentals[i]
		}
	}
	return nil
}

func findVehicle(vehicles []domain.Vehicle, id string) *domain.Vehicle {
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i]
		}
	}
	return nil
}
