package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"autofacil/internal/domain"
	"autofacil/internal/idgen"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/validate"
)

// VehicleService manages the vehicle fleet.
type VehicleService struct {
	vehicles *jsonstore.Store[domain.Vehicle]
}

func NewVehicleService(stores *jsonstore.Stores) *VehicleService {
	return &VehicleService{vehicles: stores.Vehicles}
}

// RegisterVehicleInput carries the fields required to register a vehicle.
type RegisterVehicleInput struct {
	Make      string
	Model     string
	Plate     string
	Color     string
	Year      int
	Category  domain.VehicleCategory
	DailyRate decimal.Decimal
	Odometer  int
	FuelType  string
	Notes     string
}

// Register adds a vehicle to the fleet with status AVAILABLE. The plate must
// be well-formed and unique across non-inactive vehicles.
func (s *VehicleService) Register(in RegisterVehicleInput) (*domain.Vehicle, error) {
	if strings.TrimSpace(in.Make) == "" || strings.TrimSpace(in.Model) == "" {
		return nil, fmt.Errorf("%w: make and model are required", ErrValidation)
	}
	if !validate.Plate(in.Plate) {
		return nil, fmt.Errorf("%w: invalid plate %q", ErrValidation, in.Plate)
	}
	if in.DailyRate.IsNegative() {
		return nil, fmt.Errorf("%w: daily rate must not be negative", ErrValidation)
	}
	if in.Odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", ErrValidation)
	}

	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	vehicles := s.vehicles.Load()
	if err := ensurePlateUnique(vehicles, plate, ""); err != nil {
		return nil, err
	}

	vehicle := domain.Vehicle{
		ID:           idgen.NewVehicleID(),
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		Plate:        plate,
		Color:        in.Color,
		Year:         in.Year,
		Category:     in.Category,
		DailyRate:    in.DailyRate,
		Odometer:     in.Odometer,
		FuelType:     in.FuelType,
		Status:       domain.VehicleStatusAvailable,
		RegisteredOn: domain.Today(),
		Notes:        in.Notes,
	}

	vehicles = append(vehicles, vehicle)
	if !s.vehicles.Save(vehicles) {
		return nil, ErrStorage
	}
	logger.Info("Vehicle registered", "vehicle_id", vehicle.ID, "plate", vehicle.Plate)
	return &vehicle, nil
}

// Update replaces the stored record matching updated.ID.
func (s *VehicleService) Update(updated *domain.Vehicle) error {
	if !validate.Plate(updated.Plate) {
		return fmt.Errorf("%w: invalid plate %q", ErrValidation, updated.Plate)
	}
	if updated.DailyRate.IsNegative() {
		return fmt.Errorf("%w: daily rate must not be negative", ErrValidation)
	}

	updated.Plate = strings.ToUpper(strings.TrimSpace(updated.Plate))
	vehicles := s.vehicles.Load()
	if err := ensurePlateUnique(vehicles, updated.Plate, updated.ID); err != nil {
		return err
	}

	for i := range vehicles {
		if vehicles[i].ID == updated.ID {
			updated.RegisteredOn = vehicles[i].RegisteredOn
			vehicles[i] = *updated
			if !s.vehicles.Save(vehicles) {
				return ErrStorage
			}
			return nil
		}
	}
	return fmt.Errorf("%w: vehicle %s", ErrNotFound, updated.ID)
}

// SetStatus moves a vehicle between AVAILABLE, MAINTENANCE and INACTIVE.
// RENTED is owned by the rental lifecycle engine and cannot be set directly.
func (s *VehicleService) SetStatus(id string, status domain.VehicleStatus) error {
	switch status {
	case domain.VehicleStatusAvailable, domain.VehicleStatusMaintenance, domain.VehicleStatusInactive:
	case domain.VehicleStatusRented:
		return fmt.Errorf("%w: RENTED is assigned by the rental engine", ErrNotPermitted)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	vehicles := s.vehicles.Load()
	for i := range vehicles {
		if vehicles[i].ID == id {
			if vehicles[i].Status == domain.VehicleStatusRented {
				return fmt.Errorf("%w: vehicle %s has an active rental", ErrNotPermitted, id)
			}
			vehicles[i].Status = status
			if !s.vehicles.Save(vehicles) {
				return ErrStorage
			}
			logger.Info("Vehicle status changed", "vehicle_id", id, "status", status)
			return nil
		}
	}
	return fmt.Errorf("%w: vehicle %s", ErrNotFound, id)
}

// FindByID returns the vehicle with the given identifier.
func (s *VehicleService) FindByID(id string) (*domain.Vehicle, error) {
	vehicles := s.vehicles.Load()
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, id)
}

// List returns every vehicle in insertion order.
func (s *VehicleService) List() []domain.Vehicle {
	return s.vehicles.Load()
}

// ListAvailable returns the vehicles that can start a rental.
func (s *VehicleService) ListAvailable() []domain.Vehicle {
	var available []domain.Vehicle
	for _, v := range s.vehicles.Load() {
		if v.IsAvailable() {
			available = append(available, v)
		}
	}
	return available
}

func ensurePlateUnique(vehicles []domain.Vehicle, plate, excludeID string) error {
	for i := range vehicles {
		v := &vehicles[i]
		if v.ID == excludeID || v.Status == domain.VehicleStatusInactive {
			continue
		}
		if strings.EqualFold(v.Plate, plate) {
			return fmt.Errorf("%w: plate %s already registered", ErrValidation, plate)
		}
	}
	return nil
}
