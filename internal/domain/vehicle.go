package domain

import "github.com/shopspring/decimal"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusInactive    VehicleStatus = "INACTIVE"
)

type VehicleCategory string

const (
	VehicleCategoryEconomy      VehicleCategory = "ECONOMY"
	VehicleCategoryCompact      VehicleCategory = "COMPACT"
	VehicleCategoryIntermediate VehicleCategory = "INTERMEDIATE"
	VehicleCategoryExecutive    VehicleCategory = "EXECUTIVE"
	VehicleCategoryLuxury       VehicleCategory = "LUXURY"
	VehicleCategorySUV          VehicleCategory = "SUV"
	VehicleCategoryPickup       VehicleCategory = "PICKUP"
)

type Vehicle struct {
	ID           string          `json:"id"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Plate        string          `json:"plate"`
	Color        string          `json:"color"`
	Year         int             `json:"year"`
	Category     VehicleCategory `json:"category"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	Odometer     int             `json:"odometer"`
	FuelType     string          `json:"fuel_type"`
	Status       VehicleStatus   `json:"status"`
	RegisteredOn Date            `json:"registered_on"`
	Notes        string          `json:"notes,omitempty"`
}

// IsAvailable reports whether the vehicle can start a new rental.
func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusAvailable
}
