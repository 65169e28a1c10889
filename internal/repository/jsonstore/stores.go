package jsonstore

import "autofacil/internal/domain"

// Fixed store file names. One store per entity kind, in the configured
// working-directory-relative location.
const (
	ClientsFile   = "clientes.json"
	EmployeesFile = "funcionarios.json"
	VehiclesFile  = "veiculos.json"
	RentalsFile   = "alugueis.json"
)

// Stores bundles the four entity stores backing the application.
type Stores struct {
	Clients   *Store[domain.Client]
	Employees *Store[domain.Employee]
	Vehicles  *Store[domain.Vehicle]
	Rentals   *Store[domain.Rental]
}

// NewStores creates the entity stores under the given data directory.
func NewStores(dir string) *Stores {
	return &Stores{
		Clients:   New[domain.Client](dir, ClientsFile),
		Employees: New[domain.Employee](dir, EmployeesFile),
		Vehicles:  New[domain.Vehicle](dir, VehiclesFile),
		Rentals:   New[domain.Rental](dir, RentalsFile),
	}
}

// BackupAll takes a best-effort backup of every store.
func (s *Stores) BackupAll() {
	s.Clients.Backup()
	s.Employees.Backup()
	s.Vehicles.Backup()
	s.Rentals.Backup()
}
