package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"autofacil/internal/domain"
	"autofacil/internal/idgen"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/validate"
)

// EmployeeService manages the employee catalog.
type EmployeeService struct {
	employees *jsonstore.Store[domain.Employee]
}

func NewEmployeeService(stores *jsonstore.Stores) *EmployeeService {
	return &EmployeeService{employees: stores.Employees}
}

// RegisterEmployeeInput carries the fields required to register an employee.
type RegisterEmployeeInput struct {
	Name       string
	NationalID string
	Email      string
	Phone      string
	Address    string
	Salary     decimal.Decimal
	Username   string
	Password   string
	Role       domain.EmployeeRole
	AdmittedOn domain.Date
	Notes      string
}

// Register creates a new active employee. The national id must be unique
// across active employees and the username unique case-insensitively.
func (s *EmployeeService) Register(in RegisterEmployeeInput) (*domain.Employee, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validate.CPF(in.NationalID) {
		return nil, fmt.Errorf("%w: invalid national id %q", ErrValidation, in.NationalID)
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if in.Role != domain.EmployeeRoleAdmin && in.Role != domain.EmployeeRoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if in.Salary.IsNegative() {
		return nil, fmt.Errorf("%w: salary must not be negative", ErrValidation)
	}

	employees := s.employees.Load()
	if err := ensureEmployeeUnique(employees, in.NationalID, in.Username, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	employee := domain.Employee{
		ID:           idgen.NewEmployeeID(),
		Name:         strings.TrimSpace(in.Name),
		NationalID:   in.NationalID,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		Salary:       in.Salary,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         in.Role,
		AdmittedOn:   in.AdmittedOn,
		RegisteredOn: domain.Today(),
		Active:       true,
		Notes:        in.Notes,
	}

	employees = append(employees, employee)
	if !s.employees.Save(employees) {
		return nil, ErrStorage
	}
	logger.Info("Employee registered", "employee_id", employee.ID, "role", employee.Role)
	return &employee, nil
}

// Update replaces the stored record matching updated.ID, keeping the stored
// credential and registration date.
func (s *EmployeeService) Update(updated *domain.Employee) error {
	if !validate.CPF(updated.NationalID) {
		return fmt.Errorf("%w: invalid national id %q", ErrValidation, updated.NationalID)
	}
	if updated.Role != domain.EmployeeRoleAdmin && updated.Role != domain.EmployeeRoleStaff {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, updated.Role)
	}

	employees := s.employees.Load()
	if err := ensureEmployeeUnique(employees, updated.NationalID, updated.Username, updated.ID); err != nil {
		return err
	}

	for i := range employees {
		if employees[i].ID == updated.ID {
			updated.PasswordHash = employees[i].PasswordHash
			updated.RegisteredOn = employees[i].RegisteredOn
			employees[i] = *updated
			if !s.employees.Save(employees) {
				return ErrStorage
			}
			return nil
		}
	}
	return fmt.Errorf("%w: employee %s", ErrNotFound, updated.ID)
}

// SetPassword replaces the employee's credential.
func (s *EmployeeService) SetPassword(id, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	employees := s.employees.Load()
	for i := range employees {
		if employees[i].ID == id {
			employees[i].PasswordHash = string(hash)
			if !s.employees.Save(employees) {
				return ErrStorage
			}
			return nil
		}
	}
	return fmt.Errorf("%w: employee %s", ErrNotFound, id)
}

// Deactivate clears the active flag, removing the employee from login and
// from rental assignment.
func (s *EmployeeService) Deactivate(id string) error {
	employees := s.employees.Load()
	for i := range employees {
		if employees[i].ID == id {
			employees[i].Active = false
			if !s.employees.Save(employees) {
				return ErrStorage
			}
			logger.Info("Employee deactivated", "employee_id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: employee %s", ErrNotFound, id)
}

// FindByID returns the employee with the given identifier.
func (s *EmployeeService) FindByID(id string) (*domain.Employee, error) {
	employees := s.employees.Load()
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, fmt.Errorf("%w: employee %s", ErrNotFound, id)
}

// List returns every employee in insertion order.
func (s *EmployeeService) List() []domain.Employee {
	return s.employees.Load()
}

func ensureEmployeeUnique(employees []domain.Employee, nationalID, username, excludeID string) error {
	digits := validate.Digits(nationalID)
	for i := range employees {
		e := &employees[i]
		if e.ID == excludeID || !e.Active {
			continue
		}
		if validate.Digits(e.NationalID) == digits {
			return fmt.Errorf("%w: national id %s already registered", ErrValidation, nationalID)
		}
		if strings.EqualFold(e.Username, username) {
			return fmt.Errorf("%w: username %q already taken", ErrValidation, username)
		}
	}
	return nil
}
