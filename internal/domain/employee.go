package domain

import "github.com/shopspring/decimal"

type EmployeeRole string

const (
	EmployeeRoleAdmin EmployeeRole = "ADMIN"
	EmployeeRoleStaff EmployeeRole = "STAFF"
)

type Employee struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	NationalID   string          `json:"national_id"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Salary       decimal.Decimal `json:"salary"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"password_hash"`
	Role         EmployeeRole    `json:"role"`
	AdmittedOn   Date            `json:"admitted_on"`
	RegisteredOn Date            `json:"registered_on"`
	LastLogin    *DateTime       `json:"last_login,omitempty"`
	Active       bool            `json:"active"`
	Notes        string          `json:"notes,omitempty"`
}

// IsAdmin reports whether the employee carries the administrative role.
func (e *Employee) IsAdmin() bool {
	return e.Role == EmployeeRoleAdmin
}
