package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"autofacil/internal/config"
	"autofacil/internal/domain"
	"autofacil/internal/idgen"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/validate"
)

// MaxLoginAttempts is the fixed number of consecutive failed logins after
// which the session must be terminated.
const MaxLoginAttempts = 3

const (
	msgLockedOut       = "Maximum login attempts exceeded. The session will be terminated."
	msgMissingInput    = "Username and password are required."
	msgBadCredentials  = "Incorrect credentials."
	msgLoginSuccessful = "Login successful."
)

// LoginResult carries the outcome of a login attempt.
type LoginResult struct {
	Success   bool
	Message   string
	Principal *domain.Principal
	Role      domain.Role
}

// AuthManager is the process-wide authentication and session authority.
// Construct it once at startup and pass it to every component that needs it.
// Shared mutable state with no locking: the design assumes a single caller
// thread.
type AuthManager struct {
	employees *jsonstore.Store[domain.Employee]
	clients   *jsonstore.Store[domain.Client]

	principal *domain.Principal
	attempts  int
}

// NewAuthManager builds the session authority over the employee and client
// stores. If no employee with the reserved administrative username exists,
// one is created with the configured default credentials — a bootstrap
// convenience so a fresh installation can be entered at all.
func NewAuthManager(stores *jsonstore.Stores, cfg config.AuthConfig) *AuthManager {
	m := &AuthManager{
		employees: stores.Employees,
		clients:   stores.Clients,
	}
	m.ensureDefaultAdmin(cfg)
	return m
}

func (m *AuthManager) ensureDefaultAdmin(cfg config.AuthConfig) {
	employees := m.employees.Load()
	for i := range employees {
		if strings.EqualFold(employees[i].Username, cfg.DefaultAdminUsername) {
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash default admin password", "error", err)
		return
	}

	admin := domain.Employee{
		ID:           idgen.NewEmployeeID(),
		Name:         "System Administrator",
		NationalID:   "000.000.000-00",
		Email:        "admin@autofacil.com",
		Phone:        "(00) 00000-0000",
		Username:     cfg.DefaultAdminUsername,
		PasswordHash: string(hash),
		Role:         domain.EmployeeRoleAdmin,
		AdmittedOn:   domain.Today(),
		RegisteredOn: domain.Today(),
		Active:       true,
	}

	employees = append(employees, admin)
	if !m.employees.Save(employees) {
		logger.Error("Failed to persist default admin user")
		return
	}
	logger.Warn("Default admin user created with well-known credentials; change the password",
		"username", cfg.DefaultAdminUsername)
}

// Login verifies credentials against active employees (by username) and then
// active clients (by national id, punctuation ignored). On success the
// session is set, the last-login timestamp is stamped and the failed-attempt
// counter resets.
func (m *AuthManager) Login(usernameOrNationalID, password string) LoginResult {
	if m.attempts >= MaxLoginAttempts {
		return LoginResult{Success: false, Message: msgLockedOut}
	}

	usernameOrNationalID = strings.TrimSpace(usernameOrNationalID)
	if usernameOrNationalID == "" || strings.TrimSpace(password) == "" {
		m.attempts++
		return m.failure(msgMissingInput)
	}

	employees := m.employees.Load()
	for i := range employees {
		e := &employees[i]
		if !e.Active || !strings.EqualFold(e.Username, usernameOrNationalID) {
			continue
		}
		if !passwordMatches(e.PasswordHash, password) {
			continue
		}

		now := domain.Now()
		e.LastLogin = &now
		m.employees.Save(employees)

		m.principal = domain.EmployeePrincipal(e)
		m.attempts = 0
		logger.Info("Employee logged in", "username", e.Username, "role", m.principal.Role)
		return LoginResult{Success: true, Message: msgLoginSuccessful, Principal: m.principal, Role: m.principal.Role}
	}

	// A client may type the national id with or without punctuation.
	inputDigits := validate.Digits(usernameOrNationalID)
	clients := m.clients.Load()
	for i := range clients {
		c := &clients[i]
		if !c.Active || inputDigits == "" || validate.Digits(c.NationalID) != inputDigits {
			continue
		}
		if !passwordMatches(c.PasswordHash, password) {
			continue
		}

		now := domain.Now()
		c.LastLogin = &now
		m.clients.Save(clients)

		m.principal = domain.ClientPrincipal(c)
		m.attempts = 0
		logger.Info("Client logged in", "client_id", c.ID)
		return LoginResult{Success: true, Message: msgLoginSuccessful, Principal: m.principal, Role: domain.RoleClient}
	}

	m.attempts++
	return m.failure(msgBadCredentials)
}

func (m *AuthManager) failure(message string) LoginResult {
	if m.attempts >= MaxLoginAttempts {
		message = msgLockedOut
	}
	return LoginResult{Success: false, Message: message}
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Logout clears the session and resets the failed-attempt counter.
func (m *AuthManager) Logout() {
	m.principal = nil
	m.attempts = 0
}

// IsLoggedIn reports whether a principal is bound to the session.
func (m *AuthManager) IsLoggedIn() bool {
	return m.principal != nil
}

// Principal returns the authenticated principal, or nil.
func (m *AuthManager) Principal() *domain.Principal {
	return m.principal
}

// IsAdmin reports whether the session belongs to an administrator.
func (m *AuthManager) IsAdmin() bool {
	return m.principal != nil && m.principal.Role == domain.RoleAdmin
}

// IsStaff reports whether the session belongs to an employee (staff or admin).
func (m *AuthManager) IsStaff() bool {
	return m.principal != nil && (m.principal.Role == domain.RoleStaff || m.principal.Role == domain.RoleAdmin)
}

// IsClient reports whether the session belongs to a client.
func (m *AuthManager) IsClient() bool {
	return m.principal != nil && m.principal.Role == domain.RoleClient
}

// LockedOut reports whether the attempt maximum has been reached.
func (m *AuthManager) LockedOut() bool {
	return m.attempts >= MaxLoginAttempts
}

// RemainingAttempts returns how many login attempts are left.
func (m *AuthManager) RemainingAttempts() int {
	remaining := MaxLoginAttempts - m.attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasPermission checks a fixed feature-to-role mapping. Unknown features are
// denied by default.
func (m *AuthManager) HasPermission(feature string) bool {
	if !m.IsLoggedIn() {
		return false
	}

	switch strings.ToLower(feature) {
	case "employees", "register_employee", "edit_employee", "delete_employee":
		return m.IsAdmin()
	case "clients", "vehicles", "rentals", "reports":
		return m.IsStaff()
	case "my_rentals":
		return m.IsClient()
	case "settings", "about":
		return true
	default:
		return false
	}
}

// RequirePermission is a convenience guard returning a state error when the
// session may not use the feature.
func (m *AuthManager) RequirePermission(feature string) error {
	if !m.HasPermission(feature) {
		return fmt.Errorf("%w: feature %q", ErrNotPermitted, feature)
	}
	return nil
}
