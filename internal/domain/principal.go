package domain

// Role is the access level derived from the authenticated principal.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleClient Role = "CLIENT"
)

// Principal is the identity bound to an authenticated session: either an
// employee or a client, never both.
type Principal struct {
	Role     Role
	Employee *Employee // set when Role is ADMIN or STAFF
	Client   *Client   // set when Role is CLIENT
}

// EmployeePrincipal tags an employee with the role its record carries.
func EmployeePrincipal(e *Employee) *Principal {
	role := RoleStaff
	if e.IsAdmin() {
		role = RoleAdmin
	}
	return &Principal{Role: role, Employee: e}
}

// ClientPrincipal tags a client session.
func ClientPrincipal(c *Client) *Principal {
	return &Principal{Role: RoleClient, Client: c}
}

// ID returns the identifier of the underlying record.
func (p *Principal) ID() string {
	switch {
	case p.Employee != nil:
		return p.Employee.ID
	case p.Client != nil:
		return p.Client.ID
	}
	return ""
}

// Name returns the display name of the underlying record.
func (p *Principal) Name() string {
	switch {
	case p.Employee != nil:
		return p.Employee.Name
	case p.Client != nil:
		return p.Client.Name
	}
	return ""
}
