package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autofacil/internal/config"
	"autofacil/internal/domain"
	"autofacil/internal/repository/jsonstore"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{DefaultAdminUsername: "admin", DefaultAdminPassword: "admin"}
}

func newTestStores(t *testing.T) *jsonstore.Stores {
	t.Helper()
	return jsonstore.NewStores(t.TempDir())
}

func registerStaff(t *testing.T, stores *jsonstore.Stores, username, password string) *domain.Employee {
	t.Helper()
	e, err := NewEmployeeService(stores).Register(RegisterEmployeeInput{
		Name:       "Carlos Pereira",
		NationalID: "111.444.777-35",
		Username:   username,
		Password:   password,
		Role:       domain.EmployeeRoleStaff,
		Salary:     decimal.NewFromInt(3200),
		AdmittedOn: domain.Today(),
	})
	require.NoError(t, err)
	return e
}

func registerClient(t *testing.T, stores *jsonstore.Stores, nationalID, password string) *domain.Client {
	t.Helper()
	c, err := NewClientService(stores).Register(RegisterClientInput{
		Name:       "Maria Silva",
		NationalID: nationalID,
		Email:      "maria@example.com",
		Password:   password,
	})
	require.NoError(t, err)
	return c
}

func TestAuthManager_BootstrapsDefaultAdmin(t *testing.T) {
	stores := newTestStores(t)
	NewAuthManager(stores, testAuthConfig())

	employees := stores.Employees.Load()
	require.Len(t, employees, 1)
	admin := employees[0]
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, domain.EmployeeRoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.NotEqual(t, "admin", admin.PasswordHash, "the credential is stored hashed")

	// A second construction must not create a duplicate.
	NewAuthManager(stores, testAuthConfig())
	assert.Len(t, stores.Employees.Load(), 1)
}

func TestAuthManager_LoginEmployee(t *testing.T) {
	stores := newTestStores(t)
	auth := NewAuthManager(stores, testAuthConfig())

	res := auth.Login("admin", "admin")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, domain.RoleAdmin, res.Role)
	require.NotNil(t, res.Principal)
	assert.Equal(t, "System Administrator", res.Principal.Name())

	assert.True(t, auth.IsLoggedIn())
	assert.True(t, auth.IsAdmin())
	assert.True(t, auth.IsStaff())
	assert.False(t, auth.IsClient())

	// Last-login was stamped and persisted.
	employees := stores.Employees.Load()
	require.Len(t, employees, 1)
	assert.NotNil(t, employees[0].LastLogin)
}

func TestAuthManager_LoginUsernameCaseInsensitive(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	res := auth.Login("ADMIN", "admin")
	assert.True(t, res.Success, res.Message)
}

func TestAuthManager_LoginStaffRole(t *testing.T) {
	stores := newTestStores(t)
	registerStaff(t, stores, "carlos", "secret123")
	auth := NewAuthManager(stores, testAuthConfig())

	res := auth.Login("carlos", "secret123")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, domain.RoleStaff, res.Role)
	assert.False(t, auth.IsAdmin())
	assert.True(t, auth.IsStaff())
}

func TestAuthManager_LoginClientByNationalID(t *testing.T) {
	stores := newTestStores(t)
	client := registerClient(t, stores, "529.982.247-25", "mypassword")
	auth := NewAuthManager(stores, testAuthConfig())

	t.Run("Masked input", func(t *testing.T) {
		res := auth.Login("529.982.247-25", "mypassword")
		require.True(t, res.Success, res.Message)
		assert.Equal(t, domain.RoleClient, res.Role)
		assert.Equal(t, client.ID, res.Principal.ID())
		auth.Logout()
	})

	t.Run("Digits-only input", func(t *testing.T) {
		res := auth.Login("52998224725", "mypassword")
		require.True(t, res.Success, res.Message)
		assert.True(t, auth.IsClient())
		assert.False(t, auth.IsStaff())
		auth.Logout()
	})
}

func TestAuthManager_InactiveUsersCannotLogin(t *testing.T) {
	stores := newTestStores(t)
	client := registerClient(t, stores, "529.982.247-25", "mypassword")
	require.NoError(t, NewClientService(stores).Deactivate(client.ID))

	auth := NewAuthManager(stores, testAuthConfig())
	res := auth.Login("52998224725", "mypassword")
	assert.False(t, res.Success)
}

func TestAuthManager_EmptyInputCountsAsFailedAttempt(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	res := auth.Login("", "admin")
	assert.False(t, res.Success)
	assert.Equal(t, MaxLoginAttempts-1, auth.RemainingAttempts())

	res = auth.Login("admin", "   ")
	assert.False(t, res.Success)
	assert.Equal(t, MaxLoginAttempts-2, auth.RemainingAttempts())
}

func TestAuthManager_Lockout(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	for i := 0; i < MaxLoginAttempts; i++ {
		res := auth.Login("admin", "wrong")
		assert.False(t, res.Success)
	}
	assert.True(t, auth.LockedOut())
	assert.Equal(t, 0, auth.RemainingAttempts())

	// The fourth attempt fails immediately, even with correct credentials.
	res := auth.Login("admin", "admin")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "terminated")
}

func TestAuthManager_LockoutMessageOnThirdFailure(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	auth.Login("admin", "wrong")
	auth.Login("admin", "wrong")
	res := auth.Login("admin", "wrong")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "terminated", "the final failure announces session termination")
}

func TestAuthManager_SuccessResetsAttemptCounter(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	auth.Login("admin", "wrong")
	auth.Login("admin", "wrong")
	require.Equal(t, 1, auth.RemainingAttempts())

	res := auth.Login("admin", "admin")
	require.True(t, res.Success)
	assert.Equal(t, MaxLoginAttempts, auth.RemainingAttempts())
}

func TestAuthManager_LogoutClearsSessionAndCounter(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())

	auth.Login("admin", "wrong")
	require.True(t, auth.Login("admin", "admin").Success)

	auth.Logout()
	assert.False(t, auth.IsLoggedIn())
	assert.Nil(t, auth.Principal())
	assert.Equal(t, MaxLoginAttempts, auth.RemainingAttempts())
}

func TestAuthManager_HasPermission(t *testing.T) {
	stores := newTestStores(t)
	registerStaff(t, stores, "carlos", "secret123")
	registerClient(t, stores, "529.982.247-25", "mypassword")
	auth := NewAuthManager(stores, testAuthConfig())

	t.Run("Not logged in denies everything", func(t *testing.T) {
		assert.False(t, auth.HasPermission("settings"))
		assert.False(t, auth.HasPermission("clients"))
	})

	t.Run("Admin", func(t *testing.T) {
		require.True(t, auth.Login("admin", "admin").Success)
		assert.True(t, auth.HasPermission("employees"))
		assert.True(t, auth.HasPermission("clients"))
		assert.True(t, auth.HasPermission("vehicles"))
		assert.True(t, auth.HasPermission("rentals"))
		assert.True(t, auth.HasPermission("reports"))
		assert.False(t, auth.HasPermission("my_rentals"))
		assert.True(t, auth.HasPermission("settings"))
		assert.True(t, auth.HasPermission("about"))
		assert.False(t, auth.HasPermission("nonexistent"), "unknown features are denied")
		auth.Logout()
	})

	t.Run("Staff", func(t *testing.T) {
		require.True(t, auth.Login("carlos", "secret123").Success)
		assert.False(t, auth.HasPermission("employees"))
		assert.True(t, auth.HasPermission("clients"))
		assert.True(t, auth.HasPermission("rentals"))
		assert.False(t, auth.HasPermission("my_rentals"))
		auth.Logout()
	})

	t.Run("Client", func(t *testing.T) {
		require.True(t, auth.Login("52998224725", "mypassword").Success)
		assert.False(t, auth.HasPermission("employees"))
		assert.False(t, auth.HasPermission("clients"))
		assert.True(t, auth.HasPermission("my_rentals"))
		assert.True(t, auth.HasPermission("settings"))
		auth.Logout()
	})
}

func TestAuthManager_RequirePermission(t *testing.T) {
	auth := NewAuthManager(newTestStores(t), testAuthConfig())
	require.True(t, auth.Login("admin", "admin").Success)

	assert.NoError(t, auth.RequirePermission("employees"))
	err := auth.RequirePermission("my_rentals")
	assert.ErrorIs(t, err, ErrNotPermitted)
}
