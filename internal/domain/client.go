package domain

type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NationalID   string    `json:"national_id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PostalCode   string    `json:"postal_code"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"password_hash"`
	RegisteredOn Date      `json:"registered_on"`
	LastLogin    *DateTime `json:"last_login,omitempty"`
	Active       bool      `json:"active"`
}
