package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"autofacil/internal/domain"
	"autofacil/internal/idgen"
	"autofacil/internal/logger"
	"autofacil/internal/repository/jsonstore"
	"autofacil/internal/validate"
)

// ClientService manages the client catalog. Records are soft-deactivated,
// never physically deleted.
type ClientService struct {
	clients *jsonstore.Store[domain.Client]
}

func NewClientService(stores *jsonstore.Stores) *ClientService {
	return &ClientService{clients: stores.Clients}
}

// RegisterClientInput carries the fields required to register a client.
type RegisterClientInput struct {
	Name       string
	NationalID string
	Email      string
	Phone      string
	PostalCode string
	Address    string
	Password   string
}

// Register creates a new active client. The national id must be valid and
// unique across active clients (punctuation ignored).
func (s *ClientService) Register(in RegisterClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validate.CPF(in.NationalID) {
		return nil, fmt.Errorf("%w: invalid national id %q", ErrValidation, in.NationalID)
	}
	if in.Email != "" && !validate.Email(in.Email) {
		return nil, fmt.Errorf("%w: invalid email %q", ErrValidation, in.Email)
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	clients := s.clients.Load()
	if err := ensureClientNationalIDUnique(clients, in.NationalID, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	client := domain.Client{
		ID:           idgen.NewClientID(),
		Name:         strings.TrimSpace(in.Name),
		NationalID:   in.NationalID,
		Email:        in.Email,
		Phone:        in.Phone,
		PostalCode:   in.PostalCode,
		Address:      in.Address,
		PasswordHash: string(hash),
		RegisteredOn: domain.Today(),
		Active:       true,
	}

	clients = append(clients, client)
	if !s.clients.Save(clients) {
		return nil, ErrStorage
	}
	logger.Info("Client registered", "client_id", client.ID)
	return &client, nil
}

// Update replaces the stored record matching updated.ID. The password hash
// is carried over; use SetPassword to change credentials.
func (s *ClientService) Update(updated *domain.Client) error {
	if !validate.CPF(updated.NationalID) {
		return fmt.Errorf("%w: invalid national id %q", ErrValidation, updated.NationalID)
	}
	if updated.Email != "" && !validate.Email(updated.Email) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, updated.Email)
	}

	clients := s.clients.Load()
	if err := ensureClientNationalIDUnique(clients, updated.NationalID, updated.ID); err != nil {
		return err
	}

	for i := range clients {
		if clients[i].ID == updated.ID {
			updated.PasswordHash = clients[i].PasswordHash
			updated.RegisteredOn = clients[i].RegisteredOn
			clients[i] = *updated
			if !s.clients.Save(clients) {
				return ErrStorage
			}
			return nil
		}
	}
	return fmt.Errorf("%w: client %s", ErrNotFound, updated.ID)
}

// SetPassword replaces the client's credential.
func (s *ClientService) SetPassword(id, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	clients := s.clients.Load()
	for i := range clients {
		if clients[i].ID == id {
			clients[i].PasswordHash = string(hash)
			if !s.clients.Save(clients) {
				return ErrStorage
			}
			return nil
		}
	}
	return fmt.Errorf("%w: client %s", ErrNotFound, id)
}

// Deactivate clears the active flag, hiding the client from login and new
// rentals while preserving history.
func (s *ClientService) Deactivate(id string) error {
	clients := s.clients.Load()
	for i := range clients {
		if clients[i].ID == id {
			clients[i].Active = false
			if !s.clients.Save(clients) {
				return ErrStorage
			}
			logger.Info("Client deactivated", "client_id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: client %s", ErrNotFound, id)
}

// FindByID returns the client with the given identifier.
func (s *ClientService) FindByID(id string) (*domain.Client, error) {
	clients := s.clients.Load()
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
}

// List returns every client in insertion order.
func (s *ClientService) List() []domain.Client {
	return s.clients.Load()
}

func ensureClientNationalIDUnique(clients []domain.Client, nationalID, excludeID string) error {
	digits := validate.Digits(nationalID)
	for i := range clients {
		c := &clients[i]
		if c.ID == excludeID || !c.Active {
			continue
		}
		if validate.Digits(c.NationalID) == digits {
			return fmt.Errorf("%w: national id %s already registered", ErrValidation, nationalID)
		}
	}
	return nil
}
