// Package credentials keeps connection passwords in the OS keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "pgdesk"

// ErrPasswordNotFound is returned when the keyring holds no password for a connection
var ErrPasswordNotFound = errors.New("password not found in keyring")

// Store reads and writes passwords keyed by connection id
type Store struct {
	service string
}

// NewStore creates a password store backed by the OS keyring
func NewStore() *Store {
	return &Store{service: serviceName}
}

// Save stores the password of a connection. Empty passwords are not stored.
func (s *Store) Save(connectionID, password string) error {
	if password == "" {
		return nil
	}
	if err := keyring.Set(s.service, connectionID, password); err != nil {
		return fmt.Errorf("failed to save password to keyring: %w", err)
	}
	return nil
}

// Get returns the password of a connection
func (s *Store) Get(connectionID string) (string, error) {
	password, err := keyring.Get(s.service, connectionID)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrPasswordNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password from keyring: %w", err)
	}
	return password, nil
}

// Delete removes the password of a connection. Deleting a missing password is not an error.
func (s *Store) Delete(connectionID string) error {
	err := keyring.Delete(s.service, connectionID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}
