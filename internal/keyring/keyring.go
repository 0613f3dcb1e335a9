package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get reads the secret stored for user under the application's service name.
func Get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for user, replacing any previous value.
func Set(user, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", user)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", user, err)
	}
	return nil
}

// Delete removes the secret stored for user.
func Delete(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", user, err)
	}
	return nil
}

// GetAPIKey retrieves the Gemini API key.
func GetAPIKey() (string, error) { return Get(constants.DefaultKeyringUser) }

// SetAPIKey stores the Gemini API key.
func SetAPIKey(key string) error { return Set(constants.DefaultKeyringUser, key) }

// DeleteAPIKey removes the Gemini API key.
func DeleteAPIKey() error { return Delete(constants.DefaultKeyringUser) }

// GetConnectionString retrieves the PostgreSQL connection string.
func GetConnectionString() (string, error) { return Get(constants.DBKeyringUser) }

// SetConnectionString stores the PostgreSQL connection string.
func SetConnectionString(connStr string) error { return Set(constants.DBKeyringUser, connStr) }

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// DeleteConnectionString removes the PostgreSQL connection string.
func DeleteConnectionString() error { return Delete(constants.DBKeyringUser) }
