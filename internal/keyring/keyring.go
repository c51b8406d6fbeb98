package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/quietloop/rhythm/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetDatabasePassword retrieves the database password from the OS keyring.
// The password never lives in the config file or the connection string.
func GetDatabasePassword() (string, error) {
	pw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return pw, nil
}

// SetDatabasePassword stores the database password in the OS keyring.
func SetDatabasePassword(pw string) error {
	if pw == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, pw); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteDatabasePassword removes the database password from the OS keyring.
func DeleteDatabasePassword() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks whether the OS keyring is usable. Best effort: a read
// of a nonexistent key distinguishes "empty but working" from "broken".
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
