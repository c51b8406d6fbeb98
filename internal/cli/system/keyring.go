package system

import (
	"errors"
	"fmt"

	"github.com/quietloop/rhythm/internal/cli"
	"github.com/quietloop/rhythm/internal/keyring"
)

// KeyringSetCmd stores the postgres database password in the OS keyring.
type KeyringSetCmd struct {
	Password string `arg:"" help:"Database password to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if cmd.Password == "" {
		return errors.New("password must not be empty")
	}
	if err := keyring.SetDatabasePassword(cmd.Password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	fmt.Println("✓ Database password stored in OS keyring")
	return nil
}

// KeyringDeleteCmd removes the stored database password from the OS keyring.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteDatabasePassword()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no database password found in keyring")
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	fmt.Println("✓ Database password deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring is available")
	} else {
		fmt.Println("❌ OS keyring is not available")
		fmt.Println("   Use the RHYTHM_DB_PASSWORD environment variable instead")
	}
	return nil
}

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the database password in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the database password from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
}
