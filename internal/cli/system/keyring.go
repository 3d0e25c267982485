package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/engage/internal/keyring"
	"github.com/julianstephens/engage/internal/storage"
)

type CredentialsCmd struct {
	Set    CredentialsSetCmd    `cmd:"" help:"Store the Postgres connection string in the OS keyring."`
	Clear  CredentialsClearCmd  `cmd:"" help:"Remove the stored connection string."`
	Status CredentialsStatusCmd `cmd:"" help:"Show whether a connection string is stored."`
}

type CredentialsSetCmd struct {
	ConnString string `arg:"" help:"Postgres connection string, password included."`
}

func (c *CredentialsSetCmd) Run() error {
	if !storage.IsPostgresConnString(c.ConnString) {
		return fmt.Errorf("expected a postgres:// or postgresql:// connection string")
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type CredentialsClearCmd struct{}

func (c *CredentialsClearCmd) Run() error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type CredentialsStatusCmd struct{}

func (c *CredentialsStatusCmd) Run() error {
	if !keyring.IsAvailable() {
		fmt.Println("OS keyring is not available on this system.")
		return nil
	}
	if _, err := keyring.GetConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("A connection string is stored.")
	return nil
}
