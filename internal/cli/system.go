package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/keyring"
	"github.com/julianstephens/fitbot/internal/utils"
)

// InitCmd creates the backing store schema.
type InitCmd struct{}

func (c *InitCmd) Run(appCtx *Context) error {
	if err := appCtx.Store.Init(); err != nil {
		return err
	}
	defer appCtx.Store.Close()
	fmt.Println("✓ Storage initialized")
	return nil
}

// DoctorCmd runs health checks and diagnostics.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(appCtx *Context) error {
	failures := 0

	if _, err := utils.LoadLocation(appCtx.Config.Timezone); err != nil {
		fmt.Printf("✗ Timezone: %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ Timezone: %s\n", appCtx.Config.Timezone)
	}

	if err := appCtx.Store.Load(); err != nil {
		fmt.Printf("✗ Storage: %v\n", err)
		failures++
	} else {
		if _, err := appCtx.Store.ReadRange(context.Background(), constants.RangePeople); err != nil {
			fmt.Printf("✗ Storage read: %v\n", err)
			failures++
		} else {
			fmt.Println("✓ Storage reachable")
		}
		appCtx.Store.Close()
	}

	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring available")
	} else {
		fmt.Println("✗ OS keyring unavailable (secrets must come from the environment)")
	}

	if len(appCtx.Config.AllowedIDs) == 0 {
		fmt.Println("! Allow-list empty: every chat is admitted")
	} else {
		fmt.Printf("✓ Allow-list: %d id(s)\n", len(appCtx.Config.AllowedIDs))
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	return nil
}

// SecretSetCmd stores a named secret in the OS keyring.
type SecretSetCmd struct {
	Name  string `arg:"" help:"Secret name (e.g. bot-token, database-connection)."`
	Value string `arg:"" help:"Secret value."`
}

func (c *SecretSetCmd) Run(_ *Context) error {
	if err := keyring.SetSecret(c.Name, c.Value); err != nil {
		return err
	}
	fmt.Printf("✓ Secret %q stored\n", c.Name)
	return nil
}

// SecretDeleteCmd removes a named secret from the OS keyring.
type SecretDeleteCmd struct {
	Name string `arg:"" help:"Secret name."`
}

func (c *SecretDeleteCmd) Run(_ *Context) error {
	if err := keyring.DeleteSecret(c.Name); err != nil {
		return err
	}
	fmt.Printf("✓ Secret %q deleted\n", c.Name)
	return nil
}
