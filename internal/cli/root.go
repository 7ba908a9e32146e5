package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/fitbot/internal/config"
	"github.com/julianstephens/fitbot/internal/constants"
	"github.com/julianstephens/fitbot/internal/keyring"
	"github.com/julianstephens/fitbot/internal/storage"
)

// Context carries the resolved configuration and store into every command.
type Context struct {
	Config *config.Config
	Store  storage.RangeStore
}

// ResolveStore picks the storage backend: an explicit postgres connection
// string (from the environment or the OS keyring) wins over the sqlite path.
func ResolveStore(cfg *config.Config) (storage.RangeStore, error) {
	dsn := cfg.PostgresDSN
	if dsn == "" {
		stored, err := keyring.GetSecret(constants.KeyringSecretDSN)
		if err == nil {
			dsn = stored
		}
	}

	if dsn != "" {
		if storage.HasEmbeddedCredentials(dsn) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; use the environment, .pgpass, or 'fitbot secret set %s'", constants.KeyringSecretDSN)
		}
		return storage.NewPostgresStore(dsn), nil
	}

	path, err := expandPath(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(path), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// ConfigDir returns the directory holding the sqlite database and logs.
func ConfigDir(cfg *config.Config) (string, error) {
	path, err := expandPath(cfg.StorePath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
