// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment-driven settings. Paths left unset resolve to
// defaults under the user's home directory.
type Config struct {
	// DataDir holds persisted state: undo batches, profiles, history.
	DataDir string `env:"RENAMEUTIL_DATA_DIR"`
	// BackupDir is the root under which backups are created.
	BackupDir string `env:"RENAMEUTIL_BACKUP_DIR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"RENAMEUTIL_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment and fills in defaults
// for any unset paths.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(baseDir(), ".renameutil")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(baseDir(), "Documents", "RenameUtilityBackups")
	}
	return cfg, nil
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "."
		}
		return wd
	}
	return home
}
