package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/archive"
	"github.com/pslits/oai-pmh-sub003/internal/config"
	"github.com/pslits/oai-pmh-sub003/internal/logging"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// resolveConfigDir returns the repository directory.
// Priority (highest to lowest): --config flag > OAIPMH_CONFIG > "."
func resolveConfigDir(cmd *cobra.Command) string {
	if dir, err := cmd.Flags().GetString("config"); err == nil && dir != "" {
		return dir
	}
	if dir := os.Getenv(config.EnvConfigDir); dir != "" {
		return dir
	}
	return "."
}

// newLogger builds the stderr logger shared by all commands.
func newLogger(verbose bool) oaipmh.Logger {
	return logging.NewConsoleLogger(os.Stderr, verbose)
}

// loadRepository loads godotenv, reads repository.yaml from the resolved
// config directory and builds the archive store from it.
func loadRepository(cmd *cobra.Command) (*archive.Store, oaipmh.Logger, error) {
	_ = godotenv.Load()

	verbose := getVerboseFlag(cmd)
	logger := newLogger(verbose)
	dir := resolveConfigDir(cmd)

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Repository directory: %s\n", dir)
	}

	f, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, logger, fmt.Errorf("no %s found in %q: %w\n\nTip: write a starter file with 'oaipmh init %s',\nor point --config (or $%s) at the repository directory",
				config.ConfigFileName, dir, oaipmh.ErrConfigInvalid, dir, config.EnvConfigDir)
		}
		return nil, logger, fmt.Errorf("failed to read %s: %v: %w", config.ConfigFileName, err, oaipmh.ErrConfigInvalid)
	}

	store, err := f.Build(logger)
	if err != nil {
		return nil, logger, err
	}
	return store, logger, nil
}
