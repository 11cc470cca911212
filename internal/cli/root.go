package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
)

// annotationTolerateConfig marks commands that must run even when the config file is broken.
const annotationTolerateConfig = "artgrid/tolerate-config"

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the artgrid CLI.
// It wires up configuration, logging and tracing, and the browse, page, select and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "artgrid",
		Short:         "Browse and select artworks across pages",
		Long:          "artgrid: A paginated artwork browser with cross-page \"select first N\" selection",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $ARTGRID_HOME/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "artworks API base URL (overrides config file and env var)")
	cmd.PersistentFlags().Int("page-size", 0, "rows per page, 1-100 (overrides config file and env var)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(newBrowseCmd(), newPageCmd(), newSelectCmd(), newConfigCmd())
	return cmd
}

// loadConfig reads the config file and environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if cmd.Annotations[annotationTolerateConfig] != "true" {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		cmd.PrintErrf("Warning: ignoring configuration: %v\n", err)
		cfg = config.Default()
	}

	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("api-url")
	}
	if cmd.Flags().Changed("page-size") {
		cfg.Pagination.PageSize, _ = cmd.Flags().GetInt("page-size")
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Browse artworks interactively
  artgrid browse

  # Print page 3 as JSON
  artgrid page --page 3 --output json

  # Select the first 30 rows starting at page 2
  artgrid select --count 30 --page 2

  # Use a different API and page size
  artgrid page --api-url http://localhost:8080/api/v1 --page-size 25

  # Initialize configuration
  artgrid config init`
