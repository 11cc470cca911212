package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
)

type pageParams struct {
	page   int
	output string
}

// newPageCmd creates the page command, which prints one page of artworks.
func newPageCmd() *cobra.Command {
	var params pageParams

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one page of artworks",
		Example: `  # Print the first page
  artgrid page

  # Print page 4 as newline-delimited JSON
  artgrid page --page 4 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePage(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.page, "page", pagination.FirstPage, "page number (1-based)")
	cmd.Flags().StringVar(&params.output, "output", "", "output format (table, json, ndjson; default from config)")
	return cmd
}

func executePage(cmd *cobra.Command, params pageParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutput(params.output, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	ctrl, err := openPage(ctx, client, cfg, params.page)
	if err != nil {
		return err
	}

	state := ctrl.Snapshot()
	log.Debug().Ctx(ctx).Int("page", state.PageIndex).Int("records", len(state.Records)).Msg("page loaded")
	return renderPage(cmd.OutOrStdout(), format, state)
}

// resolveOutput returns flagValue, or the configured default when it is empty.
func resolveOutput(flagValue string, cfg *config.Config) (string, error) {
	format := flagValue
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if !config.IsValidOutputFormat(format) {
		return "", unsupportedFormat(format)
	}
	return format, nil
}
