package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
	"github.com/rshade/artgrid/internal/tui"
)

// errNotInteractive is returned by browse when stdout or stdin is not a terminal.
var errNotInteractive = errors.New("browse needs an interactive terminal; use 'artgrid page' or 'artgrid select' instead")

// newBrowseCmd creates the browse command, which runs the interactive grid.
func newBrowseCmd() *cobra.Command {
	var startPage int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse artworks in an interactive grid",
		Long: `Opens a paginated grid of artworks.

Keys: ←/p and →/n change page, s selects the first N rows starting at the
displayed page, space toggles the row under the cursor, c clears the selection,
v shows the selected rows, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tui.DetectOutputMode(false) != tui.OutputModeInteractive {
				return errNotInteractive
			}
			if err := pagination.ValidatePage(startPage); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			cfg := config.GetGlobalConfig()

			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}
			ctrl, err := pagination.NewController(client, cfg.Pagination.PageSize,
				pagination.WithLogger(logging.ComponentLogger(*log, "pagination")))
			if err != nil {
				return err
			}

			return tui.RunGrid(ctx, ctrl, client, tui.RunOptions{
				StartPage: startPage,
				MaxTarget: cfg.Selection.MaxTarget,
				Logger:    *log,
			})
		},
	}

	cmd.Flags().IntVar(&startPage, "page", pagination.FirstPage, "page to open after the first page loads")
	return cmd
}
