package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
	"github.com/rshade/artgrid/internal/selection"
	"github.com/rshade/artgrid/internal/tui"
)

type selectParams struct {
	count  string
	page   int
	output string
	quiet  bool
}

// newSelectCmd creates the select command, which selects the first N rows
// starting at a page and prints them.
func newSelectCmd() *cobra.Command {
	var params selectParams

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the first N rows starting at a page",
		Long: `Loads the given page, then selects the first N rows beginning with that page,
fetching later pages one at a time until N rows are collected or the data runs out.

If a page fetch fails part way, the rows collected so far are printed, a warning is
written to stderr and the command exits with code 2.`,
		Example: `  # Select the first 15 rows from page 1
  artgrid select --count 15

  # Select 100 rows starting at page 3 as JSON
  artgrid select --count 100 --page 3 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSelect(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.count, "count", "", "number of rows to select (required)")
	cmd.Flags().IntVar(&params.page, "page", pagination.FirstPage, "page to start from (1-based)")
	cmd.Flags().StringVar(&params.output, "output", "", "output format (table, json, ndjson; default from config)")
	cmd.Flags().BoolVar(&params.quiet, "quiet", false, "do not report progress on stderr")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}

func executeSelect(cmd *cobra.Command, params selectParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	target, err := selection.ParseTargetCount(params.count)
	if err != nil {
		return fmt.Errorf("--count: %w", err)
	}
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

	opts := []selection.Option{
		selection.WithLogger(logging.ComponentLogger(*log, "selection")),
		selection.WithMaxTarget(cfg.Selection.MaxTarget),
	}
	if !params.quiet {
		opts = append(opts, selection.WithProgress(progressReporter(cmd.ErrOrStderr())))
	}
	engine, err := selection.NewEngine(client, ctrl, opts...)
	if err != nil {
		return err
	}

	result, err := engine.SelectFirst(ctx, target)
	if err != nil {
		return fmt.Errorf("selecting rows: %w", err)
	}

	if err = renderSelection(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	return reportShortResult(cmd.ErrOrStderr(), result)
}

// progressReporter writes one line per fetched page.
func progressReporter(w io.Writer) selection.ProgressFunc {
	return func(p selection.Progress) {
		_, _ = fmt.Fprintf(w, "fetched page %d: %s/%s rows (%d of ~%d pages)\n",
			p.Page, tui.FormatCount(p.Collected), tui.FormatCount(p.Target), p.PagesFetched, p.PagesEstimated)
	}
}

// reportShortResult warns about a result below its target. A failed walk
// becomes an ExitError so the process exits non-zero.
func reportShortResult(w io.Writer, r selection.Result) error {
	if !r.IsShort() {
		return nil
	}
	switch r.Stop {
	case selection.StopExhausted:
		_, _ = fmt.Fprintf(w, "Warning: only %s of %s rows exist from page %d on\n",
			tui.FormatCount(r.Len()), tui.FormatCount(r.Target), r.StartPage)
	case selection.StopFailed:
		_, _ = fmt.Fprintf(w, "Warning: selection stopped after %s of %s rows: %v\n",
			tui.FormatCount(r.Len()), tui.FormatCount(r.Target), r.Err)
		return &ExitError{ExitCode: ExitCodeIncomplete, Reason: "selection incomplete"}
	case selection.StopSatisfied:
	}
	return nil
}
