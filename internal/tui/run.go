package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
	"github.com/rshade/artgrid/internal/selection"
)

// RunOptions configures RunGrid.
type RunOptions struct {
	StartPage int
	MaxTarget int
	Logger    zerolog.Logger
}

// RunGrid runs the interactive grid over ctrl until the user quits.
// The selection engine shares fetcher with ctrl and reports walk progress to the view.
func RunGrid(ctx context.Context, ctrl *pagination.Controller, fetcher artwork.Fetcher, opts RunOptions) error {
	var program *tea.Program

	engine, err := selection.NewEngine(fetcher, ctrl,
		selection.WithLogger(logging.ComponentLogger(opts.Logger, "selection")),
		selection.WithMaxTarget(opts.MaxTarget),
		selection.WithProgress(func(p selection.Progress) {
			program.Send(selectionProgressMsg(p))
		}),
	)
	if err != nil {
		return fmt.Errorf("creating selection engine: %w", err)
	}

	model := NewGridModel(ctx, ctrl, engine,
		WithGridLogger(logging.ComponentLogger(opts.Logger, "tui")),
		WithStartPage(opts.StartPage),
	)
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err = program.Run(); err != nil {
		return fmt.Errorf("running grid: %w", err)
	}
	return nil
}
