package cli

import (
	"context"
	"fmt"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
)

// newClient builds the artworks API client from cfg.
func newClient(ctx context.Context, cfg *config.Config) (*artwork.Client, error) {
	log := logging.FromContext(ctx)
	client, err := artwork.NewClient(cfg.API.BaseURL,
		artwork.WithTimeout(cfg.API.Timeout),
		artwork.WithUserAgent(cfg.API.UserAgent),
		artwork.WithLogger(logging.ComponentLogger(*log, "artwork")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

// openPage creates a controller over fetcher and displays page.
func openPage(
	ctx context.Context,
	fetcher artwork.Fetcher,
	cfg *config.Config,
	page int,
) (*pagination.Controller, error) {
	log := logging.FromContext(ctx)

	if err := pagination.ValidatePage(page); err != nil {
		return nil, fmt.Errorf("--page: %w", err)
	}

	ctrl, err := pagination.NewController(fetcher, cfg.Pagination.PageSize,
		pagination.WithLogger(logging.ComponentLogger(*log, "pagination")))
	if err != nil {
		return nil, err
	}

	if page == pagination.FirstPage {
		err = ctrl.Activate(ctx)
	} else {
		err = ctrl.RequestPage(ctx, page)
	}
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Int("page", page).Msg("failed to load page")
		return nil, err
	}
	return ctrl, nil
}
