package app

import (
	"context"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/bookfinder/pkg/app/screens"
	"github.com/kerbaras/bookfinder/pkg/config"
	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/logger"
	"github.com/kerbaras/bookfinder/pkg/sources"
)

const coverBurst = 8

type App struct {
	cfg config.Config
}

func NewApp(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// NewSource builds the Open Library client described by cfg.
func NewSource(cfg config.Config) *sources.OpenLibrary {
	return sources.NewOpenLibrary(
		sources.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		sources.WithSearchURL(cfg.SearchURL),
	)
}

func NewResolver(cfg config.Config) covers.Resolver {
	return covers.NewResolver(cfg.CoversURL, cfg.GridPlaceholder, cfg.DetailPlaceholder)
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := screens.Options{
		Context:  ctx,
		Source:   NewSource(a.cfg),
		Resolver: NewResolver(a.cfg),
	}
	if a.cfg.RenderCovers {
		opts.Loader = covers.NewLoader(
			covers.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout}),
			covers.WithRate(a.cfg.CoverRate, coverBurst),
		)
	}

	logger.For(ctx).WithField("covers", a.cfg.RenderCovers).Info("starting bookfinder")

	model := screens.NewRootScreen(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
