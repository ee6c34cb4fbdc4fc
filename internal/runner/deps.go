package runner

import (
	"context"
	"fmt"

	"github.com/jonmartinstorm/statsnusern/internal/cache"
	"github.com/jonmartinstorm/statsnusern/internal/config"
	"github.com/jonmartinstorm/statsnusern/internal/fetcher"
	"github.com/jonmartinstorm/statsnusern/internal/models"
	"github.com/jonmartinstorm/statsnusern/internal/render"
	"github.com/jonmartinstorm/statsnusern/internal/stats"
)

type Collector interface {
	CollectAll(ctx context.Context) (*models.Report, error)
}

type Renderer interface {
	Render(report *models.Report) error
}

// RunnerDeps bygger de ekte avhengighetene fra konfigurasjonen.
type RunnerDeps interface {
	NewCollector(cfg config.Config) (Collector, error)
	NewRenderer(cfg config.Config) Renderer
}

type RealDeps struct{}

func (RealDeps) NewCollector(cfg config.Config) (Collector, error) {
	responseCache, err := cache.New(cfg.CacheDir, cfg.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("kunne ikke opprette cache: %w", err)
	}

	client := fetcher.NewGitHubClient(fetcher.ClientOptions{
		Token:         cfg.Token,
		MaxConcurrent: cfg.MaxConcurrent,
	}, responseCache)

	return stats.NewCollector(client, stats.Options{
		Username:      cfg.Username,
		ExcludedRepos: cfg.ExcludedRepos,
		ExcludedLangs: cfg.ExcludedLangs,
		ExcludeForked: cfg.ExcludeForked,
	}), nil
}

func (RealDeps) NewRenderer(cfg config.Config) Renderer {
	return render.NewFileRenderer(cfg.OutputDir, cfg.MaxLanguages)
}
