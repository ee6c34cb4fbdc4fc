package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/jonmartinstorm/statsnusern/internal/config"
)

type App struct {
	Cfg       config.Config
	Collector Collector
	Renderer  Renderer
}

func NewApp(cfg config.Config, collector Collector, renderer Renderer) *App {
	return &App{
		Cfg:       cfg,
		Collector: collector,
		Renderer:  renderer,
	}
}

// Run samler inn statistikk og sender den ferdige rapporten til renderingen.
func (a *App) Run(ctx context.Context) error {
	slog.Info("🔁 Samler GitHub-statistikk", "bruker", a.Cfg.Username)

	report, err := a.Collector.CollectAll(ctx)
	if err != nil {
		return fmt.Errorf("innsamling feilet: %w", err)
	}

	slog.Info("📝 Genererer SVG-filer", "dir", a.Cfg.OutputDir)
	if err := a.Renderer.Render(report); err != nil {
		return fmt.Errorf("rendering feilet: %w", err)
	}
	return nil
}

func RunApp(ctx context.Context, cfg config.Config, deps RunnerDeps) error {
	return RunAppSafe(ctx, cfg, deps)
}

// RunAppSafe kjører appen og gjør panikk om til en vanlig feil.
func RunAppSafe(ctx context.Context, cfg config.Config, deps RunnerDeps) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Runner krasjet", "panic", r)
			err = fmt.Errorf("uventet feil: %v", r)
		}
	}()

	start := time.Now()
	LogExclusions(cfg)

	collector, err := deps.NewCollector(cfg)
	if err != nil {
		return err
	}

	app := NewApp(cfg, collector, deps.NewRenderer(cfg))
	if err := app.Run(ctx); err != nil {
		slog.Debug("Runner feilet", "error", err)
		return err
	}

	LogMemoryStats()
	slog.Info("✅ Ferdig!", "varighet", time.Since(start).String())
	return nil
}

// LogExclusions skriver ut hva som holdes utenfor statistikken.
func LogExclusions(cfg config.Config) {
	if len(cfg.ExcludedRepos) > 0 {
		slog.Info("Ekskluderer repos", "repos", cfg.ExcludedRepos)
	}
	if len(cfg.ExcludedLangs) == 0 {
		slog.Info("Ekskluderer språk", "språk", []string{"HTML"}, "merknad", "standard")
	} else {
		slog.Info("Ekskluderer språk", "språk", cfg.ExcludedLangs, "merknad", "i tillegg til HTML")
	}
	if cfg.ExcludeForked {
		slog.Info("Ekskluderer forks og repos brukeren bare har bidratt til")
	}
}

func LogMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	slog.Debug("Minnebruk",
		"alloc", ByteSize(m.Alloc),
		"totalAlloc", ByteSize(m.TotalAlloc),
		"sys", ByteSize(m.Sys),
		"numGC", m.NumGC)
}

func ByteSize(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := unit, 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
