package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonmartinstorm/statsnusern/internal/cache"
	"github.com/jonmartinstorm/statsnusern/internal/config"
	"github.com/jonmartinstorm/statsnusern/internal/logger"
	"github.com/jonmartinstorm/statsnusern/internal/runner"
)

func main() {
	// .env er valgfri
	_ = godotenv.Load()

	logger.SetupLogger(os.Stdout)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go func() {
		<-ctx.Done()
		slog.Info("SIGTERM mottatt – avbryter pågående kall...")
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Applikasjonen feilet", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		output  string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "statsnusern",
		Short: "Samler GitHub-statistikk for en bruker og lager SVG-kort",
		Long: `statsnusern henter stjerner, forks, bidrag, endrede linjer, visninger og
språkbruk for GITHUB_ACTOR og skriver overview.svg og languages.svg.

Konfigurasjon leses fra en valgfri TOML-fil, deretter miljøvariabler (.env støttes).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetupLogger(cmd.OutOrStdout())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidateConfig(cfgFile)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.OutputDir = output
			}
			cfg.Debug = cfg.Debug || debug
			logger.SetDebug(cfg.Debug)

			return runner.RunApp(cmd.Context(), cfg, runner.RealDeps{})
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML-konfigurasjon (standard: $STATSNUSERN_CONFIG)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "katalog for genererte filer (standard: generated)")
	cmd.Flags().BoolVar(&debug, "debug", false, "skru på debug-logging")

	cmd.AddCommand(newClearCacheCmd(&cfgFile))
	return cmd
}

func newClearCacheCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Sletter alle lagrede REST-svar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigWithEnv(*cfgFile, os.Getenv)
			if err != nil {
				return err
			}

			c, err := cache.New(cfg.CacheDir, cfg.CacheTTL())
			if err != nil {
				return err
			}
			if err := c.Clear(); err != nil {
				return err
			}

			slog.Info("🧹 Cache tømt", "dir", c.Dir())
			return nil
		},
	}
}
