// Package cmd provides the CLI commands for multaguia.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/multaguia/multaguia/internal/cache"
	"github.com/multaguia/multaguia/internal/config"
	"github.com/multaguia/multaguia/internal/logging"
	"github.com/multaguia/multaguia/internal/search"
	"github.com/multaguia/multaguia/internal/spell"
	"github.com/multaguia/multaguia/internal/store"
	"github.com/multaguia/multaguia/pkg/version"
)

var (
	flagCatalog string
	flagDebug   bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the multaguia CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multaguia",
		Short: "Consulta de infrações de trânsito",
		Long: `multaguia is a read-only lookup service over the Brazilian
traffic-infraction catalog. Queries accept an infraction code
(with or without hyphen) or a free-text fragment of a description.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := logging.DefaultConfig()
			if flagDebug {
				logCfg = logging.DebugConfig()
			}
			logCfg.WriteToStderr = flagDebug

			logger, cleanup, err := logging.Setup(logCfg)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			loggingCleanup = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if loggingCleanup != nil {
				loggingCleanup()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "path to the catalog database (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging to stderr")

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newWarmupCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// app bundles everything a command needs after wiring.
type app struct {
	engine *search.Engine
	store  *store.SQLite
	cfg    *config.Config
}

func (a *app) close() {
	_ = a.store.Close()
}

// setup loads configuration and wires the engine.
func setup(ctx context.Context) (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}

	st, err := store.Open(cfg.CatalogPath, cfg.QueryTimeout())
	if err != nil {
		return nil, err
	}

	corrector := spell.New(spell.Options{
		SimilarityThreshold: cfg.Spell.SimilarityThreshold,
		MaxDistance:         cfg.Spell.LevenshteinMaxDist,
		ScanCap:             cfg.Spell.LevenshteinScanCap,
	})

	engine := search.NewEngine(
		search.Config{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxResults:   cfg.Search.MaxResults,
		},
		st, corrector,
		cache.Config{
			MaxMemoryBytes:  cfg.CacheMaxMemoryBytes(),
			DefaultTTL:      cfg.CacheTTL(),
			CleanupInterval: cfg.CacheCleanupInterval(),
		},
	)

	if err := engine.RefreshVocabulary(ctx); err != nil {
		slog.Warn("vocabulário indisponível, sugestões degradadas",
			slog.String("error", err.Error()))
	}

	return &app{engine: engine, store: st, cfg: cfg}, nil
}
