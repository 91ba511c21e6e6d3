package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/multaguia/multaguia/internal/search"
	"github.com/multaguia/multaguia/internal/ui"
)

func newWarmupCmd() *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "warmup",
		Short: "Executa as consultas de aquecimento e sai",
		Long: `Runs the configured warm-up queries through the full pipeline to
prime the catalog connection and the response cache. Individual
query failures are logged and ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			queries := a.cfg.Warmup.Queries
			if len(queries) == 0 {
				queries = search.DefaultWarmupQueries
			}
			_ = a.engine.Warmup(ctx, queries)

			if showStats {
				ui.NewRenderer(os.Stdout).CacheStats(a.engine.Cache().Stats())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "print cache statistics after warm-up")

	return cmd
}
