package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Observa o catálogo e mantém o vocabulário atualizado",
		Long: `Watches the catalog database file and, whenever the ingestion step
rewrites it, reloads the suggestion vocabulary and drops the response
cache. Runs until interrupted. Requires a file-backed catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			// Background sweeper keeps the cache honest between reloads.
			a.engine.Cache().Start(ctx, nil)

			slog.Info("observando catálogo", slog.String("path", a.store.Path()))
			return a.store.Watch(ctx, func() {
				slog.Info("catálogo atualizado, recarregando vocabulário")
				a.engine.Cache().Clear()
				if err := a.engine.RefreshVocabulary(ctx); err != nil {
					slog.Warn("falha ao recarregar vocabulário",
						slog.String("error", err.Error()))
				}
			})
		},
	}

	return cmd
}
