package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/multaguia/multaguia/internal/normalize"
	"github.com/multaguia/multaguia/internal/search"
	"github.com/multaguia/multaguia/internal/telemetry"
	"github.com/multaguia/multaguia/internal/ui"
)

func newSearchCmd() *cobra.Command {
	var (
		limit  int
		skip   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <termo>",
		Short: "Pesquisa infrações por código ou descrição",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			start := time.Now()
			env, searchErr := a.engine.Search(ctx, args[0], limit, skip)
			recordQuery(args[0], env, time.Since(start))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(env); err != nil {
					return err
				}
			} else {
				ui.NewRenderer(os.Stdout).Envelope(env)
			}

			// The envelope is always well-formed; surface the failure
			// through the exit code without double-printing it.
			if searchErr != nil && len(env.Results) == 0 && env.Message != "" {
				return fmt.Errorf("search: %w", searchErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "maximum results per page")
	cmd.Flags().IntVarP(&skip, "skip", "s", 0, "results to skip (paging)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw envelope as JSON")

	return cmd
}

// recordQuery persists the query metrics. Best effort: a broken metrics
// store never fails a search.
func recordQuery(query string, env *search.Envelope, elapsed time.Duration) {
	folded := normalize.Fold(query)
	if len([]rune(folded)) < 2 {
		return
	}

	mode := telemetry.QueryModeText
	if normalize.IsNumeric(folded) {
		mode = telemetry.QueryModeCode
	}

	ms, err := telemetry.OpenStore(telemetry.DefaultPath())
	if err != nil {
		slog.Debug("métricas indisponíveis", slog.String("error", err.Error()))
		return
	}
	defer ms.Close()

	if err := ms.Record(telemetry.QueryEvent{
		Term:        folded,
		Mode:        mode,
		ResultCount: len(env.Results),
		Latency:     elapsed,
		Timestamp:   time.Now(),
	}); err != nil {
		slog.Debug("falha ao gravar métricas", slog.String("error", err.Error()))
	}
}
