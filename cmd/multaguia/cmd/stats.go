package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/multaguia/multaguia/internal/telemetry"
	"github.com/multaguia/multaguia/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var (
		asJSON bool
		top    int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Mostra as métricas locais de consulta",
		Long: `Summarizes the locally recorded query metrics: volume by mode,
most-searched terms, recent queries with no results and the latency
histogram. Metrics never leave this machine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := telemetry.OpenStore(telemetry.DefaultPath())
			if err != nil {
				return err
			}
			defer ms.Close()

			sum, err := ms.Summarize(top)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			ui.NewRenderer(os.Stdout).QueryMetrics(sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")
	cmd.Flags().IntVar(&top, "top", 5, "how many top terms to show")

	return cmd
}
