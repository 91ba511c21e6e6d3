package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/multaguia/multaguia/configs"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Cria um .multaguia.yaml com os padrões comentados",
		RunE: func(cmd *cobra.Command, args []string) error {
			const name = ".multaguia.yaml"

			if _, err := os.Stat(name); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", name)
			}

			if err := os.WriteFile(name, []byte(configs.ConfigTemplate), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}

			fmt.Printf("%s criado\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
