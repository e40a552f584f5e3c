package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compvet/compvet/internal/adapters/outbound/config"
	registryAdapter "github.com/compvet/compvet/internal/adapters/outbound/registry"
	"github.com/compvet/compvet/internal/adapters/outbound/tui"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the hash registry",
	}
	cmd.AddCommand(newRegistryListCmd())
	return cmd
}

func newRegistryListCmd() *cobra.Command {
	var (
		jsonOutput bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered component baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			registryPath := cfg.RegistryPath
			if registryPath == "" {
				registryPath = registryAdapter.DefaultPath
			}
			store, err := registryAdapter.Open(registryPath)
			if err != nil {
				return fmt.Errorf("opening hash registry: %w", err)
			}

			entries := store.Entries()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRegistry(entries, tui.Options{Colors: !noColor}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output entries as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	return cmd
}
