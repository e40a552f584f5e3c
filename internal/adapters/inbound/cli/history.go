package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compvet/compvet/internal/adapters/outbound/history"
	"github.com/compvet/compvet/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past validation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := history.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading run history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries, tui.Options{Colors: !noColor}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output run entries as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	return cmd
}
