package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/compvet/compvet/internal/adapters/outbound/config"
	"github.com/compvet/compvet/internal/adapters/outbound/gitinfo"
	"github.com/compvet/compvet/internal/adapters/outbound/history"
	"github.com/compvet/compvet/internal/adapters/outbound/loader"
	registryAdapter "github.com/compvet/compvet/internal/adapters/outbound/registry"
	"github.com/compvet/compvet/internal/adapters/outbound/reputation"
	"github.com/compvet/compvet/internal/adapters/outbound/tui"
	"github.com/compvet/compvet/internal/application"
	"github.com/compvet/compvet/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		jsonOutput     bool
		strict         bool
		updateRegistry bool
		verbose        bool
		noColor        bool
		ciMode         bool
		validators     string
		debug          bool
	)

	cmd := &cobra.Command{
		Use:   "validate <path> [path ...]",
		Short: "Validate components and score their trustworthiness",
		Long: "Run the validator set over one or more component files or directories. " +
			"Each component gets a 0-100 trust score; the hash registry catches content " +
			"drift between runs.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "compvet"})
			if debug {
				logger.SetLevel(log.DebugLevel)
			}

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

			components, err := collectComponents(args)
			if err != nil {
				return err
			}
			if len(components) == 0 {
				return fmt.Errorf("no components found under %s", strings.Join(args, ", "))
			}

			orchOpts := []application.Option{application.WithLogger(logger)}
			if cfg.ReputationDB != "" {
				db, err := reputation.Open(cfg.ReputationDB)
				if err != nil {
					return fmt.Errorf("opening reputation database: %w", err)
				}
				orchOpts = append(orchOpts, application.WithReputationChecker(db))
			}

			orch := application.NewOrchestrator(cfg, store, orchOpts...)
			opts := domain.Options{
				Strict:         strict,
				UpdateRegistry: updateRegistry,
			}
			if validators != "" {
				opts.Validators = splitAndTrim(validators)
			}

			report := orch.ValidateBatch(components, opts)

			if err := history.New().Save(".", domain.NewRunEntry(report)); err != nil {
				logger.Warn("saving run history", "err", err)
			}

			if jsonOutput {
				out, err := application.JSONReport(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(report, tui.Options{
					Verbose: verbose,
					Colors:  !noColor,
				}))
			}

			if ciMode && report.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d component(s) failed validation",
					report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Promote promotable semantic warnings to errors")
	cmd.Flags().BoolVar(&updateRegistry, "update-registry", false, "Record content hashes as intentional changes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the first few findings per validator")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit non-zero when any component fails")
	cmd.Flags().StringVar(&validators, "validators", "", "Comma-separated validator subset (default: all)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

// collectComponents loads each argument as a file or expands it as a
// directory tree.
func collectComponents(paths []string) ([]domain.Component, error) {
	ld := loader.New(gitinfo.New())

	var components []domain.Component
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if info.IsDir() {
			batch, err := ld.LoadDir(p)
			if err != nil {
				return nil, err
			}
			components = append(components, batch...)
			continue
		}
		c, err := ld.Load(p)
		if err != nil {
			return nil, err
		}
		components = append(components, *c)
	}
	return components, nil
}

func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
