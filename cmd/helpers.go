package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/analyzer"
	"github.com/ziadkadry99/flowdoc/internal/config"
	"github.com/ziadkadry99/flowdoc/internal/loader"
	"github.com/ziadkadry99/flowdoc/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly
// error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `flowdoc init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyInputFlag lets --input override the configured input directory.
func applyInputFlag(cmd *cobra.Command, cfg *config.Config) {
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		cfg.InputDir = input
	}
}

// runAnalysis loads every flow document, registers all flows so the
// resolver is fully populated before any labels are derived, then
// processes each flow through both engines.
func runAnalysis(cfg *config.Config, withProgress bool) (*analyzer.Analyzer, error) {
	flows, err := (&loader.Loader{
		RootDir: cfg.InputDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}).Load()
	if err != nil {
		return nil, err
	}
	if len(flows) == 0 {
		return nil, fmt.Errorf("no flow documents found under %s", cfg.InputDir)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d flows from %s\n", len(flows), cfg.InputDir)
	}

	a, err := analyzer.New(cfg)
	if err != nil {
		return nil, err
	}

	for _, flow := range flows {
		a.Register(flow)
	}

	var reporter progress.Reporter
	if withProgress {
		reporter = progress.NewReporter()
		reporter.Start(len(flows))
	}
	for i, flow := range flows {
		if err := a.Process(flow); err != nil {
			if reporter != nil {
				reporter.Finish()
			}
			return nil, err
		}
		if reporter != nil {
			reporter.Update(i+1, flow.Name)
		}
	}
	if reporter != nil {
		reporter.Finish()
	}
	return a, nil
}
