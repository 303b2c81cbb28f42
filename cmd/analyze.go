package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/dot"
	"github.com/ziadkadry99/flowdoc/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze exported flows and generate the full report",
	Long: `Loads every exported flow document, builds the dependency and
control-flow graphs, and writes the markdown report plus DOT graph
files to the output directory.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	analyzeCmd.Flags().String("output", "", "report output directory (overrides config)")
	analyzeCmd.Flags().Bool("html", false, "also render the report to a static HTML site")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}

	a, err := runAnalysis(cfg, true)
	if err != nil {
		return err
	}

	gen := &report.Generator{OutputDir: cfg.OutputDir}
	pages, err := gen.Generate(a)
	if err != nil {
		return err
	}

	// DOT files go next to the markdown so external renderers can pick
	// them up directly.
	graphDir := filepath.Join(cfg.OutputDir, "graphs")
	if err := os.MkdirAll(graphDir, 0o755); err != nil {
		return fmt.Errorf("create graphs dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(graphDir, "dependencies.dot"),
		[]byte(dot.Dependencies(a.Dependencies())), 0o644); err != nil {
		return fmt.Errorf("writing dependency graph: %w", err)
	}
	graphs := 1
	for _, flow := range a.Flows() {
		path := filepath.Join(graphDir, report.Slug(flow.Name)+".dot")
		if err := os.WriteFile(path, []byte(flow.GraphDOT), 0o644); err != nil {
			return fmt.Errorf("writing graph for %s: %w", flow.Name, err)
		}
		graphs++
	}

	if html, _ := cmd.Flags().GetBool("html"); html {
		siteDir := filepath.Join(cfg.OutputDir, "site")
		rendered, err := report.RenderHTML(cfg.OutputDir, siteDir)
		if err != nil {
			return err
		}
		fmt.Printf("Rendered %d HTML pages to %s\n", rendered, siteDir)
	}

	fmt.Printf("Wrote %d report pages and %d graph files to %s\n", pages, graphs, cfg.OutputDir)
	if a.Dependencies().HasCycles() {
		fmt.Fprintln(os.Stderr, "Warning: the dependency graph contains cycles; run `flowdoc cycles` for details")
	}
	return nil
}
