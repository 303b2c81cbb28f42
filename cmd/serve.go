package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered report with a JSON API",
	Long: `Runs the analysis, renders the HTML report, and serves it locally
together with /api endpoints exposing the deployment order, cycle
report, dependency lists, and usage views as JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.ServePort = port
	}

	a, err := runAnalysis(cfg, true)
	if err != nil {
		return err
	}

	// Render into a scratch directory so serving does not disturb a
	// previously generated report.
	tmpDir, err := os.MkdirTemp("", "flowdoc-site-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	gen := &report.Generator{OutputDir: tmpDir}
	if _, err := gen.Generate(a); err != nil {
		return err
	}
	siteDir := filepath.Join(tmpDir, "site")
	if _, err := report.RenderHTML(tmpDir, siteDir); err != nil {
		return err
	}

	return report.Serve(siteDir, cfg.ServePort, report.BuildAPI(a))
}
