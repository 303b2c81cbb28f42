package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flowdoc",
	Short: "Dependency and control-flow analysis for exported contact flows",
	Long: `Flowdoc reads exported contact-routing flow definitions and builds two
graph models from them: an inter-flow dependency graph used for
deployment ordering and cycle detection, and a per-flow control-flow
graph with resource-usage reports covering contact attributes, lambda
functions, and lex bots.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".flowdoc.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
