package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/depgraph"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the flow deployment order",
	Long: `Prints every flow name in reverse topological order of the dependency
graph: each flow appears after everything it references, so deploying
top to bottom never deploys a flow before its dependencies.`,
	RunE: runOrder,
}

func init() {
	orderCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)

	a, err := runAnalysis(cfg, false)
	if err != nil {
		return err
	}

	order, err := a.Dependencies().DependencyOrder()
	var cycleErr *depgraph.NotAcyclicError
	if errors.As(err, &cycleErr) {
		fmt.Fprintln(os.Stderr, "No deployment order exists, the dependency graph contains cycles:")
		for _, cycle := range cycleErr.Cycles {
			fmt.Fprintf(os.Stderr, "  %s -> %s\n", strings.Join(cycle, " -> "), cycle[0])
		}
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	for i, name := range order {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}
