package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/dot"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a graph in DOT format",
	Long: `Prints the flow dependency graph in DOT format, or a single flow's
control-flow graph when --flow is given.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	graphCmd.Flags().String("flow", "", "print the control-flow graph of this flow instead")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)

	a, err := runAnalysis(cfg, false)
	if err != nil {
		return err
	}

	flowName, _ := cmd.Flags().GetString("flow")
	if flowName == "" {
		fmt.Print(dot.Dependencies(a.Dependencies()))
		return nil
	}

	graph := a.ActionGraph(flowName)
	if graph == nil {
		return fmt.Errorf("no flow named %q was processed", flowName)
	}
	fmt.Print(dot.ActionGraph(graph))
	return nil
}
