package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Report dependency cycles between flows",
	RunE:  runCycles,
}

func init() {
	cyclesCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)

	a, err := runAnalysis(cfg, false)
	if err != nil {
		return err
	}

	cycles := a.Dependencies().Cycles()
	if len(cycles) == 0 {
		fmt.Println("No cycles found.")
		return nil
	}

	fmt.Printf("%d cycle(s) found:\n", len(cycles))
	for _, cycle := range cycles {
		fmt.Printf("  %s -> %s\n", strings.Join(cycle, " -> "), cycle[0])
	}
	return nil
}
