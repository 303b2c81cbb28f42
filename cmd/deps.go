package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the direct dependencies of every flow",
	RunE:  runDeps,
}

func init() {
	depsCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)

	a, err := runAnalysis(cfg, false)
	if err != nil {
		return err
	}

	for _, dep := range a.Dependencies().Dependencies() {
		if len(dep.DependsOn) == 0 {
			fmt.Printf("%s: (none)\n", dep.Name)
			continue
		}
		fmt.Printf("%s: %s\n", dep.Name, strings.Join(dep.DependsOn, ", "))
	}
	return nil
}
