package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/usage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report which flows use which resources",
	Long: `Prints the global usage report: for every contact attribute, lambda
function, or lex bot, the flows that reference it.`,
	RunE: runUsage,
}

func init() {
	usageCmd.Flags().String("input", "", "directory of exported flow documents (overrides config)")
	usageCmd.Flags().String("kind", "attributes", "resource kind: attributes, functions, or bots")
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlag(cmd, cfg)

	kind, _ := cmd.Flags().GetString("kind")

	a, err := runAnalysis(cfg, false)
	if err != nil {
		return err
	}

	switch kind {
	case "attributes":
		attrs := a.Usage().Attributes()
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rec := attrs[name]
			fmt.Printf("%s:\n", name)
			if len(rec.UsedInFlow) > 0 {
				fmt.Printf("  used in:    %s\n", strings.Join(rec.UsedInFlow, ", "))
			}
			if len(rec.UpdatedInFlow) > 0 {
				fmt.Printf("  updated in: %s\n", strings.Join(rec.UpdatedInFlow, ", "))
			}
		}
	case "functions":
		printResources(a.Usage().Functions())
	case "bots":
		printResources(a.Usage().Bots())
	default:
		return fmt.Errorf("unknown kind %q: must be attributes, functions, or bots", kind)
	}
	return nil
}

func printResources(resources map[string]*usage.ResourceFlows) {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, strings.Join(resources[name].UsedInFlow, ", "))
	}
}
