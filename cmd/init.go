package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowdoc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .flowdoc.yml configuration interactively",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(".flowdoc.yml"); err == nil && !force {
		return fmt.Errorf(".flowdoc.yml already exists; use --force to overwrite")
	}

	if _, err := config.RunWizard(); err != nil {
		return fmt.Errorf("configuration wizard: %w", err)
	}
	return nil
}
