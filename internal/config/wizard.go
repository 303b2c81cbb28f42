package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .flowdoc.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to flowdoc! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	inputPrompt := promptui.Prompt{
		Label:   "Directory containing exported flow documents",
		Default: cfg.InputDir,
	}
	inputDir, err := inputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	cfg.InputDir = inputDir

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated report",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	cfg.OutputDir = outputDir

	errorPrompt := promptui.Select{
		Label: "Which error transitions should appear in action graphs",
		Items: []string{
			"all    — every error transition becomes an edge",
			"no-match — only NoMatchingCondition transitions",
		},
	}
	idx, _, err := errorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("error filter selection: %w", err)
	}
	if idx == 1 {
		cfg.ErrorFilter = []string{"NoMatchingCondition"}
	}

	portPrompt := promptui.Prompt{
		Label:   "Local port for the serve command",
		Default: strconv.Itoa(cfg.ServePort),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("serve port: %w", err)
	}
	cfg.ServePort, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(".flowdoc.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .flowdoc.yml")
	return cfg, nil
}
