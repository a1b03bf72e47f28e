package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/nanumcorp.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented .nanumcorp configuration file",
		Long: `Init writes a commented .nanumcorp configuration file.

The file documents every setting: search filters, page delay, page limit,
output file names, CSV options and the run history database. All settings
are commented out or set to their defaults, so a fresh file changes nothing.

Examples:
  # Create .nanumcorp in the current directory
  nanumcorp init

  # Write the file somewhere else
  nanumcorp init -o ~/.config/nanumcorp/config.yaml

  # Overwrite an existing file
  nanumcorp init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, configTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "Uncomment the settings you want to change, then run: nanumcorp collect")
	return nil
}
