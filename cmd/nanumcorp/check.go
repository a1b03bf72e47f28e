package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/nanumcorp/internal/checker"
	"github.com/nao1215/nanumcorp/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show whether a collection has finished",
		Long: `Check reads the JSON snapshot written by "nanumcorp collect" and prints the
recorded total, the number of corporations and the file size.

The snapshot is only written when a collection completes, so a missing file
means the collection is still running or has failed. That case is reported
and is not an error.

Examples:
  # Check the default snapshot (output/nanumkorea_all.json)
  nanumcorp check

  # Check another file and print Markdown with a category chart
  nanumcorp check --file data/welfare.json --markdown

  # Print to the terminal and keep a Markdown copy
  nanumcorp check --save reports/status.md`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"Snapshot file to check (default: output/nanumkorea_all.json or the configured path)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the status as Markdown")
	cmd.Flags().StringP("save", "s", "",
		"Also write the status as Markdown to this file (creates directories if needed)")
	addConfigFlag(cmd)

	return cmd
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path = cfg.JSONPath()
	}

	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	status, err := checker.Check(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	savePath, err := cmd.Flags().GetString("save")
	if err != nil {
		return err
	}

	var w report.Writer = report.NewStatusWriter(cmd.OutOrStdout())
	if asMarkdown {
		w = report.NewStatusMarkdownWriter(cmd.OutOrStdout())
	}

	if savePath != "" {
		f, err := createFile(savePath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = report.NewMultiWriter(w, report.NewStatusMarkdownWriter(f))
	}

	if _, err := w.WriteStatus(status); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

// createFile creates path and its parent directories, truncating an
// existing file.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-provided output path
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}
