package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/nao1215/nanumcorp/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for nanumcorp.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nanumcorp",
		Short: "Collect the public-benefit corporation registry",
		Long: `nanumcorp collects the public-benefit corporation registry published on the
nanumkorea portal and saves it as JSON and CSV, optionally also as XLSX.

Pages are fetched one at a time with a short pause between them. Use
"nanumcorp check" from another terminal to see whether a collection has
finished.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCollectCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger builds the redacting logger for a command. Values logged under
// the configured header names are masked.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return log.NewLogger(w,
		log.WithVerbose(cfg.Verbose),
		log.WithRedactedHeaders(cfg.Headers),
	)
}

// addConfigFlag registers the --config flag shared by several commands.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .nanumcorp in current or home directory)")
}

// loadConfig returns the built-in defaults overlaid with the configuration
// file. An explicitly given file that does not exist is an error; a missing
// file found by searching is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = path

	found := config.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return cfg, nil
	}

	file, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	file.Apply(cfg)
	return cfg, nil
}
