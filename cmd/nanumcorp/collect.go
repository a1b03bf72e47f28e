package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/nao1215/nanumcorp/internal/crawler"
	"github.com/nao1215/nanumcorp/internal/database"
	"github.com/nao1215/nanumcorp/internal/model"
	"github.com/nao1215/nanumcorp/internal/pipeline"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewCollectCmd creates the collect command.
func NewCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect the corporation registry and save it",
		Long: `Collect fetches every page of the public-benefit corporation registry and
saves the records as JSON and CSV.

Without flags the whole registry is collected and written to
output/nanumkorea_all.json and output/nanumkorea_all.csv. Progress is printed
after every page. Any network or parse error aborts the run without writing
partial results.

Examples:
  # Collect the whole registry
  nanumcorp collect

  # Only welfare corporations, also as XLSX
  nanumcorp collect --business-category 사회복지 --xlsx

  # Try the first three pages with a one second pause
  nanumcorp collect --max-pages 3 --delay 1s

  # Record the run in the history database
  nanumcorp collect --history`,
		Args: cobra.NoArgs,
		RunE: runCollectCmd,
	}

	cmd.Flags().StringP("business-category", "b", "",
		"Business category filter (교육, 학술•장학, 사회복지, 의료, 예술•문화, 기타)")
	cmd.Flags().StringP("donation-group", "g", "",
		"Donation group type filter (법정기부금단체, 지정기부금단체, 기타기부금단체)")
	cmd.Flags().StringP("name", "n", "",
		"Corporation name filter")

	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch (0 = all)")
	cmd.Flags().DurationP("delay", "d", config.DefaultPageDelay,
		"Pause after each page")
	cmd.Flags().String("endpoint", config.DefaultEndpoint,
		"Listing endpoint URL")

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory to write results to (created if needed)")
	cmd.Flags().String("json-file", config.DefaultJSONFileName,
		"JSON snapshot file name")
	cmd.Flags().String("csv-file", config.DefaultCSVFileName,
		"CSV file name")
	cmd.Flags().Bool("xlsx", false,
		"Also write an XLSX workbook")
	cmd.Flags().String("xlsx-file", config.DefaultXLSXFileName,
		"XLSX file name (implies --xlsx)")
	cmd.Flags().Bool("csv-bom", false,
		"Prefix the CSV with a UTF-8 byte order mark")
	cmd.Flags().Bool("csv-union-header", false,
		"Build the CSV header from the keys of every record")

	cmd.Flags().Bool("history", false,
		"Record the run in the history database")

	addConfigFlag(cmd)

	return cmd
}

func runCollectCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCollectConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCollect(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildCollectConfig layers the flags the user actually set over the
// configuration file and the built-in defaults.
func buildCollectConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := flags.Changed

	if changed("business-category") {
		if cfg.Criteria.BusinessCategory, err = flags.GetString("business-category"); err != nil {
			return nil, err
		}
	}
	if changed("donation-group") {
		if cfg.Criteria.DonationGroupType, err = flags.GetString("donation-group"); err != nil {
			return nil, err
		}
	}
	if changed("name") {
		if cfg.Criteria.CorporationName, err = flags.GetString("name"); err != nil {
			return nil, err
		}
	}
	if changed("max-pages") {
		if cfg.MaxPages, err = flags.GetInt("max-pages"); err != nil {
			return nil, err
		}
	}
	if changed("delay") {
		if cfg.PageDelay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if changed("endpoint") {
		if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, err
		}
	}
	if changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}
	if changed("json-file") {
		if cfg.JSONFileName, err = flags.GetString("json-file"); err != nil {
			return nil, err
		}
	}
	if changed("csv-file") {
		if cfg.CSVFileName, err = flags.GetString("csv-file"); err != nil {
			return nil, err
		}
	}
	if changed("xlsx") {
		if cfg.XLSX, err = flags.GetBool("xlsx"); err != nil {
			return nil, err
		}
	}
	if changed("xlsx-file") {
		if cfg.XLSXFileName, err = flags.GetString("xlsx-file"); err != nil {
			return nil, err
		}
		cfg.XLSX = true
	}
	if changed("csv-bom") {
		if cfg.CSVBOM, err = flags.GetBool("csv-bom"); err != nil {
			return nil, err
		}
	}
	if changed("csv-union-header") {
		if cfg.CSVUnionHeader, err = flags.GetBool("csv-union-header"); err != nil {
			return nil, err
		}
	}
	if changed("history") {
		if cfg.History, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runCollect performs one collection run and prints a summary to out.
func runCollect(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	printer := message.NewPrinter(language.English)

	logger.Info("starting collection",
		"endpoint", cfg.Endpoint,
		"criteria", cfg.Criteria,
		"maxPages", cfg.MaxPages,
		"delay", cfg.PageDelay.String(),
		"outputDir", cfg.OutputDir,
	)

	if len(cfg.Headers) > 0 {
		attrs := make([]any, 0, len(cfg.Headers))
		for name, value := range cfg.Headers {
			attrs = append(attrs, slog.String(name, value))
		}
		logger.Debug("extra request headers", slog.Group("headers", attrs...))
	}

	fetcher := crawler.NewHTTPFetcher(
		crawler.WithEndpoint(cfg.Endpoint),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithHeaders(cfg.Headers),
	)
	paginator := crawler.NewPaginator(fetcher,
		crawler.WithDelay(cfg.PageDelay),
		crawler.WithLogger(logger),
		crawler.WithProgress(func(p crawler.Progress) {
			if p.Page == 1 {
				printer.Fprintf(out, "Total %d records, %d per page, %d pages\n",
					p.ReportedTotal, p.PageSize, p.TotalPages)
			}
			fmt.Fprintln(out, p.String())
		}),
	)

	var store pipeline.HistoryStore
	if cfg.History {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "path", db.Path())
		store = db
	}

	run := model.NewRun(cfg.Criteria, cfg.MaxPages)
	if cfg.Criteria.IsUnfiltered() {
		fmt.Fprintln(out, "Collecting the whole registry...")
	} else {
		fmt.Fprintf(out, "Collecting with filters %s...\n", describeCriteria(cfg.Criteria))
	}

	p := pipeline.CollectPipeline(cfg, paginator, store, logger)
	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	printSummary(out, printer, run)
	return nil
}

func printSummary(out io.Writer, printer *message.Printer, run *model.Run) {
	fmt.Fprintln(out)
	printer.Fprintf(out, "Collected %d corporations (registry total %d) in %d pages\n",
		run.Result.Total, run.Result.ReportedTotal, run.Result.Pages)
	fmt.Fprintf(out, "JSON: %s\n", run.JSONPath)
	if run.CSVPath != "" {
		fmt.Fprintf(out, "CSV:  %s\n", run.CSVPath)
	} else {
		fmt.Fprintln(out, "CSV:  skipped (no records)")
	}
	if run.XLSXPath != "" {
		fmt.Fprintf(out, "XLSX: %s\n", run.XLSXPath)
	}
	if run.HistoryID != 0 {
		fmt.Fprintf(out, "History: run #%d\n", run.HistoryID)
	}
	fmt.Fprintf(out, "Elapsed: %s\n", run.Elapsed().Round(time.Millisecond))
}

func describeCriteria(c model.SearchCriteria) string {
	var s string
	add := func(label, v string) {
		if v == "" {
			return
		}
		if s != "" {
			s += ", "
		}
		s += label + "=" + v
	}
	add("category", c.BusinessCategory)
	add("group", c.DonationGroupType)
	add("name", c.CorporationName)
	return s
}
