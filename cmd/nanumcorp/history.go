package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/nanumcorp/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is how many runs history shows by default.
const defaultHistoryLimit = 20

// noHistoryMessage is printed when nothing has been recorded.
const noHistoryMessage = "No runs recorded yet. Use \"nanumcorp collect --history\" to record runs."

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded collection runs",
		Long: `History lists the collection runs recorded with "nanumcorp collect --history",
newest first. Each run shows its filters, the number of corporations
collected against the registry total, and the SHA3-256 digest of the JSON
snapshot, so two runs with equal digests produced identical files.

Examples:
  # Show the latest runs
  nanumcorp history

  # Show the last five runs as JSON
  nanumcorp history -n 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to show (0 = all)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Print runs as JSON")
	addConfigFlag(cmd)

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return err
		}
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(out, noHistoryMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		return writeHistoryJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, noHistoryMessage)
		return nil
	}
	return writeHistoryTable(out, runs)
}

// historyEntry is the JSON form of a recorded run.
type historyEntry struct {
	ID                int64     `json:"id"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
	BusinessCategory  string    `json:"businessCategory,omitempty"`
	DonationGroupType string    `json:"donationGroupType,omitempty"`
	CorporationName   string    `json:"corporationName,omitempty"`
	ReportedTotal     int       `json:"reportedTotal"`
	Collected         int       `json:"collected"`
	Pages             int       `json:"pages"`
	JSONPath          string    `json:"jsonPath"`
	CSVPath           string    `json:"csvPath,omitempty"`
	XLSXPath          string    `json:"xlsxPath,omitempty"`
	Digest            string    `json:"digest,omitempty"`
}

func writeHistoryJSON(w io.Writer, runs []database.HistoryRun) error {
	entries := make([]historyEntry, 0, len(runs))
	for _, r := range runs {
		entries = append(entries, historyEntry{
			ID:                r.ID,
			StartedAt:         r.StartedAt,
			FinishedAt:        r.FinishedAt,
			BusinessCategory:  r.Criteria.BusinessCategory,
			DonationGroupType: r.Criteria.DonationGroupType,
			CorporationName:   r.Criteria.CorporationName,
			ReportedTotal:     r.ReportedTotal,
			Collected:         r.Collected,
			Pages:             r.Pages,
			JSONPath:          r.JSONPath,
			CSVPath:           r.CSVPath,
			XLSXPath:          r.XLSXPath,
			Digest:            r.Digest,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(entries)
}

func writeHistoryTable(w io.Writer, runs []database.HistoryRun) error {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		filters := describeCriteria(r.Criteria)
		if filters == "" {
			filters = "(all)"
		}
		digest := r.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String(),
			filters,
			strconv.Itoa(r.Collected) + "/" + strconv.Itoa(r.ReportedTotal),
			strconv.Itoa(r.Pages),
			digest,
		})
	}

	return markdown.NewMarkdown(w).
		Table(markdown.TableSet{
			Header: []string{"ID", "Started", "Elapsed", "Filters", "Collected", "Pages", "Digest"},
			Rows:   rows,
		}).
		Build()
}
