package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/nanumcorp/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "nanumcorp.db"

// ErrNotFound is returned by Open when the database file does not exist
// and CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// HistoryDB stores a summary of every completed collection run.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// HistoryRun is one recorded collection run.
type HistoryRun struct {
	// ID is the database identifier, assigned by RecordRun.
	ID int64

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Criteria are the search filters of the run.
	Criteria model.SearchCriteria

	// ReportedTotal is the registry total reported on the first page.
	ReportedTotal int

	// Collected is the number of records written.
	Collected int

	// Pages is the number of pages fetched.
	Pages int

	// JSONPath is where the snapshot was written.
	JSONPath string

	// CSVPath is where the CSV was written; empty when none was written.
	CSVPath string

	// XLSXPath is where the spreadsheet was written; empty when none was written.
	XLSXPath string

	// Digest is the hex SHA3-256 digest of the snapshot file.
	Digest string
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the path of the database file.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		criteria TEXT NOT NULL,
		reported_total INTEGER NOT NULL DEFAULT 0,
		collected INTEGER NOT NULL DEFAULT 0,
		pages INTEGER NOT NULL DEFAULT 0,
		json_path TEXT,
		csv_path TEXT,
		xlsx_path TEXT,
		digest TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(digest);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RecordRun appends a run and returns its ID. The ID is also stored in run.
func (h *HistoryDB) RecordRun(ctx context.Context, run *HistoryRun) (int64, error) {
	criteriaJSON, err := json.Marshal(run.Criteria)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize criteria: %w", err)
	}

	query := `
	INSERT INTO runs (started_at, finished_at, criteria, reported_total, collected, pages,
		json_path, csv_path, xlsx_path, digest)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := h.db.ExecContext(ctx, query,
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.FinishedAt),
		string(criteriaJSON),
		run.ReportedTotal,
		run.Collected,
		run.Pages,
		run.JSONPath,
		run.CSVPath,
		run.XLSXPath,
		run.Digest,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]HistoryRun, error) {
	query := `
	SELECT id, started_at, finished_at, criteria, reported_total, collected, pages,
		json_path, csv_path, xlsx_path, digest
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]HistoryRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// LatestRun returns the most recent run, or nil when no run is recorded.
func (h *HistoryDB) LatestRun(ctx context.Context) (*HistoryRun, error) {
	runs, err := h.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row.
func scanRun(row rowScanner) (*HistoryRun, error) {
	var (
		run                         HistoryRun
		startedAt, finishedAt       string
		criteriaJSON                string
		jsonPath, csvPath, xlsxPath sql.NullString
		digest                      sql.NullString
	)

	err := row.Scan(
		&run.ID,
		&startedAt,
		&finishedAt,
		&criteriaJSON,
		&run.ReportedTotal,
		&run.Collected,
		&run.Pages,
		&jsonPath,
		&csvPath,
		&xlsxPath,
		&digest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.StartedAt = parseTimestamp(startedAt)
	run.FinishedAt = parseTimestamp(finishedAt)
	run.JSONPath = jsonPath.String
	run.CSVPath = csvPath.String
	run.XLSXPath = xlsxPath.String
	run.Digest = digest.String

	if err := json.Unmarshal([]byte(criteriaJSON), &run.Criteria); err != nil {
		run.Criteria = model.SearchCriteria{}
	}

	return &run, nil
}

// timestampLayout is how run timestamps are stored. It sorts lexically in
// time order because every value is in UTC.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
