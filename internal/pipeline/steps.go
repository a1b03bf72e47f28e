package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/nao1215/nanumcorp/internal/database"
	"github.com/nao1215/nanumcorp/internal/model"
	"github.com/nao1215/nanumcorp/internal/report"
	"golang.org/x/crypto/sha3"
)

// ErrNoResult is returned by persisting steps when the run has no
// collection result, which means the collect step did not run.
var ErrNoResult = errors.New("run has no collection result")

// Collector gathers every page of a search. *crawler.Paginator implements it.
type Collector interface {
	Collect(ctx context.Context, criteria model.SearchCriteria, maxPages int) (*model.AggregateResult, error)
}

// HistoryStore records completed runs. *database.HistoryDB implements it.
type HistoryStore interface {
	RecordRun(ctx context.Context, run *database.HistoryRun) (int64, error)
}

// CollectStep fetches every page of the run's search.
type CollectStep struct {
	collector Collector
	logger    *slog.Logger
}

// NewCollectStep creates a collect step using collector.
func NewCollectStep(collector Collector, logger *slog.Logger) *CollectStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectStep{collector: collector, logger: logger}
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do executes the collect step. Collection always starts at page 1.
func (s *CollectStep) Do(ctx context.Context, run *model.Run) error {
	result, err := s.collector.Collect(ctx, run.Criteria.WithPage(1), run.MaxPages)
	if err != nil {
		return fmt.Errorf("failed to collect registry: %w", err)
	}

	run.Result = result
	run.FinishedAt = time.Now()

	s.logger.Info("collection finished",
		"collected", result.Total,
		"reported_total", result.ReportedTotal,
		"pages", result.Pages,
		"elapsed", run.Elapsed().String())
	return nil
}

// SaveJSONStep writes the JSON snapshot.
type SaveJSONStep struct {
	dir    string
	name   string
	logger *slog.Logger
}

// NewSaveJSONStep creates a step writing the snapshot to dir/name.
func NewSaveJSONStep(dir, name string, logger *slog.Logger) *SaveJSONStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveJSONStep{dir: dir, name: name, logger: logger}
}

// Name returns the step name.
func (s *SaveJSONStep) Name() string {
	return "save_json"
}

// Do executes the save step.
func (s *SaveJSONStep) Do(_ context.Context, run *model.Run) error {
	if run.Result == nil {
		return ErrNoResult
	}

	path, err := report.SaveJSON(s.dir, s.name, run.Result)
	if err != nil {
		return err
	}

	run.JSONPath = path
	s.logger.Info("saved JSON snapshot", "path", path)
	return nil
}

// SaveCSVStep writes the CSV export.
type SaveCSVStep struct {
	dir    string
	name   string
	opts   []report.TableOption
	logger *slog.Logger
}

// NewSaveCSVStep creates a step writing the CSV to dir/name.
func NewSaveCSVStep(dir, name string, logger *slog.Logger, opts ...report.TableOption) *SaveCSVStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveCSVStep{dir: dir, name: name, opts: opts, logger: logger}
}

// Name returns the step name.
func (s *SaveCSVStep) Name() string {
	return "save_csv"
}

// Do executes the save step. A run without records writes no CSV.
func (s *SaveCSVStep) Do(_ context.Context, run *model.Run) error {
	if run.Result == nil {
		return ErrNoResult
	}

	path, err := report.SaveCSV(s.dir, s.name, run.Result.Corps, s.opts...)
	if err != nil {
		return err
	}
	if path == "" {
		s.logger.Warn("no records to write, CSV skipped")
		return nil
	}

	run.CSVPath = path
	s.logger.Info("saved CSV", "path", path)
	return nil
}

// SaveXLSXStep writes the XLSX export.
type SaveXLSXStep struct {
	dir    string
	name   string
	opts   []report.TableOption
	logger *slog.Logger
}

// NewSaveXLSXStep creates a step writing the workbook to dir/name.
func NewSaveXLSXStep(dir, name string, logger *slog.Logger, opts ...report.TableOption) *SaveXLSXStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveXLSXStep{dir: dir, name: name, opts: opts, logger: logger}
}

// Name returns the step name.
func (s *SaveXLSXStep) Name() string {
	return "save_xlsx"
}

// Do executes the save step. A run without records writes no workbook.
func (s *SaveXLSXStep) Do(_ context.Context, run *model.Run) error {
	if run.Result == nil {
		return ErrNoResult
	}

	path, err := report.SaveXLSX(s.dir, s.name, run.Result.Corps, s.opts...)
	if err != nil {
		return err
	}
	if path == "" {
		s.logger.Warn("no records to write, XLSX skipped")
		return nil
	}

	run.XLSXPath = path
	s.logger.Info("saved XLSX", "path", path)
	return nil
}

// RecordHistoryStep appends the run to the history database together with
// a SHA3-256 digest of the JSON snapshot.
type RecordHistoryStep struct {
	store  HistoryStore
	logger *slog.Logger
}

// NewRecordHistoryStep creates a step recording runs in store.
func NewRecordHistoryStep(store HistoryStore, logger *slog.Logger) *RecordHistoryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHistoryStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *RecordHistoryStep) Name() string {
	return "record_history"
}

// Do executes the history step.
func (s *RecordHistoryStep) Do(ctx context.Context, run *model.Run) error {
	if run.Result == nil {
		return ErrNoResult
	}

	if run.JSONPath != "" {
		digest, err := FileDigest(run.JSONPath)
		if err != nil {
			return err
		}
		run.Digest = digest
	}

	id, err := s.store.RecordRun(ctx, &database.HistoryRun{
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Criteria:      run.Criteria,
		ReportedTotal: run.Result.ReportedTotal,
		Collected:     run.Result.Total,
		Pages:         run.Result.Pages,
		JSONPath:      run.JSONPath,
		CSVPath:       run.CSVPath,
		XLSXPath:      run.XLSXPath,
		Digest:        run.Digest,
	})
	if err != nil {
		return err
	}

	run.HistoryID = id
	s.logger.Info("recorded run", "id", id, "digest", run.Digest)
	return nil
}

// FileDigest returns the hex SHA3-256 digest of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path was written by this run
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot for digest: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read snapshot for digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CollectPipeline builds the pipeline of a collect run from cfg: collect,
// save JSON, save CSV, then save XLSX when enabled and record history when
// store is non-nil.
func CollectPipeline(cfg *config.Config, collector Collector, store HistoryStore, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	var tableOpts []report.TableOption
	if cfg.CSVUnionHeader {
		tableOpts = append(tableOpts, report.WithUnionHeader())
	}
	csvOpts := tableOpts
	if cfg.CSVBOM {
		csvOpts = append(append([]report.TableOption{}, tableOpts...), report.WithBOM())
	}

	p := New(WithLogger(logger))
	p.AddSteps(
		NewCollectStep(collector, logger),
		NewSaveJSONStep(cfg.OutputDir, cfg.JSONFileName, logger),
		NewSaveCSVStep(cfg.OutputDir, cfg.CSVFileName, logger, csvOpts...),
	)
	if cfg.XLSX {
		p.AddStep(NewSaveXLSXStep(cfg.OutputDir, cfg.XLSXFileName, logger, tableOpts...))
	}
	if store != nil {
		p.AddStep(NewRecordHistoryStep(store, logger))
	}
	return p
}
