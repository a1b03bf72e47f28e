package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/nanumcorp/internal/model"
)

// Default configuration values.
const (
	// DefaultEndpoint is the listing endpoint the portal's own search page
	// calls with XMLHttpRequest. It answers with an HTML fragment.
	DefaultEndpoint = "https://www.nanumkorea.go.kr/nts/cptList.do"

	// DefaultUserAgent is a browser-style User-Agent. The endpoint is meant
	// for the portal's own pages and expects browser-like requests.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultPageDelay is the pause after each page before the next request.
	DefaultPageDelay = 500 * time.Millisecond

	// DefaultMaxPages of 0 collects every page.
	DefaultMaxPages = 0

	// DefaultOutputDir is where snapshots are written, relative to the
	// working directory.
	DefaultOutputDir = "output"

	// DefaultJSONFileName is the snapshot file name used by the CLI.
	DefaultJSONFileName = "nanumkorea_all.json"

	// DefaultCSVFileName is the CSV file name used by the CLI.
	DefaultCSVFileName = "nanumkorea_all.csv"

	// DefaultXLSXFileName is the spreadsheet file name used by the CLI.
	DefaultXLSXFileName = "nanumkorea_all.xlsx"

	// AppName is the application name used for XDG directory paths.
	AppName = "nanumcorp"
)

// Config holds all configuration options for nanumcorp.
// It is populated from built-in defaults, then the optional configuration
// file, then CLI flags, and passed explicitly to the components that need it.
type Config struct {
	// Endpoint is the listing endpoint URL.
	Endpoint string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// PageDelay is the wait after a page completes and before the next
	// request starts.
	PageDelay time.Duration

	// MaxPages limits how many pages are fetched. 0 means no limit.
	MaxPages int

	// Criteria are the search filters of the run. PageIndex is ignored;
	// collection always starts at page 1.
	Criteria model.SearchCriteria

	// OutputDir is the directory snapshots are written to. It is created
	// with its parents when missing.
	OutputDir string

	// JSONFileName is the file name of the JSON snapshot.
	JSONFileName string

	// CSVFileName is the file name of the CSV export.
	CSVFileName string

	// XLSX enables the spreadsheet export.
	XLSX bool

	// XLSXFileName is the file name of the spreadsheet export.
	XLSXFileName string

	// CSVBOM prefixes the CSV export with a UTF-8 byte order mark so that
	// spreadsheet tools detect the encoding of the Korean text.
	CSVBOM bool

	// CSVUnionHeader builds the CSV header from every key seen in any
	// record instead of the keys of the first record only.
	CSVUnionHeader bool

	// History enables recording the run in the history database.
	History bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/nanumcorp on Linux).
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the file is searched for as described in FindConfigFile.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// A Config built only from defaults performs a full unfiltered collection
// and writes output/nanumkorea_all.json and output/nanumkorea_all.csv.
func NewConfig() *Config {
	return &Config{
		Endpoint:     DefaultEndpoint,
		UserAgent:    DefaultUserAgent,
		Headers:      map[string]string{},
		PageDelay:    DefaultPageDelay,
		MaxPages:     DefaultMaxPages,
		Criteria:     model.DefaultSearchCriteria(),
		OutputDir:    DefaultOutputDir,
		JSONFileName: DefaultJSONFileName,
		CSVFileName:  DefaultCSVFileName,
		XLSXFileName: DefaultXLSXFileName,
		DBDir:        XDGDataDir(),
	}
}

// JSONPath returns the full path of the JSON snapshot.
func (c *Config) JSONPath() string {
	return filepath.Join(c.OutputDir, c.JSONFileName)
}

// XDGDataDir returns the XDG data directory for nanumcorp.
// On Linux: ~/.local/share/nanumcorp
// On macOS: ~/Library/Application Support/nanumcorp
// On Windows: %LOCALAPPDATA%\nanumcorp
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for nanumcorp.
// On Linux: ~/.config/nanumcorp
// On macOS: ~/Library/Application Support/nanumcorp
// On Windows: %APPDATA%\nanumcorp
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a wrapped sentinel error.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrEmptyEndpoint
	}

	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if c.PageDelay < 0 {
		return ErrInvalidDelay
	}

	if !model.IsBusinessCategory(c.Criteria.BusinessCategory) {
		return fmt.Errorf("%w: %q", ErrInvalidBusinessCategory, c.Criteria.BusinessCategory)
	}

	if !model.IsDonationGroupType(c.Criteria.DonationGroupType) {
		return fmt.Errorf("%w: %q", ErrInvalidDonationGroupType, c.Criteria.DonationGroupType)
	}

	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}

	return nil
}
