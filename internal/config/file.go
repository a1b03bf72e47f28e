package config

import (
	"time"

	"github.com/nao1215/nanumcorp/internal/model"
)

// OutputFile holds the output section of the configuration file.
type OutputFile struct {
	// Dir overrides the output directory.
	Dir string `yaml:"dir,omitempty"`

	// JSON overrides the JSON snapshot file name.
	JSON string `yaml:"json,omitempty"`

	// CSV overrides the CSV file name.
	CSV string `yaml:"csv,omitempty"`

	// XLSX enables the spreadsheet export when set to a file name.
	XLSX string `yaml:"xlsx,omitempty"`

	// BOM prefixes the CSV export with a UTF-8 byte order mark.
	BOM bool `yaml:"bom,omitempty"`

	// UnionHeader builds the CSV header from the keys of every record.
	UnionHeader bool `yaml:"unionHeader,omitempty"`
}

// File represents the structure of the .nanumcorp configuration file.
// Every field is optional; unset fields keep the built-in defaults.
type File struct {
	// Endpoint overrides the listing endpoint, e.g. for a mirror.
	Endpoint string `yaml:"endpoint,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are extra HTTP headers added to every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// PageDelay overrides the delay between pages, e.g. "1s" or "750ms".
	// A pointer so that an explicit "0s" can be told apart from unset.
	PageDelay *time.Duration `yaml:"pageDelay,omitempty"`

	// MaxPages limits the number of pages fetched.
	MaxPages *int `yaml:"maxPages,omitempty"`

	// Criteria are the default search filters.
	Criteria model.SearchCriteria `yaml:"criteria,omitempty"`

	// Output configures where and how results are written.
	Output OutputFile `yaml:"output,omitempty"`

	// History enables the run history database.
	History bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// CLI flags are applied afterwards and take precedence.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if len(f.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			cfg.Headers[k] = v
		}
	}
	if f.PageDelay != nil {
		cfg.PageDelay = *f.PageDelay
	}
	if f.MaxPages != nil {
		cfg.MaxPages = *f.MaxPages
	}
	if f.Criteria.BusinessCategory != "" {
		cfg.Criteria.BusinessCategory = f.Criteria.BusinessCategory
	}
	if f.Criteria.DonationGroupType != "" {
		cfg.Criteria.DonationGroupType = f.Criteria.DonationGroupType
	}
	if f.Criteria.CorporationName != "" {
		cfg.Criteria.CorporationName = f.Criteria.CorporationName
	}
	if f.Output.Dir != "" {
		cfg.OutputDir = f.Output.Dir
	}
	if f.Output.JSON != "" {
		cfg.JSONFileName = f.Output.JSON
	}
	if f.Output.CSV != "" {
		cfg.CSVFileName = f.Output.CSV
	}
	if f.Output.XLSX != "" {
		cfg.XLSX = true
		cfg.XLSXFileName = f.Output.XLSX
	}
	if f.Output.BOM {
		cfg.CSVBOM = true
	}
	if f.Output.UnionHeader {
		cfg.CSVUnionHeader = true
	}
	if f.History {
		cfg.History = true
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
}
