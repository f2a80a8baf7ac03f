package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds HTTP settings for the fetch stage.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent as the User-Agent header when non-empty.
	// Empty leaves the net/http default in place.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// LinksConfig locates the link column in the input table.
type LinksConfig struct {
	// Input is the path of the CSV file holding the links.
	Input string `json:"input" yaml:"input"`

	// Column is the header name of the link column (default "Link").
	Column string `json:"column" yaml:"column"`
}

// AcquisitionConfig holds settings for the fetch stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 0).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// DocsDir is the directory downloaded documents are written to.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`
}

// ConversionBackend identifies the PDF text extraction library.
type ConversionBackend string

const (
	BackendFitz ConversionBackend = "fitz"
	BackendPDF  ConversionBackend = "pdf"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (ConversionBackend, error) {
	switch b := ConversionBackend(s); b {
	case BackendFitz, BackendPDF:
		return b, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %s or %s)", s, BackendFitz, BackendPDF)
	}
}

// Mode selects how extracted text is written to the combined output.
type Mode string

const (
	// ModeVerbatim writes each document's text followed by a newline.
	ModeVerbatim Mode = "verbatim"
	// ModeDedup writes each distinct trimmed non-empty line once.
	ModeDedup Mode = "dedup"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeVerbatim, ModeDedup:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeVerbatim, ModeDedup)
	}
}

// LogFormat selects console log rendering.
type LogFormat string

const (
	// LogPlain prints bare messages, no timestamp or level.
	LogPlain LogFormat = "plain"
	// LogLeveled prints timestamped, leveled records.
	LogLeveled LogFormat = "leveled"
)

// ParseLogFormat validates a log format name.
func ParseLogFormat(s string) (LogFormat, error) {
	switch f := LogFormat(s); f {
	case LogPlain, LogLeveled:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want %s or %s)", s, LogPlain, LogLeveled)
	}
}

// ConversionConfig holds settings for the extract and aggregate stages.
type ConversionConfig struct {
	// Backend selects the extraction library: fitz or pdf.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Output is the combined text file.
	Output string `json:"output" yaml:"output"`

	// Mode selects verbatim or dedup aggregation.
	Mode Mode `json:"mode" yaml:"mode"`
}

// HarvestConfig groups all settings for one pipeline run.
type HarvestConfig struct {
	// Profile names the preset the run started from.
	Profile string `json:"profile" yaml:"profile"`

	Links       LinksConfig       `json:"links" yaml:"links"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion"`

	// LogFormat selects plain or leveled console output.
	LogFormat LogFormat `json:"log_format" yaml:"log_format"`

	// Ledger is the SQLite ledger path. Empty disables the ledger.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty"`
}

// DefaultColumn is the link column used when none is configured.
const DefaultColumn = "Link"

// Profiles holds the built-in presets. "pdf" writes every document verbatim;
// "aspx" keeps only the first occurrence of each line.
var Profiles = map[string]HarvestConfig{
	"pdf": {
		Profile:     "pdf",
		Links:       LinksConfig{Input: "london_pdf_links.csv", Column: DefaultColumn},
		Acquisition: AcquisitionConfig{DocsDir: "pdf_files"},
		Conversion:  ConversionConfig{Backend: BackendFitz, Output: "combined_pdf.txt", Mode: ModeVerbatim},
		LogFormat:   LogPlain,
	},
	"aspx": {
		Profile:     "aspx",
		Links:       LinksConfig{Input: "london_aspx_links.csv", Column: DefaultColumn},
		Acquisition: AcquisitionConfig{DocsDir: "aspx_files"},
		Conversion:  ConversionConfig{Backend: BackendFitz, Output: "combined_aspx.txt", Mode: ModeDedup},
		LogFormat:   LogLeveled,
	},
}

// DefaultProfile is the preset used when none is named.
const DefaultProfile = "pdf"

// Profile returns a copy of the named preset.
func Profile(name string) (HarvestConfig, error) {
	if name == "" {
		name = DefaultProfile
	}
	cfg, ok := Profiles[name]
	if !ok {
		return HarvestConfig{}, fmt.Errorf("unknown profile %q", name)
	}
	return cfg, nil
}
