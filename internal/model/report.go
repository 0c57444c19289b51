package model

import (
	"fmt"
	"strings"
	"time"
)

// ReportTimestampLayout is the timestamp layout embedded in report file names.
const ReportTimestampLayout = "20060102_150405"

// ReportMarker is the fixed token that identifies report files.
const ReportMarker = "CodeLens"

// ReportFormat is an output format of a scan report.
type ReportFormat string

// Supported report formats.
const (
	FormatHTML  ReportFormat = "html"
	FormatJSON  ReportFormat = "json"
	FormatYAML  ReportFormat = "yaml"
	FormatSARIF ReportFormat = "sarif"
	FormatXLSX  ReportFormat = "xlsx"
)

// ReportFormats lists every supported format.
var ReportFormats = []ReportFormat{FormatHTML, FormatJSON, FormatYAML, FormatSARIF, FormatXLSX}

// ParseReportFormat parses a case-insensitive format name.
func ParseReportFormat(s string) (ReportFormat, error) {
	name := ReportFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range ReportFormats {
		if f == name {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown report format %q", s)
}

// Extension returns the file extension for the format, including the dot.
func (f ReportFormat) Extension() string {
	return "." + string(f)
}

// ReportMetadata describes a single scan run.
type ReportMetadata struct {
	RunID           string    `json:"run_id" yaml:"run_id"`
	ApplicationName string    `json:"application_name" yaml:"application_name"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	RepositoryPath  Path      `json:"repository_path" yaml:"repository_path"`
}

// Report is a scan result together with its run metadata.
type Report struct {
	Metadata ReportMetadata `json:"metadata" yaml:"metadata"`
	ScanResult `yaml:",inline"`
}

// ReportFile is a report found on disk.
type ReportFile struct {
	Name            string
	Path            Path
	ApplicationName string
	Format          ReportFormat
	Timestamp       time.Time
}

// ReportFileName builds "{app}_CodeLens_{YYYYMMDD_HHMMSS}{ext}".
func ReportFileName(application string, ts time.Time, format ReportFormat) string {
	return fmt.Sprintf("%s_%s_%s%s", application, ReportMarker, ts.Format(ReportTimestampLayout), format.Extension())
}

// ParseReportTimestamp extracts the timestamp from the last two "_" separated
// parts of a report file name. It returns the zero time when they do not parse.
func ParseReportTimestamp(name string) time.Time {
	stem := name
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}

	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return time.Time{}
	}

	ts, err := time.ParseInLocation(ReportTimestampLayout, parts[len(parts)-2]+"_"+parts[len(parts)-1], time.Local)
	if err != nil {
		return time.Time{}
	}

	return ts
}
