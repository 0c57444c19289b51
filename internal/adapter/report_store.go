package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "codelens.dev/pkg/codelens/internal/model"
)

// ErrUnsupportedFormat is returned for report formats without a writer or reader.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// ReportStore persists scan reports and lists the reports of a directory.
type ReportStore interface {
	SaveReports(dir m.Path, report m.Report, formats []m.ReportFormat) ([]m.ReportFile, error)
	ListReports(dir m.Path, application string) ([]m.ReportFile, error)
	LoadReport(path m.Path) (m.Report, error)
}

type reportWriter func(w io.Writer, report m.Report) error

// LocalReportStore writes reports through a SourceFSAdapter.
type LocalReportStore struct {
	fs      SourceFSAdapter
	writers map[m.ReportFormat]reportWriter
}

// NewReportStore creates a ReportStore supporting every m.ReportFormat.
func NewReportStore(fs SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{
		fs: fs,
		writers: map[m.ReportFormat]reportWriter{
			m.FormatHTML:  writeHTMLReport,
			m.FormatJSON:  writeJSONReport,
			m.FormatYAML:  writeYAMLReport,
			m.FormatSARIF: writeSARIFReport,
			m.FormatXLSX:  writeXLSXReport,
		},
	}
}

// SaveReports writes one file per distinct format into dir and returns them
// in the order the formats were requested.
func (s *LocalReportStore) SaveReports(dir m.Path, report m.Report, formats []m.ReportFormat) ([]m.ReportFile, error) {
	if err := s.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}

	application := SafeFileName(report.Metadata.ApplicationName)
	seen := map[m.ReportFormat]struct{}{}
	files := make([]m.ReportFile, 0, len(formats))

	for _, format := range formats {
		if _, ok := seen[format]; ok {
			continue
		}

		seen[format] = struct{}{}

		write, ok := s.writers[format]
		if !ok {
			return files, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}

		var buf bytes.Buffer
		if err := write(&buf, report); err != nil {
			return files, fmt.Errorf("render %s report: %w", format, err)
		}

		name := m.ReportFileName(application, report.Metadata.Timestamp, format)
		path := s.fs.JoinPath(string(dir), name)

		if err := s.fs.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}

		slog.Info("Report generated", "path", path, "format", format)

		files = append(files, m.ReportFile{
			Name:            name,
			Path:            path,
			ApplicationName: application,
			Format:          format,
			Timestamp:       report.Metadata.Timestamp,
		})
	}

	return files, nil
}

// ListReports returns the report files in dir, newest first. When application
// is not empty only reports whose name starts with it are returned. A missing
// directory yields an empty list.
func (s *LocalReportStore) ListReports(dir m.Path, application string) ([]m.ReportFile, error) {
	infos, err := s.fs.ListDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []m.ReportFile{}, nil
		}

		return nil, fmt.Errorf("list reports: %w", err)
	}

	prefix := SafeFileName(application)
	files := []m.ReportFile{}

	for _, info := range infos {
		name := info.Name()
		if !strings.Contains(name, m.ReportMarker) {
			continue
		}

		if application != "" && !strings.HasPrefix(name, prefix) {
			continue
		}

		format, err := m.ParseReportFormat(strings.TrimPrefix(filepath.Ext(name), "."))
		if err != nil {
			continue
		}

		app := name
		if i := strings.Index(name, "_"+m.ReportMarker); i >= 0 {
			app = name[:i]
		}

		files = append(files, m.ReportFile{
			Name:            name,
			Path:            s.fs.JoinPath(string(dir), name),
			ApplicationName: app,
			Format:          format,
			Timestamp:       m.ParseReportTimestamp(name),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Timestamp.Equal(files[j].Timestamp) {
			return files[i].Name < files[j].Name
		}

		return files[i].Timestamp.After(files[j].Timestamp)
	})

	return files, nil
}

// LoadReport reads a JSON or YAML report back.
func (s *LocalReportStore) LoadReport(path m.Path) (m.Report, error) {
	var report m.Report

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return report, err
	}

	switch strings.ToLower(path.Ext()) {
	case m.FormatJSON.Extension():
		err = json.Unmarshal(data, &report)
	case m.FormatYAML.Extension(), ".yml":
		err = yaml.Unmarshal(data, &report)
	default:
		return report, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path.Ext())
	}

	if err != nil {
		return report, fmt.Errorf("decode %s: %w", path, err)
	}

	return report, nil
}

func writeJSONReport(w io.Writer, report m.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}

func writeYAMLReport(w io.Writer, report m.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return err
	}

	return enc.Close()
}

// SafeFileName replaces characters that cannot appear in a file name.
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)

	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}

		return r
	}, name)
}
