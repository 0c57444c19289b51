package adapter

import (
	"io"
	"strings"

	m "codelens.dev/pkg/codelens/internal/model"
)

// writeXLSXReport writes the Summary, Fields and Patterns sheets.
func writeXLSXReport(w io.Writer, report m.Report) error {
	book, err := newWorkbook()
	if err != nil {
		return err
	}
	defer book.close()

	s := report.Summary
	summary := [][]interface{}{
		{"Application", report.Metadata.ApplicationName},
		{"Run ID", report.Metadata.RunID},
		{"Scan Timestamp", report.Metadata.Timestamp.Format("2006-01-02 15:04:05")},
		{"Repository Path", string(report.Metadata.RepositoryPath)},
		{"Files Analyzed", s.FilesAnalyzed},
		{"Unique Demographic Fields", len(s.UniqueFields)},
		{"Demographic Fields Found", s.FieldsFound},
		{"Integration Patterns Found", s.PatternsFound},
	}

	if err := book.addSheet("Summary", []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	fields := make([][]interface{}, 0, s.FieldsFound)
	for _, match := range report.FieldMatches() {
		fields = append(fields, []interface{}{string(match.FilePath), match.FieldName, string(match.Category), match.LineNumber, match.LineText})
	}

	if err := book.addSheet("Fields", []string{"File", "Field", "Category", "Line", "Code Snippet"}, fields); err != nil {
		return err
	}

	patterns := make([][]interface{}, 0, len(report.Patterns))
	for _, p := range report.Patterns {
		patterns = append(patterns, []interface{}{string(p.FilePath), string(p.PatternType), p.SubType, p.LineNumber, p.LineText})
	}

	if err := book.addSheet("Patterns", []string{"File", "Pattern Type", "Sub Type", "Line", "Code Snippet"}, patterns); err != nil {
		return err
	}

	files := make([][]interface{}, 0, len(s.FileDetails))
	for _, d := range s.FileDetails {
		files = append(files, []interface{}{string(d.Path), d.Extension, m.LanguageFor(d.Extension), d.FieldsFound, d.PatternsFound, strings.TrimSpace(d.Error)})
	}

	if err := book.addSheet("Files", []string{"File", "Extension", "Language", "Demographic Fields", "Integration Patterns", "Error"}, files); err != nil {
		return err
	}

	return book.file.Write(w)
}
