package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	m "codelens.dev/pkg/codelens/internal/model"
)

func newTable(buf *bytes.Buffer, header []string, align []int) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(align)

	return table
}

func renderSummaryTable(report m.Report) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Metric", "Value"}, []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	summary := report.Summary
	table.Append([]string{"Application", report.Metadata.ApplicationName})
	table.Append([]string{"Repository", string(report.Metadata.RepositoryPath)})
	table.Append([]string{"Files Analyzed", strconv.Itoa(summary.FilesAnalyzed)})
	table.Append([]string{"Unique Fields", strconv.Itoa(len(summary.UniqueFields))})
	table.Append([]string{"Field Occurrences", strconv.Itoa(summary.FieldsFound)})
	table.Append([]string{"Integration Patterns", strconv.Itoa(summary.PatternsFound)})
	table.Render()

	return buf.String()
}

func renderFieldTable(result m.ScanResult) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Field", "Category", "Occurrences"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	total := 0

	for _, freq := range result.FieldFrequencies() {
		table.Append([]string{freq.FieldName, string(freq.Category), strconv.Itoa(freq.Count)})

		total += freq.Count
	}

	table.SetFooter([]string{"Total", "", strconv.Itoa(total)})
	table.Render()

	return buf.String()
}

func renderPatternTable(result m.ScanResult) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Pattern Type", "Count"}, []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, pc := range result.PatternDistribution() {
		table.Append([]string{string(pc.PatternType), strconv.Itoa(pc.Count)})
	}

	table.SetFooter([]string{"Total", strconv.Itoa(len(result.Patterns))})
	table.Render()

	return buf.String()
}

func renderFileTable(result m.ScanResult) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Path", "Fields", "Patterns", "Status"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, detail := range result.Summary.FileDetails {
		status := "ok"
		if detail.Error != "" {
			status = detail.Error
		}

		table.Append([]string{
			string(detail.Path),
			strconv.Itoa(detail.FieldsFound),
			strconv.Itoa(detail.PatternsFound),
			status,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(result.Summary.FileDetails)), "", "", ""})
	table.Render()

	return buf.String()
}

func renderReportFileTable(files []m.ReportFile) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Application", "Format", "Generated", "File"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, file := range files {
		generated := "-"
		if !file.Timestamp.IsZero() {
			generated = file.Timestamp.Format("2006-01-02 15:04:05")
		}

		table.Append([]string{file.ApplicationName, strings.ToUpper(string(file.Format)), generated, file.Name})
	}

	table.Render()

	return buf.String()
}

func renderMatchTable(result m.MatchResult) string {
	var buf bytes.Buffer

	header := make([]string, 0, len(result.SourceColumns)+len(result.TargetColumns)+1)
	header = append(header, prefixed("C360", result.SourceColumns)...)
	header = append(header, prefixed("Target", result.TargetColumns)...)
	header = append(header, "Score")

	align := make([]int, len(header))
	for i := range align {
		align[i] = tablewriter.ALIGN_LEFT
	}

	align[len(align)-1] = tablewriter.ALIGN_RIGHT

	table := newTable(&buf, header, align)

	for _, match := range result.Matches {
		row := make([]string, 0, len(header))
		row = appendValues(row, match.Source, result.SourceColumns)
		row = appendValues(row, match.Target, result.TargetColumns)
		row = append(row, strconv.Itoa(match.Score))
		table.Append(row)
	}

	table.Render()

	return buf.String()
}

func renderMatchSummary(result m.MatchResult) string {
	return fmt.Sprintf("Column: %s | Algorithm: %s | Threshold: %d\nMatches: %d | High confidence (>=%d): %d | Average score: %.1f\n",
		result.Column, result.Algorithm, result.Threshold,
		result.Summary.Total, m.HighConfidenceScore, result.Summary.HighConfidence, result.Summary.AverageScore)
}

func renderDatasetShapes(result m.ColumnComparison) string {
	return fmt.Sprintf("File 1: %s (%d rows, %d columns)\nFile 2: %s (%d rows, %d columns)\n",
		result.Source.Name, result.Source.Rows, result.Source.Columns,
		result.Target.Name, result.Target.Rows, result.Target.Columns)
}

func renderColumnTable(result m.ColumnComparison) string {
	var buf bytes.Buffer

	table := newTable(&buf,
		[]string{"File 1 Column", "File 2 Column", "Score", "Unique 1", "Unique 2", "Nulls 1", "Nulls 2"},
		[]int{
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		})

	for _, match := range result.Matches {
		table.Append([]string{
			match.SourceColumn,
			match.TargetColumn,
			strconv.Itoa(match.Score),
			strconv.Itoa(match.SourceUnique),
			strconv.Itoa(match.TargetUnique),
			strconv.Itoa(match.SourceEmpty),
			strconv.Itoa(match.TargetEmpty),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Threshold %d", result.Threshold), "", "", "", "", "", fmt.Sprintf("Matched %d", len(result.Matches))})
	table.Render()

	return buf.String()
}

func renderPreprocessStats(dataset string, stats m.PreprocessStats) string {
	return fmt.Sprintf("%s: %d rows -> %d rows (%d empty description, %d integer description, %d single value)\n",
		dataset, stats.InitialRows, stats.FinalRows,
		stats.EmptyDescription, stats.IntegerDescription, stats.SingleValue)
}

func prefixed(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = prefix + ": " + col
	}

	return out
}

func appendValues(row []string, record m.Record, columns []string) []string {
	for _, col := range columns {
		row = append(row, record[col])
	}

	return row
}
