package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "codelens.dev/pkg/codelens/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayScanReport prints the summary, field, pattern and file tables of a report.
func (s *SimpleUI) DisplayScanReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(report))

	if len(report.Summary.UniqueFields) > 0 {
		s.printf("\nDemographic fields\n%s", renderFieldTable(report.ScanResult))
	}

	if len(report.Patterns) > 0 {
		s.printf("\nIntegration patterns\n%s", renderPatternTable(report.ScanResult))
	}

	if len(report.Summary.FileDetails) > 0 {
		s.printf("\nFiles\n%s", renderFileTable(report.ScanResult))
	}

	return nil
}

// DisplayReportFiles prints the list of stored reports.
func (s *SimpleUI) DisplayReportFiles(ctx context.Context, files []m.ReportFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(files) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	s.printf("\n%s", renderReportFileTable(files))

	return nil
}

// DisplayMatchResult prints the matched rows and the match summary.
func (s *SimpleUI) DisplayMatchResult(ctx context.Context, result m.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(result.Matches) == 0 {
		s.printf("No matches found for column %q\n", result.Column)
		return nil
	}

	s.printf("\n%s\n%s", renderMatchTable(result), renderMatchSummary(result))

	return nil
}

// DisplayColumnComparison prints the matched column headers and their statistics.
func (s *SimpleUI) DisplayColumnComparison(ctx context.Context, result m.ColumnComparison) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderDatasetShapes(result))

	if len(result.Matches) == 0 {
		s.printf("No matching columns found with threshold %d\n", result.Threshold)
		return nil
	}

	s.printf("%s", renderColumnTable(result))

	return nil
}

// DisplayPreprocessStats prints how many rows preprocessing removed.
func (s *SimpleUI) DisplayPreprocessStats(ctx context.Context, dataset string, stats m.PreprocessStats) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", renderPreprocessStats(dataset, stats))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
