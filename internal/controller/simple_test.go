package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "codelens.dev/pkg/codelens/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayScanReport(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayScanReport(context.Background(), testReport()); err != nil {
		t.Fatalf("DisplayScanReport() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"Orders", "/repo", "FIRST_NAME", "EMAIL", "MESSAGING", "/repo/src/Orders.java", "permission denied",
	} {
		if !strings.Contains(strings.ToUpper(got), strings.ToUpper(want)) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestSimpleUI_DisplayScanReport_Empty(t *testing.T) {
	ui, buf := newTestSimpleUI()
	report := m.Report{ScanResult: m.NewScanResult(nil)}

	if err := ui.DisplayScanReport(context.Background(), report); err != nil {
		t.Fatalf("DisplayScanReport() error = %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "Demographic fields") {
		t.Errorf("empty report should not print a field table, got:\n%s", got)
	}
	if !strings.Contains(strings.ToUpper(got), "FILES ANALYZED") {
		t.Errorf("summary table missing, got:\n%s", got)
	}
}

func TestSimpleUI_DisplayReportFiles(t *testing.T) {
	tests := []struct {
		name         string
		files        []m.ReportFile
		wantContains []string
	}{
		{
			name:         "no reports",
			files:        nil,
			wantContains: []string{"No reports found"},
		},
		{
			name: "reports listed",
			files: []m.ReportFile{
				{
					Name:            "Orders_CodeLens_20240501_103000.json",
					ApplicationName: "Orders",
					Format:          m.FormatJSON,
					Timestamp:       time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
				},
			},
			wantContains: []string{"Orders_CodeLens_20240501_103000.json", "JSON", "2024-05-01 10:30:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()

			if err := ui.DisplayReportFiles(context.Background(), tt.files); err != nil {
				t.Fatalf("DisplayReportFiles() error = %v", err)
			}

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayMatchResult(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayMatchResult(context.Background(), testMatchResult()); err != nil {
		t.Fatalf("DisplayMatchResult() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"customer_id", "customerid", "91", "Matches: 2", "High confidence (>=80): 1", "80.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestSimpleUI_DisplayMatchResult_NoMatches(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayMatchResult(context.Background(), m.MatchResult{Column: "business_name"}); err != nil {
		t.Fatalf("DisplayMatchResult() error = %v", err)
	}

	if !strings.Contains(buf.String(), `No matches found for column "business_name"`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSimpleUI_DisplayColumnComparison(t *testing.T) {
	ui, buf := newTestSimpleUI()

	result := m.ColumnComparison{
		Source:    m.DatasetShape{Name: "first.xlsx", Rows: 3, Columns: 4},
		Target:    m.DatasetShape{Name: "second.csv", Rows: 2, Columns: 5},
		Threshold: 80,
		Matches: []m.ColumnMatch{
			{SourceColumn: "customer_id", TargetColumn: "customerid", Score: 91, SourceUnique: 2, TargetUnique: 1, SourceEmpty: 0, TargetEmpty: 1},
		},
	}

	if err := ui.DisplayColumnComparison(context.Background(), result); err != nil {
		t.Fatalf("DisplayColumnComparison() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"first.xlsx (3 rows, 4 columns)", "second.csv (2 rows, 5 columns)", "customer_id", "customerid", "91"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}

	if !strings.Contains(strings.ToUpper(got), "MATCHED 1") {
		t.Errorf("output missing match count footer, got:\n%s", got)
	}
}

func TestSimpleUI_DisplayColumnComparison_NoMatches(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayColumnComparison(context.Background(), m.ColumnComparison{Threshold: 95}); err != nil {
		t.Fatalf("DisplayColumnComparison() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No matching columns found with threshold 95") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSimpleUI_DisplayPreprocessStats(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ui.DisplayPreprocessStats(context.Background(), "c360.xlsx", m.PreprocessStats{
		InitialRows: 10, FinalRows: 6, TotalRemoved: 4, EmptyDescription: 2, IntegerDescription: 1, SingleValue: 1,
	})

	if !strings.Contains(buf.String(), "c360.xlsx: 10 rows -> 6 rows") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); err == nil {
		t.Error("Start() should fail on a cancelled context")
	}
	if err := ui.DisplayScanReport(ctx, testReport()); err == nil {
		t.Error("DisplayScanReport() should fail on a cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed, got: %s", buf.String())
	}
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Error("non-TTY output should use SimpleUI")
	}
	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Error("TTY output should use TUI")
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}
