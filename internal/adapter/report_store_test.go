package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	m "codelens.dev/pkg/codelens/internal/model"
)

func sampleReport(root string) m.Report {
	javaPath := m.Path(filepath.Join(root, "src", "Orders.java"))
	pyPath := m.Path(filepath.Join(root, "app.py"))

	result := m.NewScanResult([]m.FileAnalysis{
		{
			File: m.NewCodeFile(javaPath),
			Fields: []m.FieldOccurrences{
				{FieldName: "email", Category: m.CategoryContact, Occurrences: []m.Occurrence{{LineNumber: 3, LineText: "String email = \"<a@b>\";"}}},
			},
			Patterns: []m.IntegrationPatternMatch{
				{PatternType: m.PatternMessaging, SubType: "kafka", FilePath: javaPath, LineNumber: 1, LineText: "@KafkaListener(topics=\"orders\")"},
				{PatternType: m.PatternMessaging, SubType: "kafka", FilePath: javaPath, LineNumber: 1, LineText: "@KafkaListener(topics=\"orders\")"},
			},
		},
		{
			File: m.NewCodeFile(pyPath),
			Fields: []m.FieldOccurrences{
				{FieldName: "city", Category: m.CategoryAddress, Occurrences: []m.Occurrence{{LineNumber: 2, LineText: "city = row['city']"}}},
			},
		},
	})

	return m.Report{
		Metadata: m.ReportMetadata{
			RunID:           "run-1",
			ApplicationName: "Orders",
			Timestamp:       time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local),
			RepositoryPath:  m.Path(root),
		},
		ScanResult: result,
	}
}

func TestReportStore_SaveReports(t *testing.T) {
	dir := t.TempDir()
	store := NewReportStore(NewLocalSourceFSAdapter())
	report := sampleReport("/repo")

	files, err := store.SaveReports(m.Path(filepath.Join(dir, "reports")), report, []m.ReportFormat{
		m.FormatHTML, m.FormatJSON, m.FormatYAML, m.FormatSARIF, m.FormatXLSX, m.FormatJSON,
	})
	require.NoError(t, err)
	require.Len(t, files, 5, "duplicate formats are written once")

	assert.Equal(t, "Orders_CodeLens_20240501_103000.html", files[0].Name)
	assert.Equal(t, m.FormatHTML, files[0].Format)

	for _, f := range files {
		info, err := os.Stat(string(f.Path))
		require.NoError(t, err, f.Name)
		assert.Positive(t, info.Size(), f.Name)
	}

	t.Run("json", func(t *testing.T) {
		data, err := os.ReadFile(string(files[1].Path))
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Contains(t, doc, "metadata")
		assert.Contains(t, doc, "demographic_data")
		assert.Contains(t, doc, "integration_patterns")

		summary := doc["summary"].(map[string]interface{})
		assert.Equal(t, []interface{}{"city", "email"}, summary["unique_demographic_fields"])
		assert.EqualValues(t, 2, summary["demographic_fields_found"])
	})

	t.Run("yaml and json load back", func(t *testing.T) {
		for _, f := range files[1:3] {
			loaded, err := store.LoadReport(f.Path)
			require.NoError(t, err, f.Name)
			assert.Equal(t, report.Metadata.RunID, loaded.Metadata.RunID)
			assert.Equal(t, report.Summary, loaded.Summary)
			assert.Equal(t, report.Fields, loaded.Fields)
			assert.NoError(t, loaded.Validate())
		}
	})

	t.Run("sarif", func(t *testing.T) {
		data, err := os.ReadFile(string(files[2+1].Path))
		require.NoError(t, err)

		text := string(data)
		assert.Contains(t, text, `"version": "2.1.0"`)
		assert.Contains(t, text, DemographicRuleID(m.CategoryContact))
		assert.Contains(t, text, IntegrationRuleID(m.PatternMessaging, "kafka"))
		assert.Contains(t, text, `"uri": "src/Orders.java"`)
		assert.Equal(t, 1, strings.Count(text, `"id": "integration/messaging/kafka"`), "rules are deduplicated")
	})

	t.Run("xlsx", func(t *testing.T) {
		f, err := excelize.OpenFile(string(files[4].Path))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, []string{"Summary", "Fields", "Patterns", "Files"}, f.GetSheetList())

		rows, err := f.GetRows("Fields")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"File", "Field", "Category", "Line", "Code Snippet"}, rows[0])
		assert.Equal(t, "email", rows[1][1])
	})
}

func TestReportStore_UnsupportedFormat(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())

	_, err := store.SaveReports(m.Path(t.TempDir()), sampleReport("/repo"), []m.ReportFormat{"pdf"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = store.LoadReport(m.Path("x.html"))
	require.Error(t, err)
}

func TestReportStore_ListReports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Orders_CodeLens_20240101_090000.html",
		"Orders_CodeLens_20240301_090000.json",
		"Billing_CodeLens_20240201_090000.html",
		"Orders_CodeLens_broken.html",
		"notes.txt",
		"Orders_CodeLens_20240401_090000.pdf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	store := NewReportStore(NewLocalSourceFSAdapter())

	all, err := store.ListReports(m.Path(dir), "")
	require.NoError(t, err)

	var names []string
	for _, f := range all {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{
		"Orders_CodeLens_20240301_090000.json",
		"Billing_CodeLens_20240201_090000.html",
		"Orders_CodeLens_20240101_090000.html",
		"Orders_CodeLens_broken.html",
	}, names)
	assert.True(t, all[3].Timestamp.IsZero())
	assert.Equal(t, "Billing", all[1].ApplicationName)

	orders, err := store.ListReports(m.Path(dir), "Orders")
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	missing, err := store.ListReports(m.Path(filepath.Join(dir, "missing")), "")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestScanReportPage_EscapesAndSections(t *testing.T) {
	var buf bytes.Buffer

	report := sampleReport("/repo")
	report.Metadata.ApplicationName = "<Orders>"

	require.NoError(t, ScanReportPage(report).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "&lt;Orders&gt;")
	assert.NotContains(t, out, "<Orders>")
	assert.Contains(t, out, "String email = &#34;&lt;a@b&gt;&#34;;")
	assert.Contains(t, out, "Demographic Field Frequency")
	assert.Contains(t, out, "Integration Patterns Summary")
	assert.Contains(t, out, "Java Analysis")
	assert.Contains(t, out, "messaging: kafka")
}

func TestScanReportPage_ListsFieldOccurrences(t *testing.T) {
	var buf bytes.Buffer

	report := sampleReport("/repo")

	require.NoError(t, ScanReportPage(report).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Demographic Data Details")
	assert.Contains(t, out, "<strong>Field: email</strong> (Type: contact)")
	assert.Contains(t, out, "<tr><td>Line 3</td><td><code>String email = &#34;&lt;a@b&gt;&#34;;</code></td></tr>")
	assert.Contains(t, out, "<strong>Field: city</strong> (Type: address)")
	assert.Contains(t, out, "<tr><td>Line 2</td><td><code>city = row[&#39;city&#39;]</code></td></tr>")
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "My-App", SafeFileName(" My App "))
	assert.Equal(t, "a-b-c", SafeFileName("a/b\\c"))
}
