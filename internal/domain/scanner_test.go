package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codelens.dev/pkg/codelens/internal/adapter"
	m "codelens.dev/pkg/codelens/internal/model"
)

func writeRepoFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func newTestScanner(opts ...ScannerOption) Scanner {
	return NewScanner(adapter.NewLocalSourceFSAdapter(), opts...)
}

func TestScanner_DemographicField(t *testing.T) {
	root := t.TempDir()
	path := writeRepoFile(t, root, "src/Customer.java", "String email = getEmail();\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.FieldMatch{{
		FieldName:  "email",
		Category:   m.CategoryContact,
		FilePath:   m.Path(path),
		LineNumber: 1,
		LineText:   "String email = getEmail();",
	}}, result.FieldMatches())
	assert.Equal(t, 1, result.Summary.FieldsFound)
	assert.Equal(t, []string{"email"}, result.Summary.UniqueFields)
}

func TestScanner_JavaTierAddsKafkaListener(t *testing.T) {
	root := t.TempDir()
	javaPath := writeRepoFile(t, root, "OrderListener.java", `    @KafkaListener(topics="orders")`+"\n")
	pyPath := writeRepoFile(t, root, "listener.py", `@KafkaListener(topics="orders")`+"\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	var javaRecords, pyRecords []m.IntegrationPatternMatch
	for _, p := range result.Patterns {
		switch p.FilePath {
		case m.Path(javaPath):
			javaRecords = append(javaRecords, p)
		case m.Path(pyPath):
			pyRecords = append(pyRecords, p)
		}
	}

	want := []m.IntegrationPatternMatch{
		{PatternType: m.PatternMessaging, SubType: "kafka", FilePath: m.Path(javaPath), LineNumber: 1, LineText: `@KafkaListener(topics="orders")`},
		{PatternType: m.PatternMessaging, SubType: "jms", FilePath: m.Path(javaPath), LineNumber: 1, LineText: `@KafkaListener(topics="orders")`},
		{PatternType: m.PatternMessaging, SubType: "kafka", FilePath: m.Path(javaPath), LineNumber: 1, LineText: `@KafkaListener(topics="orders")`},
	}
	assert.Equal(t, want, javaRecords, "generic kafka and jms records plus the Java-tier kafka record")
	assert.Len(t, pyRecords, 2, "Java tier only applies to .java files")
}

func TestScanner_OnlyTestFiles(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "tests/foo_test.py", "email = 1\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Summary.FilesAnalyzed)
	assert.Empty(t, result.Fields)
	assert.Empty(t, result.Patterns)
}

func TestScanner_TestMarkers(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "test_app.py", "email\n")
	writeRepoFile(t, root, "app_test.js", "email\n")
	writeRepoFile(t, root, "Test/Helper.java", "email\n")
	writeRepoFile(t, root, "pkg/test/util.rb", "email\n")
	writeRepoFile(t, root, "pkg/contest.py", "email\n")
	writeRepoFile(t, root, "latest/app.py", "email\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	var analysed []string
	for _, d := range result.Summary.FileDetails {
		rel, err := filepath.Rel(root, string(d.Path))
		require.NoError(t, err)
		analysed = append(analysed, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"latest/app.py", "pkg/contest.py"}, analysed)
}

func TestScanner_ExtensionAllowList(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "main.go", "email := 1\n")
	writeRepoFile(t, root, "README.md", "email\n")
	writeRepoFile(t, root, "schema.xsd", "<xs:element name=\"email\"/>\n")
	writeRepoFile(t, root, "app.properties", "db.url=jdbc:postgresql://db\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	require.Len(t, result.Summary.FileDetails, 2)
	assert.Equal(t, ".properties", result.Summary.FileDetails[0].Extension)
	assert.Equal(t, ".xsd", result.Summary.FileDetails[1].Extension)

	custom, err := newTestScanner(WithExtensions(".go")).Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	require.Len(t, custom.Summary.FileDetails, 1)
	assert.Equal(t, ".go", custom.Summary.FileDetails[0].Extension)
}

func TestScanner_OccurrencesPerMatch(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "app.py", "email, EMAIL, email\r\nfirst_name = name\rcity\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	require.Len(t, result.Fields, 1)

	fields := result.Fields[0].Fields
	require.Len(t, fields, 5)

	assert.Equal(t, "email", fields[0].FieldName)
	assert.Equal(t, []m.Occurrence{
		{LineNumber: 1, LineText: "email, EMAIL, email"},
		{LineNumber: 1, LineText: "email, EMAIL, email"},
	}, fields[0].Occurrences)
	assert.Equal(t, "EMAIL", fields[1].FieldName, "field names keep the matched text")
	assert.Equal(t, "first_name", fields[2].FieldName)
	assert.Equal(t, "name", fields[3].FieldName)
	assert.Equal(t, m.CategoryName, fields[3].Category)
	assert.Equal(t, 2, fields[3].Occurrences[0].LineNumber)
	assert.Equal(t, "city", fields[4].FieldName)
	assert.Equal(t, 3, fields[4].Occurrences[0].LineNumber)

	assert.Equal(t, 6, result.Summary.FieldsFound)
	assert.Equal(t, []string{"EMAIL", "city", "email", "first_name", "name"}, result.Summary.UniqueFields)
	require.NoError(t, result.Validate())
}

func TestScanner_OneRecordPerSubTypePerLine(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "bus.js", "topic topic topic\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	var subTypes []string
	for _, p := range result.Patterns {
		subTypes = append(subTypes, p.SubType)
	}

	assert.Equal(t, []string{"kafka", "jms"}, subTypes)
}

func TestScanner_CategoryFixedByFirstMatch(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "a.py", "contact\ncontact\n")

	rules := []Rule{
		{Tier: TierDemographic, Category: m.CategoryContact, Expr: regexp.MustCompile(`(?i)\bcontact\b`)},
		{Tier: TierDemographic, Category: m.CategoryName, Expr: regexp.MustCompile(`(?i)\bcontact\b`)},
	}

	result, err := newTestScanner(WithRules(rules)).Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	require.Len(t, result.Fields[0].Fields, 1)

	field := result.Fields[0].Fields[0]
	assert.Equal(t, m.CategoryContact, field.Category)
	assert.Len(t, field.Occurrences, 4)
}

func TestScanner_InvalidUTF8FileIsListedButSkipped(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "a.py", "email\n")
	writeRepoFile(t, root, "b.py", "email \xff\xfe\n")

	result, err := newTestScanner().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	require.Len(t, result.Summary.FileDetails, 2)
	assert.Empty(t, result.Summary.FileDetails[0].Error)
	assert.Equal(t, ErrInvalidEncoding.Error(), result.Summary.FileDetails[1].Error)
	assert.Equal(t, 0, result.Summary.FileDetails[1].FieldsFound)
	assert.Equal(t, 1, result.Summary.FieldsFound)
}

func TestScanner_RescanIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "svc/Api.java", "@GetMapping(\"/api/customers\")\npublic Customer get(String customerId) {\n")
	writeRepoFile(t, root, "svc/db.py", "cursor.execute('select * from users where email = %s')\n")
	writeRepoFile(t, root, "conf/app.xml", "<endpoint_url>https://example.com/ws?wsdl</endpoint_url>\n")

	s := newTestScanner()

	first, err := s.Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	second, err := s.Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	parallel, err := newTestScanner(WithWorkers(4)).Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Equal(t, first, parallel)
}

func TestScanner_RootErrors(t *testing.T) {
	root := t.TempDir()
	file := writeRepoFile(t, root, "a.py", "")

	_, err := newTestScanner().Scan(context.Background(), m.Path(filepath.Join(root, "missing")))
	require.ErrorIs(t, err, ErrRootNotFound)

	_, err = newTestScanner().Scan(context.Background(), m.Path(file))
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanner_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "a.py", "email\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScanner().Scan(ctx, m.Path(root))
	require.ErrorIs(t, err, context.Canceled)
}

type failingWalkFS struct {
	*adapter.LocalSourceFSAdapter
	err error
}

func (f failingWalkFS) Walk(root m.Path, _ bool, fn adapter.FilepathWalkFunc) error {
	return fn(string(root)+"/locked", nil, f.err)
}

func TestScanner_WalkErrorAbortsScan(t *testing.T) {
	root := t.TempDir()
	denied := errors.New("permission denied")

	s := NewScanner(failingWalkFS{LocalSourceFSAdapter: adapter.NewLocalSourceFSAdapter(), err: denied})

	result, err := s.Scan(context.Background(), m.Path(root))
	require.ErrorIs(t, err, denied)
	assert.Equal(t, m.ScanResult{}, result)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\r\nb\rc"))
}

func TestScanner_PerCallOptions(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "app.py", "email = 1\n")
	writeRepoFile(t, root, "App.java", "String email;\n")

	s := newTestScanner()

	result, err := s.Scan(context.Background(), m.Path(root), WithExtensions(".py"), WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.FilesAnalyzed)

	result, err = s.Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.FilesAnalyzed, "overrides must not leak into later scans")
}
