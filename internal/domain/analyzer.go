package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"codelens.dev/pkg/codelens/internal/adapter"
	m "codelens.dev/pkg/codelens/internal/model"
)

// DefaultApplicationName names reports when no application name is given.
const DefaultApplicationName = "MyApp"

// Match types select the dataset column that is compared.
const (
	MatchTypeAttributeName        = "attribute-name"
	MatchTypeBusinessName         = "business-name"
	MatchTypeAttributeDescription = "attribute-description"
)

var matchTypeColumns = map[string]string{
	MatchTypeAttributeName:        "attr_name",
	MatchTypeBusinessName:         "business_name",
	MatchTypeAttributeDescription: DescriptionColumn,
}

// ColumnForMatchType returns the dataset column compared for a match type.
// Unknown match types fall back to attr_name.
func ColumnForMatchType(matchType string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(matchType)), " ", "-")
	if col, ok := matchTypeColumns[key]; ok {
		return col
	}

	return matchTypeColumns[MatchTypeAttributeName]
}

// ScanArgs contains the arguments for scanning a repository.
type ScanArgs struct {
	Root            m.Path
	ApplicationName string
	Reports         m.Path
	Formats         []m.ReportFormat
	Extensions      []string
	Workers         int
}

// ScanOutcome is a scan report together with the report files written for it.
type ScanOutcome struct {
	Report m.Report
	Files  []m.ReportFile
}

// CompareArgs contains the arguments for comparing two datasets.
type CompareArgs struct {
	Source    m.Dataset
	Target    m.Dataset
	Column    string
	Algorithm string
	Threshold int
	Limit     int
}

// Analyzer runs scans and dataset comparisons for the CLI and the web UI.
type Analyzer interface {
	Analyze(ctx context.Context, args ScanArgs) (ScanOutcome, error)
	Compare(ctx context.Context, args CompareArgs) (m.MatchResult, error)
	CompareColumns(ctx context.Context, args ColumnCompareArgs) (m.ColumnComparison, error)
	LoadDataset(ctx context.Context, path m.Path) (m.Dataset, error)
	ExportMatches(ctx context.Context, path m.Path, result m.MatchResult) error
	ExportRemovedRows(ctx context.Context, path m.Path, columns []string, rows []m.RemovedRow) error
	ExportColumnComparison(ctx context.Context, path m.Path, result m.ColumnComparison) error
	ListReports(ctx context.Context, dir m.Path, application string) ([]m.ReportFile, error)
	LoadReport(ctx context.Context, path m.Path) (m.Report, error)
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzer)

// WithClock sets the time source used for report timestamps.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *analyzer) {
		a.now = now
	}
}

// WithIDGenerator sets the generator used for report run IDs.
func WithIDGenerator(newID func() string) AnalyzerOption {
	return func(a *analyzer) {
		a.newID = newID
	}
}

type analyzer struct {
	Scanner
	AttributeMatcher
	adapter.ReportStore
	adapter.DatasetAdapter

	now   func() time.Time
	newID func() string
}

// NewAnalyzer creates an Analyzer with the provided dependencies.
func NewAnalyzer(
	scanner Scanner,
	matcher AttributeMatcher,
	reportStore adapter.ReportStore,
	datasets adapter.DatasetAdapter,
	opts ...AnalyzerOption,
) Analyzer {
	a := &analyzer{
		Scanner:          scanner,
		AttributeMatcher: matcher,
		ReportStore:      reportStore,
		DatasetAdapter:   datasets,
		now:              time.Now,
		newID:            uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *analyzer) Analyze(ctx context.Context, args ScanArgs) (ScanOutcome, error) {
	result, err := a.Scan(ctx, args.Root, WithExtensions(args.Extensions...), WithWorkers(args.Workers))
	if err != nil {
		return ScanOutcome{}, fmt.Errorf("scan repository: %w", err)
	}

	application := strings.TrimSpace(args.ApplicationName)
	if application == "" {
		application = DefaultApplicationName
	}

	report := m.Report{
		Metadata: m.ReportMetadata{
			RunID:           a.newID(),
			ApplicationName: application,
			Timestamp:       a.now(),
			RepositoryPath:  args.Root,
		},
		ScanResult: result,
	}

	outcome := ScanOutcome{Report: report}

	if len(args.Formats) == 0 {
		return outcome, nil
	}

	if err := ctx.Err(); err != nil {
		return ScanOutcome{}, err
	}

	files, err := a.SaveReports(args.Reports, report, args.Formats)
	if err != nil {
		return ScanOutcome{}, fmt.Errorf("save reports: %w", err)
	}

	outcome.Files = files

	slog.Info("Scan completed",
		"run_id", report.Metadata.RunID,
		"application", application,
		"files", result.Summary.FilesAnalyzed,
		"reports", len(files))

	return outcome, nil
}

func (a *analyzer) Compare(ctx context.Context, args CompareArgs) (m.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return m.MatchResult{}, err
	}

	name := args.Algorithm
	if strings.TrimSpace(name) == "" {
		name = AlgorithmRatio
	}

	algorithm, err := LookupAlgorithm(name)
	if err != nil {
		return m.MatchResult{}, err
	}

	threshold := args.Threshold
	if threshold < 0 {
		threshold = DefaultMatchThreshold
	}

	limit := args.Limit
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	result := m.MatchResult{
		Column:        args.Column,
		Algorithm:     algorithm.Name,
		Threshold:     threshold,
		SourceColumns: args.Source.Columns,
		TargetColumns: args.Target.Columns,
		Matches:       []m.RecordMatch{},
	}

	if !args.Source.HasColumn(args.Column) || !args.Target.HasColumn(args.Column) {
		slog.Warn("Comparison column missing", "column", args.Column,
			"source", args.Source.Name, "target", args.Target.Name)
		result.Summarize()

		return result, nil
	}

	matches := a.Match(args.Source.Values(args.Column), args.Target.Values(args.Column),
		algorithm.Score, threshold, limit)

	for _, match := range matches {
		source, _ := args.Source.FirstWith(args.Column, match.Source)
		target, _ := args.Target.FirstWith(args.Column, match.Target)
		result.Matches = append(result.Matches, m.RecordMatch{
			Score:  match.Score,
			Source: source,
			Target: target,
		})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Score > result.Matches[j].Score
	})

	result.Summarize()

	slog.Info("Datasets compared",
		"column", args.Column,
		"algorithm", algorithm.Name,
		"matches", result.Summary.Total)

	return result, nil
}

func (a *analyzer) LoadDataset(ctx context.Context, path m.Path) (m.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return m.Dataset{}, err
	}

	dataset, err := a.ReadDataset(path)
	if err != nil {
		return m.Dataset{}, fmt.Errorf("load dataset %s: %w", path, err)
	}

	return dataset, nil
}

func (a *analyzer) ExportMatches(ctx context.Context, path m.Path, result m.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.WriteMatchResult(path, result); err != nil {
		return fmt.Errorf("export matches: %w", err)
	}

	return nil
}

func (a *analyzer) ExportRemovedRows(ctx context.Context, path m.Path, columns []string, rows []m.RemovedRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.WriteRemovedRows(path, columns, rows); err != nil {
		return fmt.Errorf("export removed rows: %w", err)
	}

	return nil
}

func (a *analyzer) ListReports(ctx context.Context, dir m.Path, application string) ([]m.ReportFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.ReportStore.ListReports(dir, application)
}

func (a *analyzer) LoadReport(ctx context.Context, path m.Path) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	return a.ReportStore.LoadReport(path)
}
