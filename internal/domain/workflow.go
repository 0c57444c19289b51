package domain

import (
	"context"
	"fmt"

	"codelens.dev/pkg/codelens/internal/controller"
	m "codelens.dev/pkg/codelens/internal/model"
)

// MatchArgs contains the arguments for comparing two dataset files.
type MatchArgs struct {
	Source     m.Path
	Target     m.Path
	Column     string
	Algorithm  string
	Threshold  int
	Limit      int
	Preprocess bool
	Out        m.Path
	RemovedOut m.Path
}

// ColumnMatchArgs contains the arguments for matching the column headers of
// two dataset files.
type ColumnMatchArgs struct {
	Source    m.Path
	Target    m.Path
	Threshold int
	Out       m.Path
}

// ReportsArgs contains the arguments for listing stored reports.
type ReportsArgs struct {
	Reports     m.Path
	Application string
}

// ViewArgs contains the arguments for viewing a stored report.
type ViewArgs struct {
	Report m.Path
}

// Workflow defines the CLI use cases.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Match(ctx context.Context, args MatchArgs) error
	MatchColumns(ctx context.Context, args ColumnMatchArgs) error
	Reports(ctx context.Context, args ReportsArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	controller.UI
	Analyzer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(ui controller.UI, analyzer Analyzer) Workflow {
	return &workflow{
		UI:       ui,
		Analyzer: analyzer,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	if err := w.Start(ctx, controller.WithScanMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	outcome, err := w.Analyze(ctx, args)
	if err != nil {
		return err
	}

	if err := w.DisplayScanReport(ctx, outcome.Report); err != nil {
		return fmt.Errorf("display scan report: %w", err)
	}

	if len(outcome.Files) > 0 {
		if err := w.DisplayReportFiles(ctx, outcome.Files); err != nil {
			return fmt.Errorf("display report files: %w", err)
		}
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) Match(ctx context.Context, args MatchArgs) error {
	if err := w.Start(ctx, controller.WithMatchMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	source, err := w.LoadDataset(ctx, args.Source)
	if err != nil {
		return err
	}

	target, err := w.LoadDataset(ctx, args.Target)
	if err != nil {
		return err
	}

	if args.Preprocess {
		source, err = w.preprocess(ctx, source, args.RemovedOut)
		if err != nil {
			return err
		}

		target, _, _ = Preprocess(target)
	}

	result, err := w.Compare(ctx, CompareArgs{
		Source:    source,
		Target:    target,
		Column:    args.Column,
		Algorithm: args.Algorithm,
		Threshold: args.Threshold,
		Limit:     args.Limit,
	})
	if err != nil {
		return fmt.Errorf("compare datasets: %w", err)
	}

	if err := w.DisplayMatchResult(ctx, result); err != nil {
		return fmt.Errorf("display match result: %w", err)
	}

	if args.Out != "" && len(result.Matches) > 0 {
		if err := w.ExportMatches(ctx, args.Out, result); err != nil {
			return err
		}
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) MatchColumns(ctx context.Context, args ColumnMatchArgs) error {
	if err := w.Start(ctx, controller.WithMatchMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	source, err := w.LoadDataset(ctx, args.Source)
	if err != nil {
		return err
	}

	target, err := w.LoadDataset(ctx, args.Target)
	if err != nil {
		return err
	}

	result, err := w.CompareColumns(ctx, ColumnCompareArgs{
		Source:    source,
		Target:    target,
		Threshold: args.Threshold,
	})
	if err != nil {
		return fmt.Errorf("compare columns: %w", err)
	}

	if err := w.DisplayColumnComparison(ctx, result); err != nil {
		return fmt.Errorf("display column comparison: %w", err)
	}

	if args.Out != "" && len(result.Matches) > 0 {
		if err := w.ExportColumnComparison(ctx, args.Out, result); err != nil {
			return err
		}
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) preprocess(ctx context.Context, dataset m.Dataset, removedOut m.Path) (m.Dataset, error) {
	cleaned, stats, removed := Preprocess(dataset)
	w.DisplayPreprocessStats(ctx, dataset.Name, stats)

	if removedOut != "" && len(removed) > 0 {
		if err := w.ExportRemovedRows(ctx, removedOut, dataset.Columns, removed); err != nil {
			return m.Dataset{}, err
		}
	}

	return cleaned, nil
}

func (w *workflow) Reports(ctx context.Context, args ReportsArgs) error {
	if err := w.Start(ctx, controller.WithReportsMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	files, err := w.ListReports(ctx, args.Reports, args.Application)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}

	if err := w.DisplayReportFiles(ctx, files); err != nil {
		return fmt.Errorf("display report files: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithScanMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := report.Validate(); err != nil {
		return fmt.Errorf("invalid report %s: %w", args.Report, err)
	}

	if err := w.DisplayScanReport(ctx, report); err != nil {
		return fmt.Errorf("display scan report: %w", err)
	}

	w.Wait(ctx)

	return nil
}
