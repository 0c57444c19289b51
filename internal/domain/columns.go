package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "codelens.dev/pkg/codelens/internal/model"
)

// Column header matching thresholds.
const (
	DefaultColumnThreshold = 80
	MinColumnThreshold     = 50
	MaxColumnThreshold     = 100
)

// ErrColumnThreshold is returned for a column threshold outside 50..100.
var ErrColumnThreshold = errors.New("column threshold out of range")

// ColumnCompareArgs contains the arguments for matching dataset headers.
type ColumnCompareArgs struct {
	Source    m.Dataset
	Target    m.Dataset
	Threshold int
}

// CompareColumns pairs every source header with its single best target header
// by Ratio and keeps the pairs scoring at least the threshold, in source
// header order. A zero threshold means DefaultColumnThreshold.
func (a *analyzer) CompareColumns(ctx context.Context, args ColumnCompareArgs) (m.ColumnComparison, error) {
	if err := ctx.Err(); err != nil {
		return m.ColumnComparison{}, err
	}

	threshold := args.Threshold
	if threshold == 0 {
		threshold = DefaultColumnThreshold
	}

	if threshold < MinColumnThreshold || threshold > MaxColumnThreshold {
		return m.ColumnComparison{}, fmt.Errorf("%w: %d not in %d..%d",
			ErrColumnThreshold, threshold, MinColumnThreshold, MaxColumnThreshold)
	}

	result := m.ColumnComparison{
		Source:    m.ShapeOf(args.Source),
		Target:    m.ShapeOf(args.Target),
		Threshold: threshold,
		Matches:   []m.ColumnMatch{},
	}

	for _, pair := range a.Match(args.Source.Columns, args.Target.Columns, Ratio, threshold, 1) {
		result.Matches = append(result.Matches, m.ColumnMatch{
			SourceColumn: pair.Source,
			TargetColumn: pair.Target,
			Score:        pair.Score,
			SourceUnique: args.Source.DistinctCount(pair.Source),
			TargetUnique: args.Target.DistinctCount(pair.Target),
			SourceEmpty:  args.Source.EmptyCount(pair.Source),
			TargetEmpty:  args.Target.EmptyCount(pair.Target),
		})
	}

	slog.Info("Dataset columns compared",
		"source", args.Source.Name,
		"target", args.Target.Name,
		"threshold", threshold,
		"matches", len(result.Matches))

	return result, nil
}

func (a *analyzer) ExportColumnComparison(ctx context.Context, path m.Path, result m.ColumnComparison) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.WriteColumnComparison(path, result); err != nil {
		return fmt.Errorf("export column comparison: %w", err)
	}

	return nil
}
