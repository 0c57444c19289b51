// Package controller provides output adapters for displaying scan and match results.
package controller

import (
	"context"

	m "codelens.dev/pkg/codelens/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeMatch
	ModeReports
)

func (s StartMode) title() string {
	switch s {
	case ModeMatch:
		return "Attribute Matching"
	case ModeReports:
		return "Reports"
	default:
		return "Repository Scan"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to repository scan mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithMatchMode sets the UI to attribute matching mode.
func WithMatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMatch
	}
}

// WithReportsMode sets the UI to report listing mode.
func WithReportsMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReports
	}
}

// UI defines the interface for displaying results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayScanReport(ctx context.Context, report m.Report) error
	DisplayReportFiles(ctx context.Context, files []m.ReportFile) error
	DisplayMatchResult(ctx context.Context, result m.MatchResult) error
	DisplayColumnComparison(ctx context.Context, result m.ColumnComparison) error
	DisplayPreprocessStats(ctx context.Context, dataset string, stats m.PreprocessStats)
}
