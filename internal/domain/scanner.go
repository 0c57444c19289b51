package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"codelens.dev/pkg/codelens/internal/adapter"
	m "codelens.dev/pkg/codelens/internal/model"
)

var (
	// ErrRootNotFound is returned when the scan root does not exist.
	ErrRootNotFound = errors.New("scan root not found")
	// ErrNotDirectory is returned when the scan root is not a directory.
	ErrNotDirectory = errors.New("scan root is not a directory")
	// ErrInvalidEncoding marks files that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// Scanner walks a repository and reports demographic fields and integration
// patterns found in its source files.
// Options passed to Scan override the scanner's own for that call only.
type Scanner interface {
	Scan(ctx context.Context, root m.Path, opts ...ScannerOption) (m.ScanResult, error)
}

// ScannerOption configures a Scanner.
type ScannerOption func(*scanner)

// WithExtensions replaces the extension allow-list. Extensions include the dot.
func WithExtensions(exts ...string) ScannerOption {
	return func(s *scanner) {
		if len(exts) == 0 {
			return
		}

		s.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			s.extensions[ext] = struct{}{}
		}
	}
}

// WithWorkers sets how many files are analysed concurrently.
func WithWorkers(n int) ScannerOption {
	return func(s *scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRules replaces the pattern table.
func WithRules(rules []Rule) ScannerOption {
	return func(s *scanner) {
		s.rules = rules
	}
}

// WithTestMarkers replaces the path fragments that identify test files.
func WithTestMarkers(markers ...string) ScannerOption {
	return func(s *scanner) {
		s.markers = make([]string, 0, len(markers))
		for _, marker := range markers {
			s.markers = append(s.markers, strings.ToLower(marker))
		}
	}
}

type scanner struct {
	adapter.SourceFSAdapter
	rules      []Rule
	extensions map[string]struct{}
	markers    []string
	workers    int
}

// NewScanner creates a Scanner backed by the given filesystem adapter.
func NewScanner(fsAdapter adapter.SourceFSAdapter, opts ...ScannerOption) Scanner {
	s := &scanner{
		SourceFSAdapter: fsAdapter,
		rules:           DefaultRules,
		workers:         1,
	}

	WithExtensions(DefaultExtensions...)(s)
	WithTestMarkers(DefaultTestMarkers...)(s)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan builds a fresh ScanResult for root. Files are folded in discovery
// order regardless of the number of workers.
func (s *scanner) Scan(ctx context.Context, root m.Path, opts ...ScannerOption) (m.ScanResult, error) {
	if len(opts) > 0 {
		call := *s
		for _, opt := range opts {
			opt(&call)
		}

		return call.scan(ctx, root)
	}

	return s.scan(ctx, root)
}

func (s *scanner) scan(ctx context.Context, root m.Path) (m.ScanResult, error) {
	info, err := s.FileInfo(root)
	if err != nil {
		if os.IsNotExist(err) {
			return m.ScanResult{}, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}

		return m.ScanResult{}, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return m.ScanResult{}, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	files, err := s.discover(ctx, root)
	if err != nil {
		slog.Error("Error during repository scan", "root", root, "error", err)
		return m.ScanResult{}, err
	}

	analyses := make([]m.FileAnalysis, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			analyses[i] = s.analyzeFile(file)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return m.ScanResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return m.ScanResult{}, err
	}

	return m.NewScanResult(analyses), nil
}

// discover lists the eligible files under root in lexical order.
func (s *scanner) discover(ctx context.Context, root m.Path) ([]m.CodeFile, error) {
	var files []m.CodeFile

	err := s.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isTestFile(root, m.Path(path)) {
			slog.Info("Skipping test file", "path", path)
			return nil
		}

		if _, ok := s.extensions[filepath.Ext(path)]; !ok {
			return nil
		}

		files = append(files, m.NewCodeFile(m.Path(path)))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isTestFile matches the markers against "/" + the slash-separated path
// relative to root, so the location of root itself never matters.
func (s *scanner) isTestFile(root, path m.Path) bool {
	rel, err := s.RelPath(root, path)
	if err != nil {
		rel = path
	}

	candidate := strings.ToLower("/" + filepath.ToSlash(string(rel)))
	for _, marker := range s.markers {
		if strings.Contains(candidate, marker) {
			return true
		}
	}

	return false
}

func (s *scanner) analyzeFile(file m.CodeFile) m.FileAnalysis {
	slog.Info("Analyzing file", "path", file.Path)

	analysis := m.FileAnalysis{File: file}

	content, err := s.ReadFile(file.Path)
	if err == nil && !utf8.Valid(content) {
		err = ErrInvalidEncoding
	}

	if err != nil {
		slog.Error("Error analyzing file", "path", file.Path, "error", err)
		analysis.Err = err

		return analysis
	}

	fields := fieldCollector{index: map[string]int{}}
	isJava := file.Extension == JavaExtension

	for i, line := range splitLines(string(content)) {
		lineNumber := i + 1
		snippet := strings.TrimSpace(line)

		for _, rule := range s.rules {
			switch rule.Tier {
			case TierDemographic:
				for _, literal := range rule.Expr.FindAllString(line, -1) {
					fields.add(literal, rule.Category, m.Occurrence{LineNumber: lineNumber, LineText: snippet})
				}
			case TierIntegration, TierJava:
				if rule.Tier == TierJava && !isJava {
					continue
				}

				if rule.Expr.MatchString(line) {
					analysis.Patterns = append(analysis.Patterns, m.IntegrationPatternMatch{
						PatternType: rule.PatternType,
						SubType:     rule.SubType,
						FilePath:    file.Path,
						LineNumber:  lineNumber,
						LineText:    snippet,
					})
				}
			}
		}
	}

	analysis.Fields = fields.fields

	return analysis
}

// fieldCollector groups demographic matches by field name in first-seen order.
// The category of a field is fixed by its first match.
type fieldCollector struct {
	index  map[string]int
	fields []m.FieldOccurrences
}

func (c *fieldCollector) add(name string, category m.Category, occ m.Occurrence) {
	i, ok := c.index[name]
	if !ok {
		i = len(c.fields)
		c.index[name] = i
		c.fields = append(c.fields, m.FieldOccurrences{FieldName: name, Category: category})
	}

	c.fields[i].Occurrences = append(c.fields[i].Occurrences, occ)
}

// splitLines splits content on "\n", "\r\n" and "\r". A trailing terminator
// does not produce an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
