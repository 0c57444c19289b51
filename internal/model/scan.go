package model

import (
	"fmt"
	"slices"
	"sort"
)

// Category is a demographic field category.
type Category string

const (
	// CategoryID covers customer identifiers.
	CategoryID Category = "id"
	// CategoryName covers person names.
	CategoryName Category = "name"
	// CategoryAddress covers postal address parts.
	CategoryAddress Category = "address"
	// CategoryContact covers phone and email fields.
	CategoryContact Category = "contact"
	// CategoryIdentity covers government identifiers.
	CategoryIdentity Category = "identity"
	// CategoryDemographics covers age, gender and similar attributes.
	CategoryDemographics Category = "demographics"
)

// PatternType is an integration pattern category.
type PatternType string

// Integration pattern categories. The last two only come from the Java tier.
const (
	PatternRESTAPI         PatternType = "rest_api"
	PatternSOAPServices    PatternType = "soap_services"
	PatternDatabase        PatternType = "database"
	PatternMessaging       PatternType = "messaging"
	PatternFile            PatternType = "file"
	PatternSpringEndpoints PatternType = "spring_endpoints"
	PatternSecurity        PatternType = "security"
)

// FieldMatch is a single demographic regex match on a single line.
type FieldMatch struct {
	FieldName  string   `json:"field_name" yaml:"field_name"`
	Category   Category `json:"data_type" yaml:"data_type"`
	FilePath   Path     `json:"file_path" yaml:"file_path"`
	LineNumber int      `json:"line_number" yaml:"line_number"`
	LineText   string   `json:"code_snippet" yaml:"code_snippet"`
}

// Occurrence is one line on which a field was matched.
type Occurrence struct {
	LineNumber int    `json:"line_number" yaml:"line_number"`
	LineText   string `json:"code_snippet" yaml:"code_snippet"`
}

// FieldOccurrences groups the matches of one field name within one file.
// Category is the category of the first match.
type FieldOccurrences struct {
	FieldName   string       `json:"field_name" yaml:"field_name"`
	Category    Category     `json:"data_type" yaml:"data_type"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// FileFields holds the demographic fields found in one file, in first-seen order.
type FileFields struct {
	Path   Path               `json:"file_path" yaml:"file_path"`
	Fields []FieldOccurrences `json:"fields" yaml:"fields"`
}

// IntegrationPatternMatch records that a pattern sub-type is present on a line.
type IntegrationPatternMatch struct {
	PatternType PatternType `json:"pattern_type" yaml:"pattern_type"`
	SubType     string      `json:"sub_type" yaml:"sub_type"`
	FilePath    Path        `json:"file_path" yaml:"file_path"`
	LineNumber  int         `json:"line_number" yaml:"line_number"`
	LineText    string      `json:"code_snippet" yaml:"code_snippet"`
}

// FileAnalysis is the outcome of analysing a single file.
type FileAnalysis struct {
	File     CodeFile
	Fields   []FieldOccurrences
	Patterns []IntegrationPatternMatch
	Err      error
}

// FileDetail is the per-file row of the summary. It carries counts only.
type FileDetail struct {
	Path          Path   `json:"file_path" yaml:"file_path"`
	Extension     string `json:"extension" yaml:"extension"`
	FieldsFound   int    `json:"demographic_fields_found" yaml:"demographic_fields_found"`
	PatternsFound int    `json:"integration_patterns_found" yaml:"integration_patterns_found"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary holds counters derived from the detailed match lists.
type Summary struct {
	FilesAnalyzed int          `json:"files_analyzed" yaml:"files_analyzed"`
	UniqueFields  []string     `json:"unique_demographic_fields" yaml:"unique_demographic_fields"`
	FieldsFound   int          `json:"demographic_fields_found" yaml:"demographic_fields_found"`
	PatternsFound int          `json:"integration_patterns_found" yaml:"integration_patterns_found"`
	FileDetails   []FileDetail `json:"file_details" yaml:"file_details"`
}

// ScanResult aggregates every match of a scan. Summary must only be produced
// by Summarize so it cannot drift from the match lists.
type ScanResult struct {
	Fields   []FileFields              `json:"demographic_data" yaml:"demographic_data"`
	Patterns []IntegrationPatternMatch `json:"integration_patterns" yaml:"integration_patterns"`
	Summary  Summary                   `json:"summary" yaml:"summary"`
}

// NewScanResult folds per-file analyses, in order, into a ScanResult.
func NewScanResult(analyses []FileAnalysis) ScanResult {
	result := ScanResult{
		Fields:   []FileFields{},
		Patterns: []IntegrationPatternMatch{},
	}

	details := make([]FileDetail, 0, len(analyses))

	for _, analysis := range analyses {
		if len(analysis.Fields) > 0 {
			result.Fields = append(result.Fields, FileFields{
				Path:   analysis.File.Path,
				Fields: analysis.Fields,
			})
		}

		result.Patterns = append(result.Patterns, analysis.Patterns...)

		detail := FileDetail{
			Path:          analysis.File.Path,
			Extension:     analysis.File.Extension,
			FieldsFound:   countOccurrences(analysis.Fields),
			PatternsFound: len(analysis.Patterns),
		}
		if analysis.Err != nil {
			detail.Error = analysis.Err.Error()
		}

		details = append(details, detail)
	}

	result.Summary = Summarize(result.Fields, result.Patterns, details)

	return result
}

// Summarize recomputes the summary counters from the detailed lists.
func Summarize(fields []FileFields, patterns []IntegrationPatternMatch, details []FileDetail) Summary {
	unique := map[string]struct{}{}
	total := 0

	for _, file := range fields {
		for _, field := range file.Fields {
			unique[field.FieldName] = struct{}{}
		}

		total += countOccurrences(file.Fields)
	}

	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}

	sort.Strings(names)

	if details == nil {
		details = []FileDetail{}
	}

	return Summary{
		FilesAnalyzed: len(details),
		UniqueFields:  names,
		FieldsFound:   total,
		PatternsFound: len(patterns),
		FileDetails:   details,
	}
}

// Validate reports whether the summary agrees with the detailed lists.
func (r ScanResult) Validate() error {
	want := Summarize(r.Fields, r.Patterns, r.Summary.FileDetails)

	switch {
	case want.FieldsFound != r.Summary.FieldsFound:
		return fmt.Errorf("fields found: summary %d, details %d", r.Summary.FieldsFound, want.FieldsFound)
	case want.PatternsFound != r.Summary.PatternsFound:
		return fmt.Errorf("patterns found: summary %d, details %d", r.Summary.PatternsFound, want.PatternsFound)
	case want.FilesAnalyzed != r.Summary.FilesAnalyzed:
		return fmt.Errorf("files analyzed: summary %d, details %d", r.Summary.FilesAnalyzed, want.FilesAnalyzed)
	case !slices.Equal(sortedCopy(want.UniqueFields), sortedCopy(r.Summary.UniqueFields)):
		return fmt.Errorf("unique fields: summary %v, details %v", r.Summary.UniqueFields, want.UniqueFields)
	}

	return nil
}

func sortedCopy(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)

	return out
}

func countOccurrences(fields []FieldOccurrences) int {
	total := 0
	for _, field := range fields {
		total += len(field.Occurrences)
	}

	return total
}
