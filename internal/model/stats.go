package model

import (
	"fmt"
	"sort"
)

// FieldFrequency is the number of occurrences of one field name across a scan.
type FieldFrequency struct {
	FieldName string
	Category  Category
	Count     int
}

// PatternCount is the number of records of one integration pattern type.
type PatternCount struct {
	PatternType PatternType
	Count       int
}

// ExtensionCount is the number of analysed files with one extension.
type ExtensionCount struct {
	Extension string
	Language  string
	Count     int
}

// FieldMatches flattens the grouped demographic data back into single matches.
func (r ScanResult) FieldMatches() []FieldMatch {
	matches := []FieldMatch{}

	for _, file := range r.Fields {
		for _, field := range file.Fields {
			for _, occ := range field.Occurrences {
				matches = append(matches, FieldMatch{
					FieldName:  field.FieldName,
					Category:   field.Category,
					FilePath:   file.Path,
					LineNumber: occ.LineNumber,
					LineText:   occ.LineText,
				})
			}
		}
	}

	return matches
}

// FieldFrequencies counts occurrences per field name, most frequent first.
// Ties keep first-seen order.
func (r ScanResult) FieldFrequencies() []FieldFrequency {
	index := map[string]int{}
	freqs := []FieldFrequency{}

	for _, file := range r.Fields {
		for _, field := range file.Fields {
			i, ok := index[field.FieldName]
			if !ok {
				i = len(freqs)
				index[field.FieldName] = i
				freqs = append(freqs, FieldFrequency{FieldName: field.FieldName, Category: field.Category})
			}

			freqs[i].Count += len(field.Occurrences)
		}
	}

	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Count > freqs[j].Count
	})

	return freqs
}

// PatternDistribution counts integration records per pattern type, most
// frequent first.
func (r ScanResult) PatternDistribution() []PatternCount {
	index := map[PatternType]int{}
	counts := []PatternCount{}

	for _, p := range r.Patterns {
		i, ok := index[p.PatternType]
		if !ok {
			i = len(counts)
			index[p.PatternType] = i
			counts = append(counts, PatternCount{PatternType: p.PatternType})
		}

		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}

// ExtensionCounts counts analysed files per extension, sorted by extension.
func (r ScanResult) ExtensionCounts() []ExtensionCount {
	index := map[string]int{}
	counts := []ExtensionCount{}

	for _, detail := range r.Summary.FileDetails {
		i, ok := index[detail.Extension]
		if !ok {
			i = len(counts)
			index[detail.Extension] = i
			counts = append(counts, ExtensionCount{Extension: detail.Extension, Language: LanguageFor(detail.Extension)})
		}

		counts[i].Count++
	}

	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Extension < counts[j].Extension
	})

	return counts
}

// HasExtension reports whether any analysed file has the given extension.
func (r ScanResult) HasExtension(ext string) bool {
	for _, detail := range r.Summary.FileDetails {
		if detail.Extension == ext {
			return true
		}
	}

	return false
}

// FieldNames returns the field names found in path, in first-seen order.
func (r ScanResult) FieldNames(path Path) []string {
	for _, file := range r.Fields {
		if file.Path != path {
			continue
		}

		names := make([]string, 0, len(file.Fields))
		for _, field := range file.Fields {
			names = append(names, field.FieldName)
		}

		return names
	}

	return nil
}

// PatternDetails returns the distinct "type: sub_type" labels found in path.
func (r ScanResult) PatternDetails(path Path) []string {
	seen := map[string]struct{}{}
	labels := []string{}

	for _, p := range r.Patterns {
		if p.FilePath != path {
			continue
		}

		label := fmt.Sprintf("%s: %s", p.PatternType, p.SubType)
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}

// PatternsOf returns the integration records of the given pattern types.
func (r ScanResult) PatternsOf(types ...PatternType) []IntegrationPatternMatch {
	want := map[PatternType]struct{}{}
	for _, t := range types {
		want[t] = struct{}{}
	}

	out := []IntegrationPatternMatch{}

	for _, p := range r.Patterns {
		if _, ok := want[p.PatternType]; ok {
			out = append(out, p)
		}
	}

	return out
}

// CategoryCount is the number of field occurrences of one demographic category.
type CategoryCount struct {
	Category Category
	Fields   int
	Count    int
}

// CategoryCounts aggregates field occurrences per category, most frequent first.
func (r ScanResult) CategoryCounts() []CategoryCount {
	index := map[Category]int{}
	counts := []CategoryCount{}

	for _, freq := range r.FieldFrequencies() {
		i, ok := index[freq.Category]
		if !ok {
			i = len(counts)
			index[freq.Category] = i
			counts = append(counts, CategoryCount{Category: freq.Category})
		}

		counts[i].Fields++
		counts[i].Count += freq.Count
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}
