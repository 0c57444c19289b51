package domain

import (
	"sort"

	m "codelens.dev/pkg/codelens/internal/model"
)

// DefaultMatchLimit is the number of candidates kept per source value.
const DefaultMatchLimit = 3

// DefaultMatchThreshold is the minimum score of a kept candidate.
const DefaultMatchThreshold = 60

// AttributeMatcher pairs source values with their most similar target values.
type AttributeMatcher interface {
	Match(source, target []string, scorer Scorer, threshold, limit int) []m.AttributeMatch
}

type attributeMatcher struct{}

// NewAttributeMatcher returns the default AttributeMatcher.
func NewAttributeMatcher() AttributeMatcher {
	return attributeMatcher{}
}

// Match scores every distinct non-empty source value against every distinct
// non-empty target value, keeps the best limit candidates (ties keep target
// order) and drops those scoring below threshold. Values are compared as is.
func (attributeMatcher) Match(source, target []string, scorer Scorer, threshold, limit int) []m.AttributeMatch {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	targets := distinct(target)
	matches := []m.AttributeMatch{}

	for _, value := range distinct(source) {
		candidates := make([]m.AttributeMatch, 0, len(targets))
		for _, t := range targets {
			candidates = append(candidates, m.AttributeMatch{Source: value, Target: t, Score: scorer(value, t)})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})

		if len(candidates) > limit {
			candidates = candidates[:limit]
		}

		for _, c := range candidates {
			if c.Score >= threshold {
				matches = append(matches, c)
			}
		}
	}

	return matches
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
