package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrUnknownAlgorithm is returned when a similarity algorithm name is not known.
var ErrUnknownAlgorithm = errors.New("unknown matching algorithm")

// Scorer returns the similarity of two strings on a 0..100 scale.
type Scorer func(a, b string) int

// Algorithm is a named Scorer selectable from the CLI and the web UI.
type Algorithm struct {
	Name  string
	Label string
	Score Scorer
}

// Algorithm names.
const (
	AlgorithmRatio          = "ratio"
	AlgorithmPartialRatio   = "partial_ratio"
	AlgorithmTokenSortRatio = "token_sort_ratio"
)

// Algorithms lists the available scorers in display order.
var Algorithms = []Algorithm{
	{Name: AlgorithmRatio, Label: "Levenshtein Ratio (Basic)", Score: Ratio},
	{Name: AlgorithmPartialRatio, Label: "Partial Ratio (Substring)", Score: PartialRatio},
	{Name: AlgorithmTokenSortRatio, Label: "Token Sort Ratio (Word Order)", Score: TokenSortRatio},
}

// LookupAlgorithm finds an algorithm by name or label, ignoring case.
func LookupAlgorithm(name string) (Algorithm, error) {
	key := strings.TrimSpace(name)
	for _, a := range Algorithms {
		if strings.EqualFold(a.Name, key) || strings.EqualFold(a.Label, key) {
			return a, nil
		}
	}

	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Ratio is the edit-distance ratio of a and b: 100 * (1 - d/max(len)), with d
// the edit distance implied by the SequenceMatcher opcodes.
func Ratio(a, b string) int {
	return toScore(ratio(chars(a), chars(b)))
}

// PartialRatio scores the shorter string against the best matching window of
// the same length in the longer string.
func PartialRatio(a, b string) int {
	short, long := chars(a), chars(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == 0 {
		return 0
	}

	best := 0.0

	matcher := difflib.NewMatcher(short, long)
	for _, block := range matcher.GetMatchingBlocks() {
		start := block.B - block.A
		if start < 0 {
			start = 0
		}

		end := start + len(short)
		if end > len(long) {
			end = len(long)
		}

		r := ratio(short, long[start:end])
		if r > 0.995 {
			return 100
		}

		if r > best {
			best = r
		}
	}

	return toScore(best)
}

// TokenSortRatio lower-cases both strings, splits them into alphanumeric
// tokens, sorts the tokens and compares the joined results with Ratio.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func ratio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	distance := 0

	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			distance += max(op.I2-op.I1, op.J2-op.J1)
		case 'd':
			distance += op.I2 - op.I1
		case 'i':
			distance += op.J2 - op.J1
		}
	}

	return 1 - float64(distance)/float64(max(len(a), len(b)))
}

func toScore(r float64) int {
	return int(math.RoundToEven(r * 100))
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}

	return out
}

func sortedTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	sort.Strings(tokens)

	return strings.Join(tokens, " ")
}
