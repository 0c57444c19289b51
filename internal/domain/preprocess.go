package domain

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	m "codelens.dev/pkg/codelens/internal/model"
)

// DescriptionColumn is the column checked for empty or numeric descriptions.
const DescriptionColumn = "attr_description"

// Preprocess drops rows that cannot be matched meaningfully. It runs three
// passes in order: empty descriptions, integer-only descriptions, then rows
// with any cell holding only digits or a single non-alphanumeric character.
// Each removed row is counted by the pass that removed it.
func Preprocess(d m.Dataset) (m.Dataset, m.PreprocessStats, []m.RemovedRow) {
	stats := m.PreprocessStats{InitialRows: len(d.Rows)}
	hasDescription := d.HasColumn(DescriptionColumn)

	kept := make([]m.Record, 0, len(d.Rows))
	removed := []m.RemovedRow{}

	for i, row := range d.Rows {
		var reasons []string

		description := strings.TrimSpace(row[DescriptionColumn])
		drop := false

		switch {
		case hasDescription && description == "":
			reasons = append(reasons, "Empty attr_description")
			stats.EmptyDescription++
			drop = true
		case hasDescription && isDigits(description):
			reasons = append(reasons, "Integer-only attr_description")
			stats.IntegerDescription++
			drop = true
		}

		if col, ok := singleValueColumn(d.Columns, row); ok {
			reasons = append(reasons, fmt.Sprintf("Single integer or special character in column '%s'", col))
			if !drop {
				stats.SingleValue++
				drop = true
			}
		}

		if !drop {
			kept = append(kept, row)
			continue
		}

		removed = append(removed, m.RemovedRow{
			RowNumber: i + 1,
			Reason:    strings.Join(reasons, " & "),
			Record:    row,
		})
	}

	stats.FinalRows = len(kept)
	stats.TotalRemoved = stats.InitialRows - stats.FinalRows

	slog.Info("Preprocessed dataset",
		"dataset", d.Name,
		"initial_rows", stats.InitialRows,
		"final_rows", stats.FinalRows,
		"empty_description", stats.EmptyDescription,
		"integer_description", stats.IntegerDescription,
		"single_value", stats.SingleValue,
	)

	return m.Dataset{Name: d.Name, Columns: d.Columns, Rows: kept}, stats, removed
}

// singleValueColumn returns the first column whose trimmed value is all digits
// or a single non-alphanumeric character.
func singleValueColumn(columns []string, row m.Record) (string, bool) {
	for _, col := range columns {
		value := strings.TrimSpace(row[col])
		if value == "" {
			continue
		}

		if isDigits(value) {
			return col, true
		}

		runes := []rune(value)
		if len(runes) == 1 && !unicode.IsLetter(runes[0]) && !unicode.IsDigit(runes[0]) {
			return col, true
		}
	}

	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
