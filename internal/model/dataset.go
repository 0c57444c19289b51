package model

// Record is one spreadsheet row keyed by column name. Missing cells are "".
type Record map[string]string

// Dataset is a tabular input of the attribute matcher.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the dataset has the named column.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// Values returns the values of one column in row order.
func (d Dataset) Values(column string) []string {
	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[column])
	}

	return values
}

// FirstWith returns the first row whose column equals value.
func (d Dataset) FirstWith(column, value string) (Record, bool) {
	for _, row := range d.Rows {
		if row[column] == value {
			return row, true
		}
	}

	return nil, false
}

// DistinctCount returns the number of distinct non-empty values of a column.
func (d Dataset) DistinctCount(column string) int {
	seen := map[string]struct{}{}
	for _, row := range d.Rows {
		if v := row[column]; v != "" {
			seen[v] = struct{}{}
		}
	}

	return len(seen)
}

// EmptyCount returns the number of rows with an empty cell in a column.
func (d Dataset) EmptyCount(column string) int {
	n := 0
	for _, row := range d.Rows {
		if row[column] == "" {
			n++
		}
	}

	return n
}

// AttributeMatch is one source value paired with a similar target value.
type AttributeMatch struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Score  int    `json:"score"`
}

// RecordMatch joins an AttributeMatch back to the full source and target rows.
type RecordMatch struct {
	Score  int    `json:"score"`
	Source Record `json:"source"`
	Target Record `json:"target"`
}

// MatchSummary holds the aggregate numbers of a comparison.
type MatchSummary struct {
	Total          int     `json:"total"`
	HighConfidence int     `json:"high_confidence"`
	AverageScore   float64 `json:"average_score"`
}

// HighConfidenceScore is the score from which a match counts as high confidence.
const HighConfidenceScore = 80

// MatchResult is the outcome of comparing two datasets on one column.
type MatchResult struct {
	Column        string        `json:"column"`
	Algorithm     string        `json:"algorithm"`
	Threshold     int           `json:"threshold"`
	SourceColumns []string      `json:"source_columns"`
	TargetColumns []string      `json:"target_columns"`
	Matches       []RecordMatch `json:"matches"`
	Summary       MatchSummary  `json:"summary"`
}

// Summarize fills Summary from Matches.
func (r *MatchResult) Summarize() {
	s := MatchSummary{Total: len(r.Matches)}

	sum := 0
	for _, match := range r.Matches {
		sum += match.Score
		if match.Score >= HighConfidenceScore {
			s.HighConfidence++
		}
	}

	if s.Total > 0 {
		s.AverageScore = float64(sum) / float64(s.Total)
	}

	r.Summary = s
}

// PreprocessStats counts the rows removed by dataset preprocessing.
type PreprocessStats struct {
	InitialRows        int `json:"initial_rows"`
	FinalRows          int `json:"final_rows"`
	TotalRemoved       int `json:"total_removed"`
	EmptyDescription   int `json:"empty_description"`
	IntegerDescription int `json:"integer_description"`
	SingleValue        int `json:"single_value"`
}

// RemovedRow is a row dropped by preprocessing. RowNumber is 1-based.
type RemovedRow struct {
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
	Record    Record `json:"record"`
}

// ColumnMatch pairs a source column header with the closest target header and
// the value statistics of both columns.
type ColumnMatch struct {
	SourceColumn string `json:"source_column"`
	TargetColumn string `json:"target_column"`
	Score        int    `json:"score"`
	SourceUnique int    `json:"source_unique_values"`
	TargetUnique int    `json:"target_unique_values"`
	SourceEmpty  int    `json:"source_null_count"`
	TargetEmpty  int    `json:"target_null_count"`
}

// DatasetShape is the name and size of a compared dataset.
type DatasetShape struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// ShapeOf returns the shape of d.
func ShapeOf(d Dataset) DatasetShape {
	return DatasetShape{Name: d.Name, Rows: len(d.Rows), Columns: len(d.Columns)}
}

// ColumnComparison is the outcome of matching the headers of two datasets.
type ColumnComparison struct {
	Source    DatasetShape  `json:"source"`
	Target    DatasetShape  `json:"target"`
	Threshold int           `json:"threshold"`
	Matches   []ColumnMatch `json:"matches"`
}
