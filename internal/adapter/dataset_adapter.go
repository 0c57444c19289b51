package adapter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	m "codelens.dev/pkg/codelens/internal/model"
)

// ErrUnsupportedDataset is returned for spreadsheet types that cannot be read.
var ErrUnsupportedDataset = errors.New("unsupported dataset type")

// DatasetAdapter reads the tabular inputs of the attribute matcher and writes
// its results as spreadsheets.
type DatasetAdapter interface {
	ReadDataset(path m.Path) (m.Dataset, error)
	WriteMatchResult(path m.Path, result m.MatchResult) error
	WriteRemovedRows(path m.Path, columns []string, rows []m.RemovedRow) error
	WriteColumnComparison(path m.Path, result m.ColumnComparison) error
}

// LocalDatasetAdapter implements DatasetAdapter on top of a SourceFSAdapter.
type LocalDatasetAdapter struct {
	fs SourceFSAdapter
}

// NewDatasetAdapter creates a LocalDatasetAdapter.
func NewDatasetAdapter(fs SourceFSAdapter) *LocalDatasetAdapter {
	return &LocalDatasetAdapter{fs: fs}
}

// ReadDataset loads the first sheet of an .xlsx file or a .csv file. The first
// row is the header; blank header cells are named "Unnamed: N".
func (a *LocalDatasetAdapter) ReadDataset(path m.Path) (m.Dataset, error) {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return m.Dataset{}, err
	}

	var rows [][]string

	switch strings.ToLower(path.Ext()) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSXRows(bytes.NewReader(data))
	case ".csv":
		rows, err = readCSVRows(bytes.NewReader(data))
	default:
		return m.Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedDataset, path.Ext())
	}

	if err != nil {
		return m.Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}

	return newDataset(path.Base(), rows), nil
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	return f.GetRows(sheets[0])
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	return reader.ReadAll()
}

func newDataset(name string, rows [][]string) m.Dataset {
	d := m.Dataset{Name: name, Columns: []string{}, Rows: []m.Record{}}
	if len(rows) == 0 {
		return d
	}

	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}

		d.Columns = append(d.Columns, h)
	}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		record := make(m.Record, len(d.Columns))
		for i, col := range d.Columns {
			if i < len(row) {
				record[col] = strings.TrimSpace(row[i])
			} else {
				record[col] = ""
			}
		}

		d.Rows = append(d.Rows, record)
	}

	return d
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// WriteMatchResult writes matches as one "Summary" sheet: source columns
// prefixed "C360 ", a blank separator column, target columns prefixed
// "Target Data " and the score.
func (a *LocalDatasetAdapter) WriteMatchResult(path m.Path, result m.MatchResult) error {
	header := make([]string, 0, len(result.SourceColumns)+len(result.TargetColumns)+2)
	for _, c := range result.SourceColumns {
		header = append(header, "C360 "+c)
	}

	header = append(header, " ")

	for _, c := range result.TargetColumns {
		header = append(header, "Target Data "+c)
	}

	header = append(header, "Match Score (%)")

	rows := make([][]interface{}, 0, len(result.Matches))

	for _, match := range result.Matches {
		row := make([]interface{}, 0, len(header))
		for _, c := range result.SourceColumns {
			row = append(row, match.Source[c])
		}

		row = append(row, "")

		for _, c := range result.TargetColumns {
			row = append(row, match.Target[c])
		}

		row = append(row, match.Score)
		rows = append(rows, row)
	}

	return a.writeSheets(path, sheetData{name: "Summary", header: header, rows: rows})
}

// WriteRemovedRows writes the rows dropped by preprocessing with their reasons.
func (a *LocalDatasetAdapter) WriteRemovedRows(path m.Path, columns []string, removed []m.RemovedRow) error {
	header := append([]string{"Original Row Number", "Removal Reason"}, columns...)
	rows := make([][]interface{}, 0, len(removed))

	for _, r := range removed {
		row := []interface{}{r.RowNumber, r.Reason}
		for _, c := range columns {
			row = append(row, r.Record[c])
		}

		rows = append(rows, row)
	}

	return a.writeSheets(path, sheetData{name: "Removed Rows", header: header, rows: rows})
}

// WriteColumnComparison writes the per-column statistics to "Comparison
// Results" and the header pairs to "Matched Columns".
func (a *LocalDatasetAdapter) WriteColumnComparison(path m.Path, result m.ColumnComparison) error {
	details := make([][]interface{}, 0, len(result.Matches))
	pairs := make([][]interface{}, 0, len(result.Matches))

	for _, match := range result.Matches {
		details = append(details, []interface{}{
			match.SourceColumn, match.TargetColumn, match.Score,
			match.SourceUnique, match.TargetUnique,
			match.SourceEmpty, match.TargetEmpty,
		})
		pairs = append(pairs, []interface{}{match.SourceColumn, match.TargetColumn, match.Score})
	}

	return a.writeSheets(path,
		sheetData{
			name: "Comparison Results",
			header: []string{
				"File 1 Column", "File 2 Column", "Match Score",
				"Unique Values 1", "Unique Values 2", "Null Count 1", "Null Count 2",
			},
			rows: details,
		},
		sheetData{
			name:   "Matched Columns",
			header: []string{"File 1 Column", "File 2 Column", "Match Score"},
			rows:   pairs,
		},
	)
}

type sheetData struct {
	name   string
	header []string
	rows   [][]interface{}
}

func (a *LocalDatasetAdapter) writeSheets(path m.Path, sheets ...sheetData) error {
	book, err := newWorkbook()
	if err != nil {
		return err
	}
	defer book.close()

	for _, sheet := range sheets {
		if err := book.addSheet(sheet.name, sheet.header, sheet.rows); err != nil {
			return fmt.Errorf("fill %s sheet: %w", sheet.name, err)
		}
	}

	var buf bytes.Buffer
	if err := book.file.Write(&buf); err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}

	if err := a.fs.MkdirAll(m.Path(filepath.Dir(string(path)))); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	return a.fs.WriteFile(path, buf.Bytes(), 0o600)
}
