package adapter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// workbook wraps an excelize file and applies the shared header format.
type workbook struct {
	file        *excelize.File
	headerStyle int
	sheets      int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#00FFFF"}},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	return &workbook{file: f, headerStyle: style}, nil
}

// addSheet writes header and rows into a new sheet. The first sheet reuses
// the default one.
func (b *workbook) addSheet(name string, header []string, rows [][]interface{}) error {
	if b.sheets == 0 {
		if err := b.file.SetSheetName(defaultSheetName, name); err != nil {
			return err
		}
	} else if _, err := b.file.NewSheet(name); err != nil {
		return err
	}

	b.sheets++

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}

	if err := b.file.SetSheetRow(name, "A1", &headerRow); err != nil {
		return err
	}

	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}

		if err := b.file.SetCellStyle(name, "A1", last, b.headerStyle); err != nil {
			return err
		}

		lastCol, err := excelize.ColumnNumberToName(len(header))
		if err != nil {
			return err
		}

		if err := b.file.SetColWidth(name, "A", lastCol, 20); err != nil {
			return err
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := b.file.SetSheetRow(name, cell, &rows[i]); err != nil {
			return err
		}
	}

	return nil
}

func (b *workbook) close() {
	_ = b.file.Close()
}
