package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	m "codelens.dev/pkg/codelens/internal/model"
)

func TestDatasetAdapter_ReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customer.csv")
	content := "\ufeffattr_name,attr_description,\n" +
		"customer_id, Customer identifier ,x\n" +
		",,\n" +
		"email,Email address\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	d, err := NewDatasetAdapter(NewLocalSourceFSAdapter()).ReadDataset(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, "customer.csv", d.Name)
	assert.Equal(t, []string{"attr_name", "attr_description", "Unnamed: 2"}, d.Columns)
	require.Len(t, d.Rows, 2, "blank rows are skipped")
	assert.Equal(t, "Customer identifier", d.Rows[0]["attr_description"])
	assert.Equal(t, "", d.Rows[1]["Unnamed: 2"], "short rows are padded")
}

func TestDatasetAdapter_ReadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"attr_name", "business_name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"customerid", "Customer"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"cust_name", "Name"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	d, err := NewDatasetAdapter(NewLocalSourceFSAdapter()).ReadDataset(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, []string{"attr_name", "business_name"}, d.Columns)
	assert.Equal(t, []string{"customerid", "cust_name"}, d.Values("attr_name"))
}

func TestDatasetAdapter_Unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	_, err := NewDatasetAdapter(NewLocalSourceFSAdapter()).ReadDataset(m.Path(path))
	require.ErrorIs(t, err, ErrUnsupportedDataset)
}

func TestDatasetAdapter_WriteMatchResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matching_attributes.xlsx")

	result := m.MatchResult{
		SourceColumns: []string{"attr_name"},
		TargetColumns: []string{"attr_name", "business_name"},
		Matches: []m.RecordMatch{{
			Score:  91,
			Source: m.Record{"attr_name": "customer_id"},
			Target: m.Record{"attr_name": "customerid", "business_name": "Customer"},
		}},
	}

	require.NoError(t, NewDatasetAdapter(NewLocalSourceFSAdapter()).WriteMatchResult(m.Path(path), result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"C360 attr_name", " ", "Target Data attr_name", "Target Data business_name", "Match Score (%)"}, rows[0])
	assert.Equal(t, []string{"customer_id", "", "customerid", "Customer", "91"}, rows[1])
}

func TestDatasetAdapter_WriteRemovedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "removed.xlsx")
	removed := []m.RemovedRow{{RowNumber: 3, Reason: "Empty attr_description", Record: m.Record{"attr_name": "phone"}}}

	require.NoError(t, NewDatasetAdapter(NewLocalSourceFSAdapter()).WriteRemovedRows(m.Path(path), []string{"attr_name"}, removed))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Removed Rows")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "Empty attr_description", "phone"}, rows[1])
}

func TestDatasetAdapter_WriteColumnComparison(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "excel_analysis.xlsx")
	result := m.ColumnComparison{
		Threshold: 80,
		Matches: []m.ColumnMatch{
			{SourceColumn: "customer_id", TargetColumn: "customerid", Score: 91, SourceUnique: 2, TargetUnique: 1, SourceEmpty: 0, TargetEmpty: 1},
		},
	}

	require.NoError(t, NewDatasetAdapter(NewLocalSourceFSAdapter()).WriteColumnComparison(m.Path(path), result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Comparison Results", "Matched Columns"}, f.GetSheetList())

	details, err := f.GetRows("Comparison Results")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, []string{"File 1 Column", "File 2 Column", "Match Score", "Unique Values 1", "Unique Values 2", "Null Count 1", "Null Count 2"}, details[0])
	assert.Equal(t, []string{"customer_id", "customerid", "91", "2", "1", "0", "1"}, details[1])

	pairs, err := f.GetRows("Matched Columns")
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "customerid", "91"}, pairs[1])
}
