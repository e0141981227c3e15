package export

import (
	"bytes"
	"testing"

	"table-reconciler/core/dataset"
	"table-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *reconcile.Result {
	t.Helper()
	ref := dataset.New("SQL", "ID", "Name", "Salary")
	require.NoError(t, ref.Append(dataset.Int(1), dataset.Text("Arjun"), dataset.Float(45000.5)))
	require.NoError(t, ref.Append(dataset.Int(2), dataset.Text("Meera"), dataset.Float(52000)))

	cmp := dataset.New("data.csv", "ID", "Name", "Salary")
	require.NoError(t, cmp.Append(dataset.Text("1"), dataset.Text("Arjun"), dataset.Text("45500.50")))
	require.NoError(t, cmp.Append(dataset.Text("3"), dataset.Text("Pooja"), dataset.Text("38000")))

	res, err := reconcile.Reconcile(ref, cmp, reconcile.Options{Keys: []string{"ID"}, ComparandLabel: "data.csv"})
	require.NoError(t, err)
	return res
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)

	// Mismatch section: title, header, two rows, blank.
	assert.Equal(t, "Mismatched Rows (1)", rows[0][0])
	assert.Equal(t, []string{"ID", "Name", "Salary", "source", "status"}, rows[1])
	assert.Equal(t, []string{"1", "Arjun", "45000.5", "SQL", "Mismatch"}, rows[2])
	assert.Equal(t, []string{"1", "Arjun", "45500.50", "data.csv", "Mismatch"}, rows[3])

	assert.Equal(t, "Missing from data.csv / SQL Only (1)", rows[5][0])
	assert.Equal(t, []string{"2", "Meera", "52000", "SQL", "Only in SQL"}, rows[7])

	assert.Equal(t, "Extra in data.csv / Not in SQL (1)", rows[9][0])
	assert.Equal(t, []string{"3", "Pooja", "38000", "data.csv", "Only in data.csv"}, rows[11])

	// The mismatched Salary cell carries its own style; the Name cell shares the row style.
	salaryStyle, err := f.GetCellStyle(SheetName, "C3")
	require.NoError(t, err)
	nameStyle, err := f.GetCellStyle(SheetName, "B3")
	require.NoError(t, err)
	assert.NotEqual(t, salaryStyle, nameStyle)

	refStyle, err := f.GetCellStyle(SheetName, "B3")
	require.NoError(t, err)
	cmpStyle, err := f.GetCellStyle(SheetName, "B4")
	require.NoError(t, err)
	assert.NotEqual(t, refStyle, cmpStyle)

	width, err := f.GetColWidth(SheetName, "E")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Only in data.csv")+3), width)
}

func TestWriteXLSX_NoDiscrepancies(t *testing.T) {
	ds := dataset.New("SQL", "ID")
	require.NoError(t, ds.Append(dataset.Int(1)))
	res, err := reconcile.Reconcile(ds, ds, reconcile.Options{Keys: []string{"ID"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, AllMatchedMessage, value)
}
