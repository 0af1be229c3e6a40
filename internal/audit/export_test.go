package audit

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	entries := []Entry{sampleEntry(0), sampleEntry(1)}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, entries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, entries[0].ID, records[1][0])
	assert.Equal(t, entries[1].Hash, records[2][5])
}

func TestExportCSVEmptyTrail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestExportExcel(t *testing.T) {
	entries := []Entry{sampleEntry(0)}

	var buf bytes.Buffer
	require.NoError(t, ExportExcel(&buf, entries))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Audit Trail")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, entries[0].SignedFile, rows[1][4])
}
