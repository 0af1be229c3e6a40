package audit

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"Document ID", "Notary ID", "Timestamp", "Original File", "Signed File", "Hash"}

func exportRow(e Entry) []string {
	return []string{e.ID, fmt.Sprintf("%d", e.NotaryID), e.Timestamp, e.OriginalFile, e.SignedFile, e.Hash}
}

// ExportCSV writes the trail as CSV with a header row.
func ExportCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write(exportRow(e)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportExcel writes the trail as a single-sheet workbook with a styled
// header row.
func ExportExcel(w io.Writer, entries []Entry) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Audit Trail"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return err
	}

	for col, label := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := file.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for row, entry := range entries {
		values := exportRow(entry)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	// The hash column is wide; give it room.
	if err := file.SetColWidth(sheet, "A", "E", 24); err != nil {
		return err
	}
	if err := file.SetColWidth(sheet, "F", "F", 66); err != nil {
		return err
	}

	_, err = file.WriteTo(w)
	return err
}
