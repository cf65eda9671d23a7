package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate writes an empty workbook whose sheet names and header
// rows are exactly what Import recognizes. Zero data rows.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, def := range sheetDefs {
		if _, err := f.NewSheet(def.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", def.Name, err)
		}
		header := make([]any, len(def.Headers))
		for i, h := range def.Headers {
			header[i] = h
		}
		if err := f.SetSheetRow(def.Name, "A1", &header); err != nil {
			return fmt.Errorf("writing header for %s: %w", def.Name, err)
		}
	}

	// Drop the default sheet so only the eight recognized ones remain.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}
