package exporter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"protokollctl/pkg/scraper"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in exported files
const SheetName = "protokolle"

// ContentType is the MIME type of the generated spreadsheet
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the records as an .xlsx workbook to w: one header row with the fixed
// column order, then one row per record sorted by page ID.
func WriteXLSX(records []scraper.Record, w io.Writer) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// XLSXBytes returns the workbook as a byte slice, ready to be offered as a download
func XLSXBytes(records []scraper.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(records, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveXLSX writes the workbook to path
func SaveXLSX(records []scraper.Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WriteXLSX(records, file); err != nil {
		return err
	}
	return file.Close()
}

func buildWorkbook(records []scraper.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, 0, len(scraper.Columns()))
	for _, c := range scraper.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, bold)
	}

	for i, r := range sortByPageID(records) {
		row := []any{r.PageID}
		for _, v := range r.Values() {
			row = append(row, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row for page %d: %w", r.PageID, err)
		}
	}

	return f, nil
}

// sortByPageID returns a sorted copy of records, leaving the input untouched
func sortByPageID(records []scraper.Record) []scraper.Record {
	sorted := make([]scraper.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PageID < sorted[j].PageID
	})
	return sorted
}
